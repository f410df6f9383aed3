package memory

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción en memoria.
type TxRunner struct {
	store *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run confirma si fn no falla; en otro caso descarta lo escrito. Los bloqueos se liberan siempre.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := r.store.begin()
	defer tx.releaseLocks()

	if err := fn(newRepos(txSession{tx: tx})); err != nil {
		tx.rollback()
		return err
	}
	return tx.commit()
}
