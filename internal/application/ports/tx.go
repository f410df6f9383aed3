package ports

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se descarta todo lo escrito; si no, se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}
