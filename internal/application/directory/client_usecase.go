package directory

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

const pinDigits = 6

// ClientUseCase alta de clientes en recepción. El PIN se genera aquí y se entrega por PINSender.
type ClientUseCase struct {
	repo   repository.ClientRepository
	sender ports.PINSender
	log    zerolog.Logger
}

func NewClientUseCase(repo repository.ClientRepository, sender ports.PINSender, log zerolog.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, sender: sender, log: log}
}

var officeRoles = []entity.Role{entity.RoleOffice, entity.RoleManager}

func (uc *ClientUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := domain.RequireRole(actor, officeRoles...); err != nil {
		return nil, err
	}
	phone := normalizePhone(in.Phone)
	if phone == "" || strings.TrimSpace(in.FirstName) == "" {
		return nil, fmt.Errorf("%w: nombre y teléfono son obligatorios", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, phone)
	}
	pin, hash, err := newPIN()
	if err != nil {
		return nil, err
	}
	c := &entity.Client{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		PINHash:   hash,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.deliver(ctx, c, pin)
	res := dto.FromClient(c)
	return &res, nil
}

// ResetPIN genera un PIN nuevo y lo reenvía.
func (uc *ClientUseCase) ResetPIN(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.RequireRole(actor, officeRoles...); err != nil {
		return err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	pin, hash, err := newPIN()
	if err != nil {
		return err
	}
	c.PINHash = hash
	if err := uc.repo.Update(ctx, c); err != nil {
		return err
	}
	uc.deliver(ctx, c, pin)
	return nil
}

// deliver un fallo del canal no deshace el alta; recepción puede pedir ResetPIN.
func (uc *ClientUseCase) deliver(ctx context.Context, c *entity.Client, pin string) {
	if uc.sender == nil {
		return
	}
	if err := uc.sender.SendPIN(ctx, c.Phone, pin); err != nil {
		uc.log.Error().Err(err).Str("client_id", c.ID).Msg("no se pudo enviar el PIN")
	}
}

func (uc *ClientUseCase) Get(ctx context.Context, actor domain.Actor, id string) (*dto.ClientResponse, error) {
	if actor.Role == entity.RoleClient && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	if actor.Role != entity.RoleClient {
		if err := domain.RequireRole(actor, officeRoles...); err != nil {
			return nil, err
		}
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	res := dto.FromClient(c)
	return &res, nil
}

func (uc *ClientUseCase) GetByPhone(ctx context.Context, actor domain.Actor, phone string) (*dto.ClientResponse, error) {
	if err := domain.RequireRole(actor, officeRoles...); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByPhone(ctx, normalizePhone(phone))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: teléfono %s", domain.ErrNotFound, phone)
	}
	res := dto.FromClient(c)
	return &res, nil
}

func (uc *ClientUseCase) List(ctx context.Context, actor domain.Actor, search string) ([]dto.ClientResponse, error) {
	if err := domain.RequireRole(actor, officeRoles...); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromClient(c))
	}
	return out, nil
}

func newPIN() (pin, hash string, err error) {
	var b strings.Builder
	for i := 0; i < pinDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	h, err := bcrypt.GenerateFromPassword([]byte(b.String()), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return b.String(), string(h), nil
}

// normalizePhone deja solo dígitos y un '+' inicial.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
