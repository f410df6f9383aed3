package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, search string) ([]*entity.Client, error)
}
