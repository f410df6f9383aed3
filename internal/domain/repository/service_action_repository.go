package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type ServiceActionRepository interface {
	Create(ctx context.Context, a *entity.ServiceAction) error
	GetByID(ctx context.Context, id string) (*entity.ServiceAction, error)
	Update(ctx context.Context, a *entity.ServiceAction) error
	List(ctx context.Context) ([]*entity.ServiceAction, error)
}
