package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// ServiceActionUseCase catálogo de mano de obra. Cambiar un precio no toca presupuestos ya creados.
type ServiceActionUseCase struct {
	repo repository.ServiceActionRepository
}

func NewServiceActionUseCase(repo repository.ServiceActionRepository) *ServiceActionUseCase {
	return &ServiceActionUseCase{repo: repo}
}

func (uc *ServiceActionUseCase) Create(ctx context.Context, actor domain.Actor, in dto.ServiceActionRequest) (*dto.ServiceActionResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: nombre vacío o precio negativo", domain.ErrValidation)
	}
	now := time.Now()
	a := &entity.ServiceAction{ID: uuid.New().String(), Name: name, Price: in.Price, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	res := dto.FromServiceAction(a)
	return &res, nil
}

func (uc *ServiceActionUseCase) Update(ctx context.Context, actor domain.Actor, id string, in dto.ServiceActionRequest) (*dto.ServiceActionResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: acción %s", domain.ErrNotFound, id)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		a.Name = name
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrValidation)
	}
	a.Price = in.Price
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	res := dto.FromServiceAction(a)
	return &res, nil
}

// List cualquier actor autenticado puede ver el catálogo.
func (uc *ServiceActionUseCase) List(ctx context.Context) ([]dto.ServiceActionResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceActionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromServiceAction(a))
	}
	return out, nil
}
