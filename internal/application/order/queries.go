package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// Get el personal ve cualquier orden; el cliente solo las suyas.
func (uc *LifecycleUseCase) Get(ctx context.Context, actor domain.Actor, orderID string) (*dto.RepairOrderResponse, error) {
	o, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	if err := CanView(actor, o); err != nil {
		return nil, err
	}
	out := dto.FromRepairOrder(o)
	return &out, nil
}

// CanView regla de lectura compartida con presupuestos y documentos.
func CanView(actor domain.Actor, o *entity.RepairOrder) error {
	if actor.ID == "" {
		return domain.ErrUnauthorized
	}
	if actor.Role == entity.RoleClient && o.ClientID != actor.ID {
		return fmt.Errorf("%w: la orden no pertenece al cliente", domain.ErrForbidden)
	}
	return nil
}

// ListAll listado general con filtro opcional de estado.
func (uc *LifecycleUseCase) ListAll(ctx context.Context, actor domain.Actor, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleOffice, entity.RoleManager, entity.RoleWarehouse); err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.OrderFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		st, err := lifecycle.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	list, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.OrderListResponse{
		Items: dto.FromRepairOrders(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ListByClient el cliente solo puede pedir las suyas.
func (uc *LifecycleUseCase) ListByClient(ctx context.Context, actor domain.Actor, clientID string) ([]dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleClient, entity.RoleOffice, entity.RoleManager); err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleClient && actor.ID != clientID {
		return nil, fmt.Errorf("%w: otro cliente", domain.ErrForbidden)
	}
	list, err := uc.repos.Orders.List(ctx, repository.OrderFilter{ClientID: clientID})
	if err != nil {
		return nil, err
	}
	return dto.FromRepairOrders(list), nil
}

// ListByTechnician el técnico solo ve su cola; el gerente la de cualquiera.
func (uc *LifecycleUseCase) ListByTechnician(ctx context.Context, actor domain.Actor, technicianID string) ([]dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician, entity.RoleManager); err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleTechnician && actor.ID != technicianID {
		return nil, fmt.Errorf("%w: cola de otro técnico", domain.ErrForbidden)
	}
	list, err := uc.repos.Orders.List(ctx, repository.OrderFilter{TechnicianID: technicianID})
	if err != nil {
		return nil, err
	}
	return dto.FromRepairOrders(list), nil
}
