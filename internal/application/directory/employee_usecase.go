// Package directory administra personal, clientes y el catálogo de acciones de servicio.
package directory

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

const minPasswordLen = 8

// EmployeeUseCase altas y cambios del personal; solo el gerente.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

func (uc *EmployeeUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	return uc.create(ctx, in)
}

// Bootstrap crea el primer gerente sin actor (cmd/migrate). No hace nada si el email ya existe.
func (uc *EmployeeUseCase) Bootstrap(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, bool, error) {
	existing, err := uc.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		res := dto.FromEmployee(existing)
		return &res, false, nil
	}
	in.Role = string(entity.RoleManager)
	res, err := uc.create(ctx, in)
	return res, err == nil, err
}

func (uc *EmployeeUseCase) create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	role := entity.Role(strings.ToUpper(in.Role))
	if !role.IsEmployeeRole() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrValidation, in.Role)
	}
	skill := entity.SkillLevel(strings.ToUpper(in.SkillLevel))
	if !skill.Valid() {
		return nil, fmt.Errorf("%w: nivel %q", domain.ErrValidation, in.SkillLevel)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrValidation, minPasswordLen)
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s", domain.ErrDuplicate, email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Employee{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		SkillLevel:   skill,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	res := dto.FromEmployee(e)
	return &res, nil
}

func (uc *EmployeeUseCase) Update(ctx context.Context, actor domain.Actor, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
	}
	if in.FirstName != nil {
		e.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		e.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		role := entity.Role(strings.ToUpper(*in.Role))
		if !role.IsEmployeeRole() {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrValidation, *in.Role)
		}
		e.Role = role
	}
	if in.SkillLevel != nil {
		skill := entity.SkillLevel(strings.ToUpper(*in.SkillLevel))
		if !skill.Valid() {
			return nil, fmt.Errorf("%w: nivel %q", domain.ErrValidation, *in.SkillLevel)
		}
		e.SkillLevel = skill
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: contraseña corta", domain.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		e.PasswordHash = string(hash)
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	res := dto.FromEmployee(e)
	return &res, nil
}

func (uc *EmployeeUseCase) Get(ctx context.Context, actor domain.Actor, id string) (*dto.EmployeeResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
	}
	res := dto.FromEmployee(e)
	return &res, nil
}

// List con filtro opcional de rol (p.ej. TECHNICIAN para asignar).
func (uc *EmployeeUseCase) List(ctx context.Context, actor domain.Actor, role string) ([]dto.EmployeeResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, entity.Role(strings.ToUpper(role)))
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromEmployee(e))
	}
	return out, nil
}
