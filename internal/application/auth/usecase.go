package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
	"github.com/jhoicas/Reparaciones-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase convierte credenciales en un token con la identidad y el rol del actor.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	clients   repository.ClientRepository
	jwtCfg    JWTConfig
}

func NewAuthUseCase(employees repository.EmployeeRepository, clients repository.ClientRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employees: employees, clients: clients, jwtCfg: jwtCfg}
}

// LoginEmployee email + contraseña del personal.
func (uc *AuthUseCase) LoginEmployee(ctx context.Context, in dto.EmployeeLoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	e, err := uc.employees.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	// mismo error para usuario inexistente y clave incorrecta
	if e == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(e.ID, e.Role)
}

// LoginClient teléfono + PIN del cliente.
func (uc *AuthUseCase) LoginClient(ctx context.Context, in dto.ClientLoginRequest) (*dto.LoginResponse, error) {
	if in.Phone == "" || in.PIN == "" {
		return nil, domain.ErrValidation
	}
	c, err := uc.clients.GetByPhone(ctx, strings.TrimSpace(in.Phone))
	if err != nil {
		return nil, err
	}
	if c == nil || c.PINHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PINHash), []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(c.ID, entity.RoleClient)
}

func (uc *AuthUseCase) issue(actorID string, role entity.Role) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, actorID, string(role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ActorID:   actorID,
		Role:      string(role),
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
