package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest alta de personal (gerente).
type CreateEmployeeRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	SkillLevel string `json:"skill_level"`
}

type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Role       *string `json:"role"`
	SkillLevel *string `json:"skill_level"`
	Password   *string `json:"password"`
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	SkillLevel string    `json:"skill_level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateClientRequest alta de cliente en recepción. El PIN se genera y se envía aparte.
type CreateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceActionRequest alta o edición de una acción del catálogo.
type ServiceActionRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"string"`
}

type ServiceActionResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"string"`
}
