package entity

import "time"

// Role rol de quien actúa sobre el sistema. CLIENT no es empleado pero comparte el mismo token.
type Role string

const (
	RoleOffice     Role = "OFFICE"
	RoleTechnician Role = "TECHNICIAN"
	RoleWarehouse  Role = "WAREHOUSE"
	RoleManager    Role = "MANAGER"
	RoleClient     Role = "CLIENT"
)

// IsEmployeeRole true para los cuatro roles de personal.
func (r Role) IsEmployeeRole() bool {
	switch r {
	case RoleOffice, RoleTechnician, RoleWarehouse, RoleManager:
		return true
	}
	return false
}

// SkillLevel nivel del técnico (opcional).
type SkillLevel string

const (
	SkillJunior SkillLevel = "JUNIOR"
	SkillMid    SkillLevel = "MID"
	SkillSenior SkillLevel = "SENIOR"
)

// Valid acepta el valor vacío (sin nivel).
func (s SkillLevel) Valid() bool {
	switch s {
	case "", SkillJunior, SkillMid, SkillSenior:
		return true
	}
	return false
}

// Employee personal del taller.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	SkillLevel   SkillLevel
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para documentos y reportes.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
