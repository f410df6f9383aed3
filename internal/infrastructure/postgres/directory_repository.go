package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository      = (*EmployeeRepo)(nil)
	_ repository.ClientRepository        = (*ClientRepo)(nil)
	_ repository.ServiceActionRepository = (*ServiceActionRepo)(nil)
)

// ── employees ────────────────────────────────────────────────────────────────

type EmployeeRepo struct {
	q Querier
}

const employeeColumns = `id, first_name, last_name, email, password_hash, role, skill_level, created_at, updated_at`

func scanEmployee(row pgxScanner) (*entity.Employee, error) {
	var e entity.Employee
	var skill *string
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash, &e.Role, &skill, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.SkillLevel = entity.SkillLevel(derefString(skill))
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.FirstName, e.LastName, strings.ToLower(e.Email), e.PasswordHash, e.Role,
		nullIfEmpty(string(e.SkillLevel)), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: email %s", domain.ErrDuplicate, e.Email)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := getOne(ctx, r.q, scanEmployee, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	e, err := getOne(ctx, r.q, scanEmployee, `SELECT `+employeeColumns+` FROM employees WHERE email = lower($1)`, email)
	if err != nil {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		UPDATE employees SET first_name = $2, last_name = $3, email = lower($4), password_hash = $5,
			role = $6, skill_level = $7, updated_at = $8
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.Role, nullIfEmpty(string(e.SkillLevel)), e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: email %s", domain.ErrDuplicate, e.Email)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, role entity.Role) ([]*entity.Employee, error) {
	out, err := getMany(ctx, r.q, scanEmployee, `
		SELECT `+employeeColumns+` FROM employees
		WHERE ($1::text = '' OR role = $1)
		ORDER BY last_name, first_name`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// ── clients ──────────────────────────────────────────────────────────────────

type ClientRepo struct {
	q Querier
}

const clientColumns = `id, first_name, last_name, phone, email, pin_hash, created_at`

func scanClient(row pgxScanner) (*entity.Client, error) {
	var c entity.Client
	var email *string
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &email, &c.PINHash, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Email = derefString(email)
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.FirstName, c.LastName, c.Phone, nullIfEmpty(c.Email), c.PINHash, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, c.Phone)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := getOne(ctx, r.q, scanClient, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	c, err := getOne(ctx, r.q, scanClient, `SELECT `+clientColumns+` FROM clients WHERE phone = $1`, phone)
	if err != nil {
		return nil, fmt.Errorf("get client by phone: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		UPDATE clients SET first_name = $2, last_name = $3, phone = $4, email = $5, pin_hash = $6
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Phone, nullIfEmpty(c.Email), c.PINHash,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, c.Phone)
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context, search string) ([]*entity.Client, error) {
	out, err := getMany(ctx, r.q, scanClient, `
		SELECT `+clientColumns+` FROM clients
		WHERE $1::text = '' OR (first_name || ' ' || last_name) ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
		ORDER BY created_at`, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

// ── service actions ──────────────────────────────────────────────────────────

type ServiceActionRepo struct {
	q Querier
}

func scanServiceAction(row pgxScanner) (*entity.ServiceAction, error) {
	var a entity.ServiceAction
	if err := row.Scan(&a.ID, &a.Name, &a.Price, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ServiceActionRepo) Create(ctx context.Context, a *entity.ServiceAction) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO service_actions (id, name, price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Price, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service action: %w", err)
	}
	return nil
}

func (r *ServiceActionRepo) GetByID(ctx context.Context, id string) (*entity.ServiceAction, error) {
	a, err := getOne(ctx, r.q, scanServiceAction,
		`SELECT id, name, price, created_at, updated_at FROM service_actions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get service action: %w", err)
	}
	return a, nil
}

func (r *ServiceActionRepo) Update(ctx context.Context, a *entity.ServiceAction) error {
	_, err := r.q.Exec(ctx,
		`UPDATE service_actions SET name = $2, price = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Name, a.Price, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service action: %w", err)
	}
	return nil
}

func (r *ServiceActionRepo) List(ctx context.Context) ([]*entity.ServiceAction, error) {
	out, err := getMany(ctx, r.q, scanServiceAction,
		`SELECT id, name, price, created_at, updated_at FROM service_actions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list service actions: %w", err)
	}
	return out, nil
}
