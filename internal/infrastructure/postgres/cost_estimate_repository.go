package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var _ repository.CostEstimateRepository = (*CostEstimateRepo)(nil)

// CostEstimateRepo guarda las líneas como JSONB; los precios quedan congelados en el presupuesto.
type CostEstimateRepo struct {
	q Querier
}

const costEstimateColumns = `id, order_id, parts, actions, parts_cost, labour_cost, total_cost, approved, created_by, created_at, decided_at`

func scanCostEstimate(row pgxScanner) (*entity.CostEstimate, error) {
	var e entity.CostEstimate
	var parts, actions []byte
	err := row.Scan(&e.ID, &e.OrderID, &parts, &actions, &e.PartsCost, &e.LabourCost, &e.TotalCost,
		&e.Approved, &e.CreatedBy, &e.CreatedAt, &e.DecidedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(parts, &e.Parts); err != nil {
		return nil, fmt.Errorf("decode parts: %w", err)
	}
	if err := json.Unmarshal(actions, &e.Actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	return &e, nil
}

func encodeLines(e *entity.CostEstimate) (parts, actions []byte, err error) {
	if parts, err = json.Marshal(nonNil(e.Parts)); err != nil {
		return nil, nil, err
	}
	if actions, err = json.Marshal(nonNil(e.Actions)); err != nil {
		return nil, nil, err
	}
	return parts, actions, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *CostEstimateRepo) Create(ctx context.Context, e *entity.CostEstimate) error {
	parts, actions, err := encodeLines(e)
	if err != nil {
		return fmt.Errorf("encode estimate: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO cost_estimates (`+costEstimateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.OrderID, parts, actions, e.PartsCost, e.LabourCost, e.TotalCost,
		e.Approved, e.CreatedBy, e.CreatedAt, e.DecidedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "cost_estimates_one_pending_idx") {
			return fmt.Errorf("%w: la orden ya tiene un presupuesto pendiente", domain.ErrEstimateConflict)
		}
		return fmt.Errorf("insert cost estimate: %w", err)
	}
	return nil
}

func (r *CostEstimateRepo) GetByID(ctx context.Context, id string) (*entity.CostEstimate, error) {
	e, err := getOne(ctx, r.q, scanCostEstimate, `SELECT `+costEstimateColumns+` FROM cost_estimates WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get cost estimate: %w", err)
	}
	return e, nil
}

// Update persiste decisión y consumos; las líneas se reescriben porque Consumed vive en ellas.
func (r *CostEstimateRepo) Update(ctx context.Context, e *entity.CostEstimate) error {
	parts, actions, err := encodeLines(e)
	if err != nil {
		return fmt.Errorf("encode estimate: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		UPDATE cost_estimates SET parts = $2, actions = $3, parts_cost = $4, labour_cost = $5, total_cost = $6,
			approved = $7, decided_at = $8
		WHERE id = $1`,
		e.ID, parts, actions, e.PartsCost, e.LabourCost, e.TotalCost, e.Approved, e.DecidedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "cost_estimates_one_pending_idx") {
			return fmt.Errorf("%w: la orden ya tiene un presupuesto pendiente", domain.ErrEstimateConflict)
		}
		return fmt.Errorf("update cost estimate: %w", err)
	}
	return nil
}

func (r *CostEstimateRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.CostEstimate, error) {
	out, err := getMany(ctx, r.q, scanCostEstimate,
		`SELECT `+costEstimateColumns+` FROM cost_estimates WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list cost estimates: %w", err)
	}
	return out, nil
}
