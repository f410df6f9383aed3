package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var (
	_ repository.SparePartRepository   = (*SparePartRepo)(nil)
	_ repository.DiscrepancyRepository = (*DiscrepancyRepo)(nil)
)

// SparePartRepo libro de inventario sobre la tabla spare_parts. El CHECK (quantity >= 0) es la última barrera.
type SparePartRepo struct {
	q Querier
}

const sparePartColumns = `id, name, category, quantity, min_quantity, price, created_at, updated_at`

func scanSparePart(row pgxScanner) (*entity.SparePart, error) {
	var p entity.SparePart
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.MinQuantity, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SparePartRepo) Create(ctx context.Context, p *entity.SparePart) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO spare_parts (`+sparePartColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Category, p.Quantity, p.MinQuantity, p.Price, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: repuesto %s", domain.ErrDuplicate, p.Name)
		}
		return fmt.Errorf("insert spare part: %w", err)
	}
	return nil
}

func (r *SparePartRepo) GetByID(ctx context.Context, id string) (*entity.SparePart, error) {
	p, err := getOne(ctx, r.q, scanSparePart, `SELECT `+sparePartColumns+` FROM spare_parts WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get spare part: %w", err)
	}
	return p, nil
}

// GetForUpdate SELECT ... FOR UPDATE; solo tiene efecto dentro de una tx.
func (r *SparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	p, err := getOne(ctx, r.q, scanSparePart, `SELECT `+sparePartColumns+` FROM spare_parts WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("lock spare part: %w", err)
	}
	return p, nil
}

func (r *SparePartRepo) Update(ctx context.Context, p *entity.SparePart) error {
	_, err := r.q.Exec(ctx, `
		UPDATE spare_parts SET name = $2, category = $3, quantity = $4, min_quantity = $5, price = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Quantity, p.MinQuantity, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update spare part: %w", err)
	}
	return nil
}

func (r *SparePartRepo) List(ctx context.Context, f repository.SparePartFilter) ([]*entity.SparePart, error) {
	out, err := getMany(ctx, r.q, scanSparePart, `
		SELECT `+sparePartColumns+` FROM spare_parts
		WHERE ($1::text = '' OR lower(category) = lower($1))
		  AND (NOT $2::boolean OR quantity < min_quantity)
		ORDER BY name`, f.Category, f.LowOnly)
	if err != nil {
		return nil, fmt.Errorf("list spare parts: %w", err)
	}
	return out, nil
}

// ── discrepancies ────────────────────────────────────────────────────────────

type DiscrepancyRepo struct {
	q Querier
}

func scanDiscrepancy(row pgxScanner) (*entity.StockDiscrepancy, error) {
	var d entity.StockDiscrepancy
	if err := row.Scan(&d.ID, &d.PartID, &d.Quantity, &d.Reason, &d.ReportedBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscrepancyRepo) Create(ctx context.Context, d *entity.StockDiscrepancy) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_discrepancies (id, part_id, quantity, reason, reported_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.PartID, d.Quantity, d.Reason, d.ReportedBy, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert discrepancy: %w", err)
	}
	return nil
}

func (r *DiscrepancyRepo) List(ctx context.Context, partID string) ([]*entity.StockDiscrepancy, error) {
	out, err := getMany(ctx, r.q, scanDiscrepancy, `
		SELECT id, part_id, quantity, reason, reported_by, created_at FROM stock_discrepancies
		WHERE ($1::text = '' OR part_id::text = $1)
		ORDER BY created_at`, partID)
	if err != nil {
		return nil, fmt.Errorf("list discrepancies: %w", err)
	}
	return out, nil
}
