package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var _ repository.PartOrderRepository = (*PartOrderRepo)(nil)

type PartOrderRepo struct {
	q Querier
}

const partOrderColumns = `id, part_id, quantity, status, repair_order_id, order_date, estimated_delivery, created_at, updated_at`

func scanPartOrder(row pgxScanner) (*entity.PartOrder, error) {
	var p entity.PartOrder
	var repairOrderID *string
	err := row.Scan(&p.ID, &p.PartID, &p.Quantity, &p.Status, &repairOrderID, &p.OrderDate,
		&p.EstimatedDelivery, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.RepairOrderID = derefString(repairOrderID)
	return &p, nil
}

func (r *PartOrderRepo) Create(ctx context.Context, p *entity.PartOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO part_orders (`+partOrderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.PartID, p.Quantity, p.Status, nullIfEmpty(p.RepairOrderID), p.OrderDate,
		p.EstimatedDelivery, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert part order: %w", err)
	}
	return nil
}

func (r *PartOrderRepo) GetByID(ctx context.Context, id string) (*entity.PartOrder, error) {
	p, err := getOne(ctx, r.q, scanPartOrder, `SELECT `+partOrderColumns+` FROM part_orders WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get part order: %w", err)
	}
	return p, nil
}

func (r *PartOrderRepo) Update(ctx context.Context, p *entity.PartOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE part_orders SET status = $2, estimated_delivery = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Status, p.EstimatedDelivery, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part order: %w", err)
	}
	return nil
}

// ListOpenByPart FIFO por fecha de pedido; el id desempata pedidos del mismo instante.
func (r *PartOrderRepo) ListOpenByPart(ctx context.Context, partID string) ([]*entity.PartOrder, error) {
	out, err := getMany(ctx, r.q, scanPartOrder, `
		SELECT `+partOrderColumns+` FROM part_orders
		WHERE part_id = $1 AND status IN ('ORDERED', 'IN_DELIVERY')
		ORDER BY order_date, created_at, id`, partID)
	if err != nil {
		return nil, fmt.Errorf("list open part orders: %w", err)
	}
	return out, nil
}

func (r *PartOrderRepo) ListByRepairOrder(ctx context.Context, repairOrderID string) ([]*entity.PartOrder, error) {
	out, err := getMany(ctx, r.q, scanPartOrder,
		`SELECT `+partOrderColumns+` FROM part_orders WHERE repair_order_id = $1 ORDER BY order_date`, repairOrderID)
	if err != nil {
		return nil, fmt.Errorf("list part orders by repair order: %w", err)
	}
	return out, nil
}

func (r *PartOrderRepo) List(ctx context.Context, f repository.PartOrderFilter) ([]*entity.PartOrder, error) {
	out, err := getMany(ctx, r.q, scanPartOrder, `
		SELECT `+partOrderColumns+` FROM part_orders
		WHERE ($1::text = '' OR status = $1)
		  AND ($2::text = '' OR part_id::text = $2)
		ORDER BY order_date`, string(f.Status), f.PartID)
	if err != nil {
		return nil, fmt.Errorf("list part orders: %w", err)
	}
	return out, nil
}
