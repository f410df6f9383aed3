package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var (
	_ repository.RepairOrderRepository = (*RepairOrderRepo)(nil)
	_ repository.WorkLogRepository     = (*WorkLogRepo)(nil)
)

type RepairOrderRepo struct {
	q Querier
}

const repairOrderColumns = `id, number, client_id, technician_id, status, device_description, problem_description,
	diagnosis_notes, manager_notes, total_work_time_minutes, created_at, start_date, end_date, updated_at`

func scanRepairOrder(row pgxScanner) (*entity.RepairOrder, error) {
	var o entity.RepairOrder
	var tech *string
	err := row.Scan(
		&o.ID, &o.Number, &o.ClientID, &tech, &o.Status, &o.DeviceDescription, &o.ProblemDescription,
		&o.DiagnosisNotes, &o.ManagerNotes, &o.TotalWorkTimeMinutes, &o.CreatedAt, &o.StartDate, &o.EndDate, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.TechnicianID = derefString(tech)
	return &o, nil
}

func (r *RepairOrderRepo) Create(ctx context.Context, o *entity.RepairOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO repair_orders (`+repairOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.Number, o.ClientID, nullIfEmpty(o.TechnicianID), o.Status, o.DeviceDescription, o.ProblemDescription,
		o.DiagnosisNotes, o.ManagerNotes, o.TotalWorkTimeMinutes, o.CreatedAt, o.StartDate, o.EndDate, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.Number)
		}
		return fmt.Errorf("insert repair order: %w", err)
	}
	return nil
}

func (r *RepairOrderRepo) GetByID(ctx context.Context, id string) (*entity.RepairOrder, error) {
	o, err := getOne(ctx, r.q, scanRepairOrder, `SELECT `+repairOrderColumns+` FROM repair_orders WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get repair order: %w", err)
	}
	return o, nil
}

func (r *RepairOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairOrder, error) {
	o, err := getOne(ctx, r.q, scanRepairOrder, `SELECT `+repairOrderColumns+` FROM repair_orders WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("lock repair order: %w", err)
	}
	return o, nil
}

func (r *RepairOrderRepo) Update(ctx context.Context, o *entity.RepairOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE repair_orders SET technician_id = $2, status = $3, device_description = $4, problem_description = $5,
			diagnosis_notes = $6, manager_notes = $7, total_work_time_minutes = $8, start_date = $9, end_date = $10, updated_at = $11
		WHERE id = $1`,
		o.ID, nullIfEmpty(o.TechnicianID), o.Status, o.DeviceDescription, o.ProblemDescription,
		o.DiagnosisNotes, o.ManagerNotes, o.TotalWorkTimeMinutes, o.StartDate, o.EndDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update repair order: %w", err)
	}
	return nil
}

func (r *RepairOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.RepairOrder, error) {
	var limit *int
	if f.Limit > 0 {
		limit = &f.Limit
	}
	out, err := getMany(ctx, r.q, scanRepairOrder, `
		SELECT `+repairOrderColumns+` FROM repair_orders
		WHERE ($1::text = '' OR status = $1)
		  AND ($2::text = '' OR client_id::text = $2)
		  AND ($3::text = '' OR technician_id::text = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`,
		string(f.Status), f.ClientID, f.TechnicianID, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list repair orders: %w", err)
	}
	return out, nil
}

func (r *RepairOrderRepo) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM repair_orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count repair orders: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.OrderStatus]int)
	for rows.Next() {
		var st entity.OrderStatus
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[st] = n
	}
	return out, rows.Err()
}

func (r *RepairOrderRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('repair_order_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return n, nil
}

// ── work logs ────────────────────────────────────────────────────────────────

type WorkLogRepo struct {
	q Querier
}

const workLogColumns = `id, order_id, technician_id, start_time, end_time, duration_minutes`

func scanWorkLog(row pgxScanner) (*entity.WorkLog, error) {
	var w entity.WorkLog
	if err := row.Scan(&w.ID, &w.OrderID, &w.TechnicianID, &w.StartTime, &w.EndTime, &w.DurationMinutes); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkLogRepo) Create(ctx context.Context, w *entity.WorkLog) error {
	_, err := r.q.Exec(ctx, `INSERT INTO work_logs (`+workLogColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.OrderID, w.TechnicianID, w.StartTime, w.EndTime, w.DurationMinutes,
	)
	if err != nil {
		if isUniqueViolation(err, "work_logs_one_open_idx") {
			return fmt.Errorf("%w: ya hay un tramo abierto", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert work log: %w", err)
	}
	return nil
}

func (r *WorkLogRepo) Update(ctx context.Context, w *entity.WorkLog) error {
	_, err := r.q.Exec(ctx, `UPDATE work_logs SET end_time = $2, duration_minutes = $3 WHERE id = $1`,
		w.ID, w.EndTime, w.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("update work log: %w", err)
	}
	return nil
}

func (r *WorkLogRepo) GetOpen(ctx context.Context, orderID, technicianID string) (*entity.WorkLog, error) {
	w, err := getOne(ctx, r.q, scanWorkLog, `
		SELECT `+workLogColumns+` FROM work_logs
		WHERE order_id = $1 AND technician_id = $2 AND end_time IS NULL`, orderID, technicianID)
	if err != nil {
		return nil, fmt.Errorf("get open work log: %w", err)
	}
	return w, nil
}

func (r *WorkLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.WorkLog, error) {
	out, err := getMany(ctx, r.q, scanWorkLog,
		`SELECT `+workLogColumns+` FROM work_logs WHERE order_id = $1 ORDER BY start_time`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list work logs: %w", err)
	}
	return out, nil
}
