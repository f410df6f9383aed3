// Package report tablero del gerente y exportación de órdenes.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// OrderRow fila del reporte de órdenes.
type OrderRow struct {
	Number       string
	Status       string
	Client       string
	Technician   string
	Device       string
	CreatedAt    time.Time
	EndDate      *time.Time
	WorkMinutes  int
	InvoiceTotal string
}

// SheetWriter serializa el reporte (xlsx).
type SheetWriter interface {
	WriteOrders(rows []OrderRow) ([]byte, error)
}

type ReportUseCase struct {
	repos  repository.Repos
	writer SheetWriter
}

func NewReportUseCase(repos repository.Repos, writer SheetWriter) *ReportUseCase {
	return &ReportUseCase{repos: repos, writer: writer}
}

// StatusSummary cantidad de órdenes por estado.
func (uc *ReportUseCase) StatusSummary(ctx context.Context, actor domain.Actor) (*dto.StatusSummary, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	counts, err := uc.repos.Orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StatusSummary{Counts: make(map[string]int, len(entity.AllOrderStatuses))}
	for _, st := range entity.AllOrderStatuses {
		n := counts[st]
		out.Counts[string(st)] = n
		out.Total += n
		if !lifecycle.IsTerminal(st) {
			out.Open += n
		}
	}
	return out, nil
}

// ExportOrders hoja de cálculo con las órdenes (filtro de estado opcional). Devuelve bytes y nombre.
func (uc *ReportUseCase) ExportOrders(ctx context.Context, actor domain.Actor, status string) ([]byte, string, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, "", err
	}
	var f repository.OrderFilter
	if status != "" {
		st, err := lifecycle.ParseStatus(status)
		if err != nil {
			return nil, "", err
		}
		f.Status = st
	}
	orders, err := uc.repos.Orders.List(ctx, f)
	if err != nil {
		return nil, "", err
	}

	names := map[string]string{}
	lookupClient := func(id string) string {
		if n, ok := names["c:"+id]; ok {
			return n
		}
		n := id
		if c, err := uc.repos.Clients.GetByID(ctx, id); err == nil && c != nil {
			n = c.FullName()
		}
		names["c:"+id] = n
		return n
	}
	lookupTech := func(id string) string {
		if id == "" {
			return ""
		}
		if n, ok := names["t:"+id]; ok {
			return n
		}
		n := id
		if e, err := uc.repos.Employees.GetByID(ctx, id); err == nil && e != nil {
			n = e.FullName()
		}
		names["t:"+id] = n
		return n
	}

	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		row := OrderRow{
			Number:      o.Number,
			Status:      string(o.Status),
			Client:      lookupClient(o.ClientID),
			Technician:  lookupTech(o.TechnicianID),
			Device:      o.DeviceDescription,
			CreatedAt:   o.CreatedAt,
			EndDate:     o.EndDate,
			WorkMinutes: o.TotalWorkTimeMinutes,
		}
		if o.Status == entity.StatusCompleted {
			if inv, err := uc.repos.Invoices.GetByOrderID(ctx, o.ID); err == nil && inv != nil {
				row.InvoiceTotal = inv.Amount.StringFixed(2)
			}
		}
		rows = append(rows, row)
	}

	data, err := uc.writer.WriteOrders(rows)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	return data, fmt.Sprintf("ordenes_%s.xlsx", time.Now().Format("20060102")), nil
}
