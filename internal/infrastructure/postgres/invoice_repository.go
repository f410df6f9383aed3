package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo documento de venta. invoices_order_id_key garantiza uno por orden.
type InvoiceRepo struct {
	q Querier
}

const invoiceColumns = `id, order_id, client_id, amount, payment_method, status, document_number, issue_date, created_by`

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.OrderID, &inv.ClientID, &inv.Amount, &inv.PaymentMethod, &inv.Status,
		&inv.DocumentNumber, &inv.IssueDate, &inv.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.OrderID, inv.ClientID, inv.Amount, inv.PaymentMethod, inv.Status,
		inv.DocumentNumber, inv.IssueDate, inv.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: la orden ya tiene documento de venta", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := getOne(ctx, r.q, scanInvoice, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	inv, err := getOne(ctx, r.q, scanInvoice, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get invoice by order: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}
