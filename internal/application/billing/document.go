package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// DocumentUseCase genera la representación gráfica (PDF) del documento de venta de una orden cobrada.
type DocumentUseCase struct {
	repos    repository.Repos
	renderer DocumentRenderer
	shopName string
}

func NewDocumentUseCase(repos repository.Repos, renderer DocumentRenderer, shopName string) *DocumentUseCase {
	return &DocumentUseCase{repos: repos, renderer: renderer, shopName: shopName}
}

// RenderDocument devuelve (pdfBytes, filename). Solo existe documento después del cobro.
func (uc *DocumentUseCase) RenderDocument(ctx context.Context, actor domain.Actor, orderID string) ([]byte, string, error) {
	o, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if o == nil {
		return nil, "", fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	if err := order.CanView(actor, o); err != nil {
		return nil, "", err
	}
	inv, err := uc.repos.Invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", fmt.Errorf("%w: la orden %s aún no fue cobrada", domain.ErrNotFound, orderID)
	}
	client, err := uc.repos.Clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.ClientID)
	}
	est, err := inventory.ApprovedEstimate(ctx, uc.repos, orderID)
	if err != nil {
		return nil, "", err
	}
	doc := SaleDocument{ShopName: uc.shopName, Invoice: inv, Order: o, Client: client, Estimate: est}
	if o.TechnicianID != "" {
		if tech, err := uc.repos.Employees.GetByID(ctx, o.TechnicianID); err == nil {
			doc.Technician = tech
		}
	}

	pdf, err := uc.renderer.RenderSaleDocument(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("documento_%s.pdf", inv.DocumentNumber), nil
}
