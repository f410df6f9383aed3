// Package pdf genera el documento de venta de una orden de reparación con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller               │  N° Documento + Fecha        │
//	│  CLIENTE + EQUIPO / ORDEN                                    │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal               │
//	│  TOTALES: Repuestos / Mano de obra / TOTAL PAGADO + método   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Reparaciones-api/internal/application/billing"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

var _ billing.DocumentRenderer = (*MarotoDocumentGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var paymentLabels = map[entity.PaymentMethod]string{
	entity.PaymentCash:         "Efectivo",
	entity.PaymentCard:         "Tarjeta",
	entity.PaymentBankTransfer: "Transferencia",
}

// MarotoDocumentGenerator implementa billing.DocumentRenderer.
type MarotoDocumentGenerator struct {
	printer *message.Printer
}

func NewMarotoDocumentGenerator() *MarotoDocumentGenerator {
	return &MarotoDocumentGenerator{printer: message.NewPrinter(language.Spanish)}
}

// RenderSaleDocument genera el PDF y devuelve sus bytes.
func (g *MarotoDocumentGenerator) RenderSaleDocument(_ context.Context, doc billing.SaleDocument) ([]byte, error) {
	if doc.Invoice == nil || doc.Order == nil || doc.Client == nil || doc.Estimate == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento de venta "+doc.Invoice.DocumentNumber, true).
		WithAuthor(nonEmpty(doc.ShopName, "Servicio Técnico"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(doc))
	m.AddRows(orderRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(doc.Estimate)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoDocumentGenerator) headerRow(doc billing.SaleDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.ShopName, "Servicio Técnico"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden "+doc.Order.Number, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("DOCUMENTO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Invoice.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Invoice.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(doc billing.SaleDocument) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(doc.Client.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(doc.Client.Phone, "—"),
				nonEmpty(doc.Client.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func orderRow(doc billing.SaleDocument) core.Row {
	tech := "—"
	if doc.Technician != nil {
		tech = doc.Technician.FullName()
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(doc.Order.DeviceDescription, props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Falla: %s   |   Técnico: %s",
				nonEmpty(doc.Order.ProblemDescription, "—"), tech,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows una fila por repuesto y una por acción de mano de obra.
func (g *MarotoDocumentGenerator) tableRows(est *entity.CostEstimate) []core.Row {
	out := make([]core.Row, 0, len(est.Parts)+len(est.Actions))
	add := func(qty int, desc string, unit, subtotal decimal.Decimal) {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(unit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	for _, l := range est.Parts {
		add(l.Quantity, l.PartName, l.UnitPrice, l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	for _, a := range est.Actions {
		add(1, a.Name, a.Price, a.Price)
	}
	return out
}

func (g *MarotoDocumentGenerator) totalsRow(doc billing.SaleDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: right, Top: 12,
		})
	}
	method := paymentLabels[doc.Invoice.PaymentMethod]

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Repuestos:"),
			text.New("Mano de obra:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			grand("TOTAL PAGADO:", 2),
		),
		col.New(3).Add(
			value(g.money(doc.Estimate.PartsCost)),
			text.New(g.money(doc.Estimate.LabourCost), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			grand(g.money(doc.Invoice.Amount), 1),
		),
		col.New(3).Add(
			text.New("Pago: "+nonEmpty(method, string(doc.Invoice.PaymentMethod)), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 13,
			}),
		),
	)
}

// money 1234.5 -> "$1.234,50".
func (g *MarotoDocumentGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
