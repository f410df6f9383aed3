package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/billing"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// BillingHandler cobro y documento de venta.
type BillingHandler struct {
	settlement *billing.SettlementUseCase
	document   *billing.DocumentUseCase
}

func NewBillingHandler(settlement *billing.SettlementUseCase, document *billing.DocumentUseCase) *BillingHandler {
	return &BillingHandler{settlement: settlement, document: document}
}

// Settle godoc
// @Summary      Cobrar orden
// @Description  READY_FOR_PICKUP -> COMPLETED y factura por el total del presupuesto aprobado.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.SettleRequest  true  "payment_method: CASH, CARD o BANK_TRANSFER"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/settle [post]
func (h *BillingHandler) Settle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	method := entity.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.PaymentMethod)))
	out, err := h.settlement.Settle(c.Context(), actorFrom(c), id, method)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Invoice godoc
// @Summary      Factura de la orden
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [get]
func (h *BillingHandler) Invoice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.settlement.GetInvoiceByOrder(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Document godoc
// @Summary      Documento de venta en PDF
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/document [get]
func (h *BillingHandler) Document(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.document.RenderDocument(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
