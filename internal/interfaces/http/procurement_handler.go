package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/procurement"
)

type ProcurementHandler struct {
	uc *procurement.ReconcilerUseCase
}

func NewProcurementHandler(uc *procurement.ReconcilerUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido a proveedor
// @Description  La orden de reparación vinculada es opcional.
// @Tags         part-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartOrderRequest  true  "part_id, quantity, repair_order_id, estimated_delivery"
// @Success      201   {object}  dto.PartOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/part-orders [post]
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePartOrder(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         part-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "ORDERED, IN_DELIVERY, DELIVERED o CANCELLED"
// @Success      200   {array}   dto.PartOrderResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/part-orders [get]
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPartOrders(c.Context(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         part-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del pedido"
// @Success      200   {object}  dto.PartOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/part-orders/{id} [get]
func (h *ProcurementHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetPartOrder(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InDelivery godoc
// @Summary      Marcar pedido en camino
// @Description  Cuerpo opcional con la fecha estimada.
// @Tags         part-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID del pedido"
// @Param        body  body  dto.MarkInDeliveryRequest  false  "estimated_delivery"
// @Success      200   {object}  dto.PartOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/part-orders/{id}/in-delivery [post]
func (h *ProcurementHandler) InDelivery(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.MarkInDeliveryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.MarkInDelivery(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Puede dejar lista la orden vinculada si era su último pedido abierto.
// @Tags         part-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del pedido"
// @Success      200   {object}  dto.PartOrderChange
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/part-orders/{id}/cancel [post]
func (h *ProcurementHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CancelPartOrder(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByRepairOrder godoc
// @Summary      Pedidos de una orden
// @Tags         part-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {array}   dto.PartOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/part-orders [get]
func (h *ProcurementHandler) ByRepairOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByRepairOrder(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
