package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
)

// InventoryHandler consola de bodega.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSparePartRequest  true  "name, category, quantity, min_quantity, price"
// @Success      201   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPart(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar repuesto
// @Description  No cambia la cantidad; el stock se mueve con retiros y recepciones.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID del repuesto"
// @Param        body  body  dto.UpdateSparePartRequest  true  "name, category, min_quantity, price"
// @Success      200   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [patch]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePart(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del repuesto"
// @Success      200   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetPart(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar repuestos
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "categoría"
// @Param        low  query  boolean  false  "solo bajo mínimo"
// @Success      200   {array}   dto.SparePartResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/parts [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var (
		out []dto.SparePartResponse
		err error
	)
	if c.QueryBool("low") {
		out, err = h.uc.LowStock(c.Context())
	} else {
		out, err = h.uc.ListParts(c.Context(), c.Query("category"))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Withdraw godoc
// @Summary      Retirar stock
// @Description  Falla sin tocar el stock si no alcanza.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID del repuesto"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/withdraw [post]
func (h *InventoryHandler) Withdraw(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Withdraw(c.Context(), actorFrom(c), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir stock de un repuesto
// @Description  Acredita y concilia los pedidos abiertos del repuesto.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID del repuesto"
// @Param        body  body  dto.StockQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.ReceiptResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Receive(c.Context(), actorFrom(c), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReceiveDelivery godoc
// @Summary      Recibir entrega del proveedor
// @Description  Acredita todos los ítems, concilia pedidos y promueve las órdenes completas, en una transacción.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveDeliveryRequest  true  "items: part_id, quantity"
// @Success      200   {object}  dto.ReceiptResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *InventoryHandler) ReceiveDelivery(c *fiber.Ctx) error {
	var in dto.ReceiveDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReceiveDelivery(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Shortage godoc
// @Summary      Faltante de repuestos de la orden
// @Description  max(0, necesario - en bodega) por línea del presupuesto aprobado.
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {array}   dto.ShortageLine
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/shortage [get]
func (h *InventoryHandler) Shortage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Shortage(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportDiscrepancy godoc
// @Summary      Reportar discrepancia de inventario
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscrepancyRequest  true  "part_id, quantity, reason"
// @Success      201   {object}  dto.DiscrepancyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/discrepancies [post]
func (h *InventoryHandler) ReportDiscrepancy(c *fiber.Ctx) error {
	var in dto.DiscrepancyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReportDiscrepancy(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDiscrepancies godoc
// @Summary      Listar discrepancias
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        part_id  query  string  false  "UUID del repuesto"
// @Success      200   {array}   dto.DiscrepancyResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/discrepancies [get]
func (h *InventoryHandler) ListDiscrepancies(c *fiber.Ctx) error {
	out, err := h.uc.ListDiscrepancies(c.Context(), actorFrom(c), c.Query("part_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
