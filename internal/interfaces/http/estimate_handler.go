package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/estimate"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
)

type EstimateHandler struct {
	uc *estimate.EstimateUseCase
}

func NewEstimateHandler(uc *estimate.EstimateUseCase) *EstimateHandler {
	return &EstimateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear presupuesto
// @Description  Técnico asignado; copia los precios del catálogo y pasa la orden a WAITING_FOR_ACCEPTANCE.
// @Tags         estimates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.CreateEstimateRequest  true  "parts (part_id, quantity), action_ids"
// @Success      201   {object}  dto.CostEstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/estimates [post]
func (h *EstimateHandler) Create(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar presupuesto
// @Description  Una sola decisión. Aprobado: IN_PROGRESS o WAITING_FOR_PARTS con pedidos. Rechazado: CANCELLED.
// @Tags         estimates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.DecideEstimateRequest  true  "approved"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/estimate/decision [post]
func (h *EstimateHandler) Decide(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.DecideEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Approved == nil {
		return writeError(c, fmt.Errorf("%w: approved es obligatorio", domain.ErrValidation))
	}
	out, err := h.uc.Decide(c.Context(), actorFrom(c), id, *in.Approved)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Active godoc
// @Summary      Presupuesto vigente
// @Description  El pendiente o, si no hay, el último decidido.
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.CostEstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/estimate [get]
func (h *EstimateHandler) Active(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetActive(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de presupuestos
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {array}   dto.CostEstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/estimates [get]
func (h *EstimateHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByOrder(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
