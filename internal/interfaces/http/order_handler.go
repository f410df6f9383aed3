package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// OrderHandler recepción, consola del gerente y del técnico sobre la misma orden.
type OrderHandler struct {
	uc *order.LifecycleUseCase
}

func NewOrderHandler(uc *order.LifecycleUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar orden de reparación
// @Description  Recepción registra el equipo del cliente; la orden nace en NEW.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "client_id, device_description, problem_description"
// @Success      201   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Description  Paginado; filtro opcional por estado.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "estado de la orden"
// @Param        limit  query  integer  false  "1..100"
// @Param        offset  query  integer  false  "desde 0"
// @Success      200   {object}  dto.OrderListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListAll(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyOrders godoc
// @Summary      Órdenes del usuario del token
// @Description  Cliente: sus órdenes. Técnico: las asignadas.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200   {array}   dto.RepairOrderResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/me/orders [get]
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	a := actorFrom(c)
	var (
		out []dto.RepairOrderResponse
		err error
	)
	if a.Role == entity.RoleTechnician {
		out, err = h.uc.ListByTechnician(c.Context(), a, a.ID)
	} else {
		out, err = h.uc.ListByClient(c.Context(), a, a.ID)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByClient godoc
// @Summary      Órdenes de un cliente
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del cliente"
// @Success      200   {array}   dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/orders [get]
func (h *OrderHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByClient(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByTechnician godoc
// @Summary      Órdenes asignadas a un técnico
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del técnico"
// @Success      200   {array}   dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/orders [get]
func (h *OrderHandler) ByTechnician(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByTechnician(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar técnico
// @Description  Gerente; NEW -> WAITING_FOR_TECHNICIAN.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.AssignTechnicianRequest  true  "technician_id"
// @Success      200   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/assign [post]
func (h *OrderHandler) Assign(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AssignTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignTechnician(c.Context(), actorFrom(c), id, in.TechnicianID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StartDiagnosis godoc
// @Summary      Iniciar diagnóstico
// @Description  Técnico asignado; WAITING_FOR_TECHNICIAN -> DIAGNOSING.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/diagnosis [post]
func (h *OrderHandler) StartDiagnosis(c *fiber.Ctx) error {
	return h.simple(c, h.uc.StartDiagnosis)
}

// Unrepairable godoc
// @Summary      Marcar irreparable
// @Description  Técnico asignado; DIAGNOSING -> CANCELLED.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.ReasonRequest  true  "reason"
// @Success      200   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/unrepairable [post]
func (h *OrderHandler) Unrepairable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReasonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MarkUnrepairable(c.Context(), actorFrom(c), id, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Terminar reparación
// @Description  IN_PROGRESS -> READY_FOR_PICKUP; avisa los repuestos presupuestados sin consumir.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.FinishRepairResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/finish [post]
func (h *OrderHandler) Finish(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.FinishRepair(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resume godoc
// @Summary      Retomar reparación
// @Description  WAITING_FOR_TECHNICIAN -> IN_PROGRESS con presupuesto aprobado; si falta stock vuelve a WAITING_FOR_PARTS.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.ExecutionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/resume [post]
func (h *OrderHandler) Resume(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ResumeRepair(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Backorder godoc
// @Summary      Pedir repuestos faltantes
// @Description  IN_PROGRESS -> WAITING_FOR_PARTS con pedidos vinculados a la orden.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.BackorderRequest  true  "items: part_id, quantity"
// @Success      200   {object}  dto.ExecutionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/backorders [post]
func (h *OrderHandler) Backorder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.BackorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RequestBackorder(c.Context(), actorFrom(c), id, in.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Consumir repuesto
// @Description  Retira de bodega contra la línea del presupuesto aprobado.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.ConsumePartRequest  true  "part_id, quantity"
// @Success      200   {object}  dto.CostEstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/consume [post]
func (h *OrderHandler) Consume(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ConsumePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ConsumePart(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateNotes godoc
// @Summary      Actualizar notas
// @Description  Notas de diagnóstico (técnico) o del gerente.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Param        body  body  dto.UpdateNotesRequest  true  "diagnosis_notes, manager_notes"
// @Success      200   {object}  dto.RepairOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/notes [patch]
func (h *OrderHandler) UpdateNotes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateNotesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateNotes(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StartWork godoc
// @Summary      Iniciar registro de trabajo
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      201   {object}  dto.WorkLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/work/start [post]
func (h *OrderHandler) StartWork(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.StartWork(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StopWork godoc
// @Summary      Cerrar registro de trabajo
// @Description  Suma la duración al tiempo total de la orden.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {object}  dto.WorkLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/work/stop [post]
func (h *OrderHandler) StopWork(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.StopWork(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WorkLogs godoc
// @Summary      Listar registros de trabajo
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200   {array}   dto.WorkLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/work [get]
func (h *OrderHandler) WorkLogs(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListWorkLogs(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) simple(c *fiber.Ctx, fn func(ctx context.Context, a domain.Actor, id string) (*dto.RepairOrderResponse, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := fn(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
