package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/directory"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
)

// DirectoryHandler personal, clientes y catálogo de acciones.
type DirectoryHandler struct {
	employees *directory.EmployeeUseCase
	clients   *directory.ClientUseCase
	actions   *directory.ServiceActionUseCase
}

func NewDirectoryHandler(e *directory.EmployeeUseCase, cl *directory.ClientUseCase, a *directory.ServiceActionUseCase) *DirectoryHandler {
	return &DirectoryHandler{employees: e, clients: cl, actions: a}
}

// CreateEmployee godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "first_name, last_name, email, password, role, skill_level"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *DirectoryHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEmployee godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "first_name, last_name, role, skill_level, password"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [patch]
func (h *DirectoryHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetEmployee godoc
// @Summary      Obtener empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del empleado"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *DirectoryHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.employees.Get(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  false  "rol"
// @Success      200   {array}   dto.EmployeeResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/employees [get]
func (h *DirectoryHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.employees.List(c.Context(), actorFrom(c), c.Query("role"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateClient godoc
// @Summary      Registrar cliente
// @Description  Envía el PIN de acceso al teléfono del cliente.
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "first_name, last_name, phone, email"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.clients.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients godoc
// @Summary      Buscar clientes
// @Description  Con phone devuelve a lo sumo un cliente.
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "nombre o teléfono"
// @Param        phone  query  string  false  "teléfono exacto"
// @Success      200   {array}   dto.ClientResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	if phone := c.Query("phone"); phone != "" {
		out, err := h.clients.GetByPhone(c.Context(), actorFrom(c), phone)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON([]dto.ClientResponse{*out})
	}
	out, err := h.clients.List(c.Context(), actorFrom(c), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetClient godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del cliente"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.clients.Get(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetPIN godoc
// @Summary      Reenviar PIN
// @Description  Genera un PIN nuevo y lo envía al teléfono del cliente.
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del cliente"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/pin [post]
func (h *DirectoryHandler) ResetPIN(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.clients.ResetPIN(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateAction godoc
// @Summary      Crear acción de servicio
// @Tags         service-actions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceActionRequest  true  "name, price"
// @Success      201   {object}  dto.ServiceActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-actions [post]
func (h *DirectoryHandler) CreateAction(c *fiber.Ctx) error {
	var in dto.ServiceActionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.actions.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAction godoc
// @Summary      Actualizar acción de servicio
// @Description  No cambia los presupuestos ya emitidos.
// @Tags         service-actions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "UUID de la acción"
// @Param        body  body  dto.ServiceActionRequest  true  "name, price"
// @Success      200   {object}  dto.ServiceActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-actions/{id} [put]
func (h *DirectoryHandler) UpdateAction(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ServiceActionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.actions.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListActions godoc
// @Summary      Listar acciones de servicio
// @Tags         service-actions
// @Security     Bearer
// @Produce      json
// @Success      200   {array}   dto.ServiceActionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/service-actions [get]
func (h *DirectoryHandler) ListActions(c *fiber.Ctx) error {
	out, err := h.actions.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
