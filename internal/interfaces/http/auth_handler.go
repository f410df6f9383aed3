package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
)

type AuthHandler struct {
	uc *auth.AuthUseCase
}

func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login del personal
// @Description  Email y contraseña; devuelve un JWT con el rol del empleado.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeLoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.EmployeeLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LoginEmployee(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClientLogin godoc
// @Summary      Login del cliente
// @Description  Teléfono y PIN; devuelve un JWT con rol CLIENT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientLoginRequest  true  "phone, pin"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/client-login [post]
func (h *AuthHandler) ClientLogin(c *fiber.Ctx) error {
	var in dto.ClientLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LoginClient(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
