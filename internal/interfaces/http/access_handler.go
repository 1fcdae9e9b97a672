package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
)

// AccessHandler expone el estado de acceso de la sesión.
type AccessHandler struct {
	checker accessChecker
}

// NewAccessHandler construye el handler.
func NewAccessHandler(checker accessChecker) *AccessHandler {
	return &AccessHandler{checker: checker}
}

// Status godoc
// @Summary      Estado de licencia de la cuenta
// @Description  Siempre 200: el cliente decide qué pantalla mostrar según status.
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccessStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/access/status [get]
func (h *AccessHandler) Status(c *fiber.Ctx) error {
	d := h.checker.Evaluate(c.UserContext(), GetUserID(c))
	return c.JSON(dto.AccessStatusResponse{
		Status:        string(d.Status),
		Role:          d.Role,
		DaysRemaining: d.DaysRemaining,
	})
}
