package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/access"
)

// LocalDaysRemaining días de licencia restantes (*int) tras RequireActiveAccess.
const LocalDaysRemaining = "days_remaining"

// accessChecker es el contrato mínimo que necesita el middleware para evaluar el acceso.
// Lo implementa *usecase.AccessUseCase.
type accessChecker interface {
	Evaluate(ctx context.Context, userID string) access.Decision
}

// RequireActiveAccess bloquea la petición si la cuenta no está activa. Debe usarse DESPUÉS
// de AuthMiddleware. Con acceso activo, el rol del perfil pasa a ser el rol de la sesión.
//
// Comportamiento:
//   - 403 LICENSE_EXPIRED     → licencia vencida.
//   - 403 ACCOUNT_SUSPENDED   → cuenta inactiva, suspensa o cancelada.
//   - 409 PROFILE_LOADING     → el perfil todavía no fue provisionado.
//   - 503 ACCESS_CHECK_FAILED → no se pudo consultar perfil o cuenta.
func RequireActiveAccess(checker accessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "sesión requerida", Redirect: access.RouteLogin,
			})
		}

		d := checker.Evaluate(c.UserContext(), userID)
		switch d.Status {
		case access.StatusActive:
			c.Locals(LocalRole, d.Role)
			c.Locals(LocalDaysRemaining, d.DaysRemaining)
			return c.Next()
		case access.StatusExpired:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "LICENSE_EXPIRED", Message: "la licencia de la cuenta está vencida",
			})
		case access.StatusSuspended:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "ACCOUNT_SUSPENDED", Message: "la cuenta está suspendida o cancelada",
			})
		case access.StatusLoading:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "PROFILE_LOADING", Message: "el perfil del usuario aún no está disponible",
			})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "ACCESS_CHECK_FAILED", Message: "no se pudo verificar el acceso, intente más tarde",
			})
		}
	}
}
