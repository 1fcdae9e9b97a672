package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/access"
	"github.com/jhoicas/gestao-fabrica-api/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT del proveedor de auth y carga la sesión en c.Locals.
// issuer vacío no valida el claim iss. El rol del token es opcional; RequireActiveAccess
// lo reemplaza por el rol del perfil.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido", Redirect: access.RouteLogin})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>", Redirect: access.RouteLogin})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío", Redirect: access.RouteLogin})
		}
		session, err := jwt.ParseWithIssuer(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado", Redirect: access.RouteLogin})
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalEmail, session.Email)
		c.Locals(LocalRole, session.Role)
		return c.Next()
	}
}

// RequireRole autoriza la ruta solo para los roles indicados. Debe usarse DESPUÉS de
// AuthMiddleware (y de RequireActiveAccess cuando el rol sale del perfil).
//
// Comportamiento:
//   - 401 UNAUTHORIZED → sin sesión; redirect a login.
//   - 401 MISSING_ROLE → sesión sin rol.
//   - 403 FORBIDDEN    → rol fuera de la lista; redirect según el rol.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authenticated := GetUserID(c) != ""
		role := GetRole(c)
		if authenticated && role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene rol asignado",
			})
		}
		allowed, redirect := access.RouteDecision(role, authenticated, roles)
		if allowed {
			return c.Next()
		}
		if !authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "sesión requerida", Redirect: redirect,
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:     "FORBIDDEN",
			Message:  "el rol '" + role + "' no puede acceder a este recurso",
			Redirect: redirect,
		})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail devuelve el email de la sesión.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetRole devuelve el rol vigente de la sesión.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
