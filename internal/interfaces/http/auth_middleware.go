package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/jwt"
)

// Locals keys para los claims del JWT en Fiber.
const (
	LocalUserID         = "user_id"
	LocalOrganizationID = "organization_id"
	LocalRole           = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae los claims a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, organizationID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalOrganizationID, organizationID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole autoriza el acceso solo a los roles indicados. Debe ir después
// de AuthMiddleware. Un token sin claim de rol responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetOrganizationID devuelve el OrganizationID del contexto.
func GetOrganizationID(c *fiber.Ctx) string {
	v := c.Locals(LocalOrganizationID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// actor construye el Actor del pipeline con los claims del request.
func actor(c *fiber.Ctx) pipeline.Actor {
	return pipeline.Actor{
		UserID:         GetUserID(c),
		OrganizationID: GetOrganizationID(c),
		Role:           GetRole(c),
	}
}

// isAdmin indica si el request lo hace un administrador.
func isAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == "admin"
}
