package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// LocalSession clave de c.Locals con la *entity.Session validada. Solo AuthMiddleware la escribe.
const LocalSession = "session"

// sessionParser lo implementa *auth.AuthUseCase.
type sessionParser interface {
	ParseSession(ctx context.Context, token string) (*entity.Session, error)
}

// AuthMiddleware valida el Bearer Token y deja la sesión tipada en c.Locals.
func AuthMiddleware(parser sessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		token, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		sess, err := parser.ParseSession(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// OptionalAuthMiddleware igual que AuthMiddleware pero sin rechazar: un token ausente o inválido
// deja la petición sin sesión (la navegación lo traduce a /sign-in).
func OptionalAuthMiddleware(parser sessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c.Get("Authorization")); ok {
			if sess, err := parser.ParseSession(c.UserContext(), token); err == nil {
				c.Locals(LocalSession, sess)
			}
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetSession devuelve la sesión validada o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetUserID devuelve el UserID de la sesión (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return ""
}
