package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// RequireRoute aplica la allow-list de la ruta de vista que respalda al endpoint.
// Debe usarse DESPUÉS de AuthMiddleware. Un BANNED recibe redirect_to /banned.
func RequireRoute(route access.Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:       "UNAUTHORIZED",
				Message:    "sesión requerida",
				RedirectTo: string(access.RouteSignIn),
			})
		}
		if !access.CanAccessRoute(sess.Role, string(route)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:       "FORBIDDEN",
				Message:    "el rol " + string(sess.Role) + " no tiene acceso a este recurso",
				RedirectTo: string(access.DeniedRedirect(sess.Role)),
			})
		}
		return c.Next()
	}
}

// onboardingChecker es el contrato mínimo que necesita el middleware para verificar el onboarding.
// Lo implementa *onboarding.OnboardingUseCase; el uso de interfaz evita el import circular.
type onboardingChecker interface {
	IsClassified(ctx context.Context, sess *entity.Session) (bool, error)
}

// RequireOnboarded bloquea los recursos del negocio hasta que el usuario elija su tipo de negocio.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 ONBOARDING_REQUIRED con redirect_to /business-type-selection.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB (falla cerrado).
//   - Sin sesión en el contexto responde 401.
func RequireOnboarded(checker onboardingChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión requerida",
			})
		}

		ok, err := checker.IsClassified(c.UserContext(), sess)
		if err != nil {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ONBOARDING_CHECK_FAILED",
				Message: "no se pudo verificar el onboarding, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:       "ONBOARDING_REQUIRED",
				Message:    "seleccione el tipo de negocio para continuar",
				RedirectTo: string(access.RouteBusinessType),
			})
		}
		return c.Next()
	}
}
