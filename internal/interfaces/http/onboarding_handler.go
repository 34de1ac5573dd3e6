package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/application/onboarding"
)

// OnboardingHandler selección del tipo de negocio y decisión de navegación.
type OnboardingHandler struct {
	uc *onboarding.OnboardingUseCase
}

// NewOnboardingHandler construye el handler.
func NewOnboardingHandler(uc *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// Status godoc
// @Summary      Estado del onboarding
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OnboardingStatusResponse
// @Router       /api/onboarding/business-type [get]
func (h *OnboardingHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectBusinessType godoc
// @Summary      Seleccionar tipo de negocio (una sola vez)
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BusinessTypeRequest  true  "RETAIL, WHOLESALE, MANUFACTURING o SERVICE"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/business-type [post]
func (h *OnboardingHandler) SelectBusinessType(c *fiber.Ctx) error {
	var in dto.BusinessTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SelectBusinessType(c.UserContext(), GetUserID(c), in.BusinessType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Navigate godoc
// @Summary      Decisión de navegación para una ruta de la vista
// @Description  Sin sesión válida redirige a /sign-in. Nunca redirige a la ruta actual.
// @Tags         navigation
// @Produce      json
// @Param        path  query  string  true  "Ruta de la vista, ej. /dashboard/invoices"
// @Success      200   {object}  dto.NavigationResponse
// @Router       /api/navigation [get]
func (h *OnboardingHandler) Navigate(c *fiber.Ctx) error {
	out, err := h.uc.Navigate(c.UserContext(), GetSession(c), c.Query("path", "/dashboard"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
