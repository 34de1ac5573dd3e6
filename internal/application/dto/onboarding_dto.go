package dto

// BusinessTypeRequest body para POST /api/onboarding/business-type.
type BusinessTypeRequest struct {
	BusinessType string `json:"business_type"`
}

// OnboardingStatusResponse estado del onboarding leído del registro persistido.
type OnboardingStatusResponse struct {
	State        string   `json:"state"`
	BusinessType *string  `json:"business_type"`
	Options      []string `json:"options"`
}

// NavigationResponse decisión de navegación para la capa de vista.
// Allowed=false implica RedirectTo no vacío.
type NavigationResponse struct {
	Path       string `json:"path"`
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}
