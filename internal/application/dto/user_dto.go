package dto

import "time"

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	Role             string    `json:"role"`
	BusinessType     *string   `json:"business_type"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserListResponse página de usuarios para el panel de administración.
type UserListResponse struct {
	Items []*UserResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse vista de la sesión actual (GET /api/auth/me).
type SessionResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	BusinessType *string   `json:"business_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ChangeRoleRequest body para PATCH /api/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// AvailableRolesResponse roles que el actor puede asignar.
type AvailableRolesResponse struct {
	Roles []string `json:"roles"`
}

// UpdateProfileRequest body para PUT /api/settings/profile. Campos nil no se modifican.
type UpdateProfileRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	ImageURL         *string `json:"image_url"`
	TwoFactorEnabled *bool   `json:"two_factor_enabled"`
}
