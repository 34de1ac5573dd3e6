package dto

import "github.com/jhoicas/donepaid-api/internal/domain/entity"

// NewUserResponse mapea la entidad a su representación pública (sin password).
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		ImageURL:         u.ImageURL,
		Role:             string(u.Role),
		BusinessType:     businessTypePtr(u.BusinessType),
		TwoFactorEnabled: u.TwoFactorEnabled,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// NewSessionResponse mapea la sesión validada.
func NewSessionResponse(s *entity.Session) *SessionResponse {
	return &SessionResponse{
		UserID:       s.UserID,
		Email:        s.Email,
		Role:         string(s.Role),
		BusinessType: businessTypePtr(s.BusinessType),
		ExpiresAt:    s.ExpiresAt,
	}
}

func businessTypePtr(bt *entity.BusinessType) *string {
	if bt == nil {
		return nil
	}
	s := string(*bt)
	return &s
}
