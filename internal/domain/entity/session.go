package entity

import "time"

// Session subconjunto de User emitido al iniciar sesión, con vida útil limitada.
// Se construye una sola vez en el borde de autenticación ya validado (Role y BusinessType tipados).
type Session struct {
	ID           string // jti del token, usado para revocación
	UserID       string
	Email        string
	Role         Role
	BusinessType *BusinessType
	ExpiresAt    time.Time
}

// Classified indica si la sesión ya trae el tipo de negocio.
func (s Session) Classified() bool { return s.BusinessType != nil }
