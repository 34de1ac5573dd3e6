package entity

import "time"

// Role nivel de permisos asignado a un usuario.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin  Role = "SUPERADMIN"
	RoleAdmin       Role = "ADMIN"
	RoleManager     Role = "MANAGER"
	RoleAccountant  Role = "ACCOUNTANT"
	RoleSalesperson Role = "SALESPERSON"
	RoleUser        Role = "USER"
	RolePatient     Role = "PATIENT"
	RoleBanned      Role = "BANNED"
)

// Roles lista todos los roles en orden jerárquico (de mayor a menor privilegio).
func Roles() []Role {
	return []Role{
		RoleSuperAdmin, RoleAdmin, RoleManager, RoleAccountant,
		RoleSalesperson, RoleUser, RolePatient, RoleBanned,
	}
}

// ParseRole convierte un string en Role. ok=false si no es uno de los valores enumerados.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Valid informa si el rol pertenece al enumerado.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// BusinessType clasificación del negocio seleccionada una única vez durante el onboarding.
type BusinessType string

// Tipos de negocio válidos.
const (
	BusinessRetail        BusinessType = "RETAIL"
	BusinessWholesale     BusinessType = "WHOLESALE"
	BusinessManufacturing BusinessType = "MANUFACTURING"
	BusinessService       BusinessType = "SERVICE"
)

// BusinessTypes lista los tipos de negocio válidos.
func BusinessTypes() []BusinessType {
	return []BusinessType{BusinessRetail, BusinessWholesale, BusinessManufacturing, BusinessService}
}

// ParseBusinessType convierte un string en BusinessType.
func ParseBusinessType(s string) (BusinessType, bool) {
	for _, bt := range BusinessTypes() {
		if string(bt) == s {
			return bt, true
		}
	}
	return "", false
}

// User representa un usuario del sistema.
// BusinessType es nil hasta que el usuario completa el onboarding.
type User struct {
	ID               string
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Name             string
	Phone            string
	ImageURL         string
	Role             Role
	BusinessType     *BusinessType
	TwoFactorEnabled bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserPatch actualización parcial de un usuario; los campos nil no se modifican.
type UserPatch struct {
	Name             *string
	Phone            *string
	ImageURL         *string
	Role             *Role
	BusinessType     *BusinessType
	TwoFactorEnabled *bool
}

// IsEmpty informa si el patch no modifica ningún campo.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.ImageURL == nil &&
		p.Role == nil && p.BusinessType == nil && p.TwoFactorEnabled == nil
}
