// Package access concentra la política de autorización por rol: qué rutas puede
// visitar cada rol y qué roles puede reasignar cada actor.
//
// Todas las tablas son de solo lectura después de la inicialización del paquete,
// por lo que las consultas concurrentes no necesitan sincronización.
package access

import "github.com/jhoicas/donepaid-api/internal/domain/entity"

// assignableRoles roles que cada actor puede asignar a otros usuarios.
// Son listas explícitas, no se derivan de la jerarquía.
var assignableRoles = map[entity.Role][]entity.Role{
	entity.RoleSuperAdmin: {
		entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleAccountant,
		entity.RoleSalesperson, entity.RoleUser, entity.RolePatient, entity.RoleBanned,
	},
	entity.RoleAdmin: {
		entity.RoleManager, entity.RoleAccountant, entity.RoleSalesperson, entity.RoleUser,
	},
}

// CanChangeRole informa si actor puede modificar el rol de un usuario que hoy tiene target.
// SUPERADMIN puede cambiar cualquier rol; ADMIN cualquiera excepto SUPERADMIN; el resto ninguno.
func CanChangeRole(actor, target entity.Role) bool {
	switch actor {
	case entity.RoleSuperAdmin:
		return target.Valid()
	case entity.RoleAdmin:
		return target.Valid() && target != entity.RoleSuperAdmin
	default:
		return false
	}
}

// AvailableRolesFor devuelve los roles que actor puede asignar. La slice es una copia.
func AvailableRolesFor(actor entity.Role) []entity.Role {
	roles := assignableRoles[actor]
	out := make([]entity.Role, len(roles))
	copy(out, roles)
	return out
}

// CanAssign informa si actor puede llevar a un usuario con rol current al rol next.
func CanAssign(actor, current, next entity.Role) bool {
	if !CanChangeRole(actor, current) {
		return false
	}
	for _, r := range assignableRoles[actor] {
		if r == next {
			return true
		}
	}
	return false
}
