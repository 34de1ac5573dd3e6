package access

import (
	"path"
	"strings"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// Route ruta de navegación del dashboard.
type Route string

// Rutas conocidas por la política.
const (
	RouteSignIn       Route = "/sign-in"
	RouteNotFound     Route = "/not-found"
	RouteBanned       Route = "/banned"
	RouteBusinessType Route = "/business-type-selection"
	RouteDashboard    Route = "/dashboard"
	RouteUsers        Route = "/dashboard/users"
	RouteCategories   Route = "/dashboard/categories"
	RouteProducts     Route = "/dashboard/products"
	RouteSuppliers    Route = "/dashboard/suppliers"
	RouteCustomers    Route = "/dashboard/customers"
	RouteInvoices     Route = "/dashboard/invoices"
	RouteQuotes       Route = "/dashboard/quotes"
	RouteProjects     Route = "/dashboard/projects"
	RouteSettings     Route = "/dashboard/settings"
)

var (
	staff = roleSet(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleAccountant,
		entity.RoleSalesperson, entity.RoleUser)
	everyoneButBanned = roleSet(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleAccountant,
		entity.RoleSalesperson, entity.RoleUser, entity.RolePatient)
	catalog = roleSet(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleSalesperson,
		entity.RoleUser)
)

// routeTable allow-list de roles por ruta.
var routeTable = map[Route]map[entity.Role]struct{}{
	RouteBanned:       roleSet(entity.RoleBanned),
	RouteBusinessType: everyoneButBanned,
	RouteDashboard:    everyoneButBanned,
	RouteUsers:        roleSet(entity.RoleSuperAdmin, entity.RoleAdmin),
	RouteCategories:   catalog,
	RouteProducts:     catalog,
	RouteSuppliers:    catalog,
	RouteCustomers:    staff,
	RouteInvoices:     staff,
	RouteQuotes:       staff,
	RouteProjects: roleSet(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleUser,
		entity.RolePatient),
	RouteSettings: everyoneButBanned,
}

func roleSet(roles ...entity.Role) map[entity.Role]struct{} {
	m := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		m[r] = struct{}{}
	}
	return m
}

// Resolve devuelve la ruta registrada más específica que contiene path
// (coincidencia por segmentos: /dashboard/products/42 → /dashboard/products).
func Resolve(path string) (Route, bool) {
	p := normalize(path)
	for {
		if _, ok := routeTable[Route(p)]; ok {
			return Route(p), true
		}
		i := strings.LastIndex(p, "/")
		if i <= 0 {
			return "", false
		}
		p = p[:i]
	}
}

// Normalize limpia una ruta de navegación: sin query, sin barra final, sin "..", siempre con barra inicial.
func Normalize(path string) Route { return Route(normalize(path)) }

// Los segmentos "." y ".." se resuelven antes de buscar el prefijo; la ruta evaluada
// es la que el navegador termina visitando.
func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

// CanAccessRoute informa si un usuario con role puede visitar path.
// Falla cerrado: rutas no registradas y roles desconocidos se deniegan.
// BANNED se deniega en todas las rutas excepto el aviso de bloqueo.
func CanAccessRoute(role entity.Role, path string) bool {
	if !role.Valid() {
		return false
	}
	route, ok := Resolve(path)
	if !ok {
		return false
	}
	if role == entity.RoleBanned {
		return route == RouteBanned
	}
	_, allowed := routeTable[route][role]
	return allowed
}

// IsPublic rutas visibles para cualquier sesión no bloqueada (no tienen allow-list).
func IsPublic(path string) bool {
	r := Normalize(path)
	return r == RouteSignIn || r == RouteNotFound
}

// AllowedRoles devuelve el allow-list declarado para la ruta (copia).
func AllowedRoles(route Route) []entity.Role {
	set := routeTable[route]
	out := make([]entity.Role, 0, len(set))
	for _, r := range entity.Roles() {
		if _, ok := set[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// DeniedRedirect destino de una denegación silenciosa en navegación.
func DeniedRedirect(role entity.Role) Route {
	if role == entity.RoleBanned {
		return RouteBanned
	}
	return RouteNotFound
}
