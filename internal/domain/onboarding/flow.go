// Package onboarding modela el paso obligatorio de clasificación del negocio que
// todo usuario autenticado completa una sola vez antes de entrar al dashboard.
package onboarding

import (
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// State estado del onboarding de un usuario.
type State int

const (
	// Unclassified el usuario aún no eligió tipo de negocio.
	Unclassified State = iota
	// Classified terminal: el flujo nunca vuelve a Unclassified.
	Classified
)

func (s State) String() string {
	if s == Classified {
		return "CLASSIFIED"
	}
	return "UNCLASSIFIED"
}

// StateOf deriva el estado a partir del tipo de negocio persistido.
func StateOf(bt *entity.BusinessType) State {
	if bt == nil {
		return Unclassified
	}
	return Classified
}

// DecideRedirect devuelve la ruta a la que se debe redirigir, o false si no hay redirección.
//   - Unclassified fuera de la selección → selección.
//   - Classified en la selección → dashboard.
//
// Ninguna otra combinación redirige, así que aplicarla sobre su propio resultado no produce más redirecciones.
func DecideRedirect(state State, current access.Route) (access.Route, bool) {
	onSelection := access.Normalize(string(current)) == access.RouteBusinessType
	switch {
	case state == Unclassified && !onSelection:
		return access.RouteBusinessType, true
	case state == Classified && onSelection:
		return access.RouteDashboard, true
	default:
		return "", false
	}
}
