package onboarding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/onboarding"
)

func TestStateOf(t *testing.T) {
	retail := entity.BusinessRetail
	assert.Equal(t, onboarding.Unclassified, onboarding.StateOf(nil))
	assert.Equal(t, onboarding.Classified, onboarding.StateOf(&retail))
}

func TestDecideRedirect_SinClasificarVaALaSeleccion(t *testing.T) {
	to, ok := onboarding.DecideRedirect(onboarding.Unclassified, "/dashboard")
	assert.True(t, ok)
	assert.Equal(t, access.RouteBusinessType, to)
}

func TestDecideRedirect_ClasificadoSaleDeLaSeleccion(t *testing.T) {
	to, ok := onboarding.DecideRedirect(onboarding.Classified, "/business-type-selection")
	assert.True(t, ok)
	assert.Equal(t, access.RouteDashboard, to)
}

func TestDecideRedirect_SinOtrasRedirecciones(t *testing.T) {
	for _, r := range []access.Route{"/dashboard", "/dashboard/products", "/dashboard/settings", "/banned"} {
		_, ok := onboarding.DecideRedirect(onboarding.Classified, r)
		assert.False(t, ok, "ruta %s", r)
	}
	_, ok := onboarding.DecideRedirect(onboarding.Unclassified, "/business-type-selection/")
	assert.False(t, ok, "barra final no cambia la ruta")
}

// Aplicar la decisión y volver a evaluar no genera nuevas redirecciones (sin bucles).
func TestDecideRedirect_Idempotente(t *testing.T) {
	for _, state := range []onboarding.State{onboarding.Unclassified, onboarding.Classified} {
		for _, start := range []access.Route{"/dashboard", "/business-type-selection", "/dashboard/invoices"} {
			current := start
			redirects := 0
			for i := 0; i < 5; i++ {
				to, ok := onboarding.DecideRedirect(state, current)
				if !ok {
					break
				}
				redirects++
				current = to
			}
			assert.LessOrEqual(t, redirects, 1, "estado %s desde %s", state, start)
		}
	}
}
