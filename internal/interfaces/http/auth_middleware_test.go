package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/application/onboarding"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	apphttp "github.com/jhoicas/donepaid-api/internal/interfaces/http"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

// fakeParser resuelve tokens fijos a sesiones.
type fakeParser map[string]*entity.Session

func (p fakeParser) ParseSession(_ context.Context, token string) (*entity.Session, error) {
	if s, ok := p[token]; ok {
		return s, nil
	}
	return nil, errors.New("token inválido")
}

type fakeChecker struct {
	classified bool
	err        error
}

func (f fakeChecker) IsClassified(context.Context, *entity.Session) (bool, error) {
	return f.classified, f.err
}

func sessionFor(role entity.Role) *entity.Session {
	return &entity.Session{ID: "jti-" + string(role), UserID: testUserID, Role: role}
}

func parserForAllRoles() fakeParser {
	p := fakeParser{}
	for _, r := range entity.Roles() {
		p[string(r)] = sessionFor(r)
	}
	return p
}

// buildGuardedApp reproduce el encadenado de un recurso del dashboard.
func buildGuardedApp(route access.Route, checker fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(parserForAllRoles()),
		apphttp.RequireRoute(route),
		apphttp.RequireOnboarded(checker),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func doGet(t *testing.T, app *fiber.App, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildGuardedApp(access.RouteDashboard, fakeChecker{classified: true})
	resp := doGet(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp).Code)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildGuardedApp(access.RouteDashboard, fakeChecker{classified: true})
	for _, h := range []string{"Basic USER", "Bearer", "Bearer   "} {
		resp := doGet(t, app, "/protected", h)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code, h)
	}
}

func TestAuthMiddleware_TokenRechazado(t *testing.T) {
	app := buildGuardedApp(access.RouteDashboard, fakeChecker{classified: true})
	resp := doGet(t, app, "/protected", "Bearer desconocido")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

func TestAuthMiddleware_SesionValidaLlegaAlHandler(t *testing.T) {
	app := buildGuardedApp(access.RouteDashboard, fakeChecker{classified: true})
	resp := doGet(t, app, "/protected", "bearer USER")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRoute
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRoute_AllowList(t *testing.T) {
	cases := []struct {
		route    access.Route
		role     entity.Role
		status   int
		redirect string
	}{
		{access.RouteUsers, entity.RoleAdmin, http.StatusOK, ""},
		{access.RouteUsers, entity.RoleSuperAdmin, http.StatusOK, ""},
		{access.RouteUsers, entity.RoleManager, http.StatusForbidden, "/not-found"},
		{access.RouteInvoices, entity.RolePatient, http.StatusForbidden, "/not-found"},
		{access.RouteProjects, entity.RolePatient, http.StatusOK, ""},
		{access.RouteDashboard, entity.RoleBanned, http.StatusForbidden, "/banned"},
		{access.RouteSettings, entity.RoleBanned, http.StatusForbidden, "/banned"},
	}
	for _, tc := range cases {
		app := buildGuardedApp(tc.route, fakeChecker{classified: true})
		resp := doGet(t, app, "/protected", "Bearer "+string(tc.role))
		assert.Equal(t, tc.status, resp.StatusCode, "%s en %s", tc.role, tc.route)
		if tc.redirect != "" {
			e := decodeError(t, resp)
			assert.Equal(t, "FORBIDDEN", e.Code)
			assert.Equal(t, tc.redirect, e.RedirectTo)
		}
	}
}

func TestRequireRoute_SinSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRoute(access.RouteDashboard), func(c *fiber.Ctx) error { return c.SendStatus(200) })
	resp := doGet(t, app, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/sign-in", decodeError(t, resp).RedirectTo)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireOnboarded
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireOnboarded_SinClasificar(t *testing.T) {
	app := buildGuardedApp(access.RouteProducts, fakeChecker{classified: false})
	resp := doGet(t, app, "/protected", "Bearer USER")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "ONBOARDING_REQUIRED", e.Code)
	assert.Equal(t, "/business-type-selection", e.RedirectTo)
}

func TestRequireOnboarded_FallaDeInfraestructuraCierra(t *testing.T) {
	app := buildGuardedApp(access.RouteProducts, fakeChecker{err: errors.New("db caída")})
	resp := doGet(t, app, "/protected", "Bearer USER")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "ONBOARDING_CHECK_FAILED", decodeError(t, resp).Code)
}

func TestRequireOnboarded_RolSinAccesoNoConsultaOnboarding(t *testing.T) {
	// la allow-list se evalúa antes; un checker roto no cambia la denegación
	app := buildGuardedApp(access.RouteUsers, fakeChecker{err: errors.New("no debería llamarse")})
	resp := doGet(t, app, "/protected", "Bearer ACCOUNTANT")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación (OptionalAuthMiddleware + OnboardingHandler)
// ──────────────────────────────────────────────────────────────────────────────

// stubUsers repositorio de usuarios en memoria, solo lectura por id.
type stubUsers map[string]*entity.User

func (s stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s[id], nil
}
func (s stubUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s stubUsers) UpdateFields(context.Context, string, entity.UserPatch) (*entity.User, error) {
	return nil, errors.New("no soportado")
}
func (s stubUsers) List(context.Context, int, int) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func buildNavigationApp(users stubUsers) *fiber.App {
	uc := onboarding.NewOnboardingUseCase(users, logger.Nop())
	h := apphttp.NewOnboardingHandler(uc)
	app := fiber.New()
	app.Get("/api/navigation", apphttp.OptionalAuthMiddleware(parserForAllRoles()), h.Navigate)
	return app
}

func navigate(t *testing.T, app *fiber.App, path, auth string) dto.NavigationResponse {
	t.Helper()
	resp := doGet(t, app, "/api/navigation?path="+path, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.NavigationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestNavigation_SinSesionVaASignIn(t *testing.T) {
	app := buildNavigationApp(stubUsers{})
	out := navigate(t, app, "/dashboard/products", "")
	assert.False(t, out.Allowed)
	assert.Equal(t, "/sign-in", out.RedirectTo)

	out = navigate(t, app, "/dashboard", "Bearer token-basura")
	assert.Equal(t, "/sign-in", out.RedirectTo)
}

func TestNavigation_SinClasificarVaALaSeleccion(t *testing.T) {
	app := buildNavigationApp(stubUsers{testUserID: {ID: testUserID, Role: entity.RoleUser}})
	out := navigate(t, app, "/dashboard/invoices", "Bearer USER")
	assert.Equal(t, "/business-type-selection", out.RedirectTo)

	out = navigate(t, app, "/business-type-selection", "Bearer USER")
	assert.True(t, out.Allowed)
	assert.Empty(t, out.RedirectTo)
}

func TestNavigation_ClasificadoSinPermisoVaANotFound(t *testing.T) {
	retail := entity.BusinessRetail
	app := buildNavigationApp(stubUsers{testUserID: {ID: testUserID, Role: entity.RolePatient, BusinessType: &retail}})
	out := navigate(t, app, "/dashboard/invoices", "Bearer PATIENT")
	assert.False(t, out.Allowed)
	assert.Equal(t, "/not-found", out.RedirectTo)

	out = navigate(t, app, "/business-type-selection", "Bearer PATIENT")
	assert.Equal(t, "/dashboard", out.RedirectTo)
}

func TestNavigation_BannedSoloVeElAviso(t *testing.T) {
	app := buildNavigationApp(stubUsers{})
	out := navigate(t, app, "/dashboard", "Bearer BANNED")
	assert.Equal(t, "/banned", out.RedirectTo)

	out = navigate(t, app, "/banned", "Bearer BANNED")
	assert.True(t, out.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección del tipo de negocio (POST /api/onboarding/business-type)
// ──────────────────────────────────────────────────────────────────────────────

// writableUsers como stubUsers pero guarda el tipo de negocio.
type writableUsers struct{ stubUsers }

func (w writableUsers) UpdateFields(_ context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	u, ok := w.stubUsers[id]
	if !ok {
		return nil, nil
	}
	if p.BusinessType != nil {
		u.BusinessType = p.BusinessType
	}
	return u, nil
}

// buildOnboardingApp reproduce el grupo /api/onboarding del router.
func buildOnboardingApp(users writableUsers) *fiber.App {
	h := apphttp.NewOnboardingHandler(onboarding.NewOnboardingUseCase(users, logger.Nop()))
	app := fiber.New()
	ob := app.Group("/api/onboarding",
		apphttp.AuthMiddleware(parserForAllRoles()),
		apphttp.RequireRoute(access.RouteBusinessType),
	)
	ob.Post("/business-type", h.SelectBusinessType)
	return app
}

func postBusinessType(t *testing.T, app *fiber.App, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/business-type",
		strings.NewReader(`{"business_type":"RETAIL"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSelectBusinessType_BannedNoPuedeClasificar(t *testing.T) {
	users := writableUsers{stubUsers{testUserID: {ID: testUserID, Role: entity.RoleBanned}}}
	app := buildOnboardingApp(users)

	resp := postBusinessType(t, app, "Bearer BANNED")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "FORBIDDEN", e.Code)
	assert.Equal(t, "/banned", e.RedirectTo)
	assert.Nil(t, users.stubUsers[testUserID].BusinessType, "no se guarda nada")
}

func TestSelectBusinessType_UsuarioSinClasificarGuarda(t *testing.T) {
	users := writableUsers{stubUsers{testUserID: {ID: testUserID, Role: entity.RoleUser}}}
	app := buildOnboardingApp(users)

	resp := postBusinessType(t, app, "Bearer USER")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, users.stubUsers[testUserID].BusinessType)
	assert.Equal(t, entity.BusinessRetail, *users.stubUsers[testUserID].BusinessType)
}
