package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/donepaid-api/internal/application/analytics"
	"github.com/jhoicas/donepaid-api/internal/application/auth"
	"github.com/jhoicas/donepaid-api/internal/application/billing"
	"github.com/jhoicas/donepaid-api/internal/application/onboarding"
	"github.com/jhoicas/donepaid-api/internal/application/usecase"
	"github.com/jhoicas/donepaid-api/internal/domain/access"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OnboardingUC *onboarding.OnboardingUseCase
	UserUC       *usecase.UserUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	ProjectUC    *usecase.ProjectUseCase
	CustomerUC   *billing.CustomerUseCase
	DocumentUC   *billing.DocumentUseCase
	DashboardUC  *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireSession := AuthMiddleware(deps.AuthUC)

	// guarded agrupa un recurso del dashboard: sesión + allow-list de la vista + onboarding completo.
	guarded := func(prefix string, route access.Route) fiber.Router {
		return api.Group(prefix, requireSession, RequireRoute(route), RequireOnboarded(deps.OnboardingUC))
	}

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", requireSession, authHandler.Refresh)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	// Onboarding y navegación
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	// La selección tiene su propia allow-list (todos menos BANNED); sin RequireOnboarded.
	ob := api.Group("/onboarding", requireSession, RequireRoute(access.RouteBusinessType))
	ob.Get("/business-type", onboardingHandler.Status)
	ob.Post("/business-type", onboardingHandler.SelectBusinessType)
	// Sin sesión la decisión es /sign-in; no responde 401.
	api.Get("/navigation", OptionalAuthMiddleware(deps.AuthUC), onboardingHandler.Navigate)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	guarded("/dashboard", access.RouteDashboard).Get("/", dashboardHandler.GetSummary)

	// Usuarios (administración de roles)
	userHandler := NewUserHandler(deps.UserUC)
	users := guarded("/users", access.RouteUsers)
	users.Get("/", userHandler.List)
	users.Get("/roles", userHandler.AvailableRoles)
	users.Patch("/:id/role", userHandler.ChangeRole)

	settings := guarded("/settings", access.RouteSettings)
	settings.Get("/profile", userHandler.GetProfile)
	settings.Put("/profile", userHandler.UpdateProfile)

	// Catálogo
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := guarded("/categories", access.RouteCategories)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := guarded("/suppliers", access.RouteSuppliers)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := guarded("/products", access.RouteProducts)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Facturación
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := guarded("/customers", access.RouteCustomers)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	invoiceHandler := NewDocumentHandler(deps.DocumentUC, entity.KindInvoice)
	invoices := guarded("/invoices", access.RouteInvoices)
	registerDocumentRoutes(invoices, invoiceHandler)

	quoteHandler := NewDocumentHandler(deps.DocumentUC, entity.KindQuote)
	quotes := guarded("/quotes", access.RouteQuotes)
	registerDocumentRoutes(quotes, quoteHandler)
	quotes.Post("/:id/convert", quoteHandler.Convert)

	// Proyectos
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := guarded("/projects", access.RouteProjects)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Patch("/:id/tasks/:taskId", projectHandler.UpdateTaskStatus)
}

func registerDocumentRoutes(r fiber.Router, h *DocumentHandler) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Patch("/:id/status", h.UpdateStatus)
	r.Delete("/:id", h.Delete)
}
