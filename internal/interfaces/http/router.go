package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-dashboard-api/internal/application/analytics"
	appauth "github.com/jhoicas/crm-dashboard-api/internal/application/auth"
	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC   *usecase.CustomerUseCase
	PreferenceUC *usecase.PreferenceUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuthUC       *appauth.AuthUseCase
	Metrics      *metrics.Metrics
	JWTSecret    string
	AppName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Customers (protegido; mutaciones solo para admin)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Metrics)

	// Las rutas fijas van antes de "/:id" para que Fiber no las capture
	// como parámetro.
	customers.Get("/selection", customerHandler.GetSelection)
	customers.Put("/selection", customerHandler.PutSelection)
	customers.Post("/selection/all", customerHandler.SelectAll)
	customers.Delete("/selection", customerHandler.ClearSelection)
	customers.Get("/export", customerHandler.Export)
	customers.Post("/import", admin, customerHandler.Import)
	customers.Post("/bulk-delete", admin, customerHandler.BulkDelete)

	customers.Get("/", customerHandler.List)
	customers.Post("/", admin, customerHandler.Create)
	customers.Put("/:id", admin, customerHandler.Update)
	customers.Delete("/:id", admin, customerHandler.Delete)

	// Dashboard (protegido, solo lectura)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.AppName)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/tags", dashboardHandler.GetTags)
	dashboard.Get("/activity", dashboardHandler.GetActivity)
	dashboard.Get("/report.pdf", dashboardHandler.GetReportPDF)

	// Preferences (protegido)
	prefs := protected.Group("/preferences")
	preferenceHandler := NewPreferenceHandler(deps.PreferenceUC)
	prefs.Get("/theme", preferenceHandler.GetTheme)
	prefs.Put("/theme", preferenceHandler.PutTheme)
	prefs.Post("/widgets/reorder", preferenceHandler.Reorder)
	prefs.Post("/widgets/:id/size", preferenceHandler.ToggleSize)
	prefs.Get("/", preferenceHandler.Get)
	prefs.Put("/", preferenceHandler.Update)
}
