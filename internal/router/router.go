package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"crmhub/internal/handler"
	"crmhub/internal/middleware"
	"crmhub/internal/model"
	"crmhub/internal/service"
)

// Handlers bundles everything Register wires into routes.
type Handlers struct {
	Pages        *handler.PagesHandler
	Auth         *handler.AuthHandler
	Customers    *handler.CustomerHandler
	Appointments *handler.AppointmentHandler
	Tasks        *handler.TaskHandler
	Users        *handler.UserHandler
	Audit        *handler.AuditHandler
	Settings     *handler.SettingsHandler

	Content      service.ContentService
	AuditService service.AuditService
}

// Register wires routes and middleware.
func Register(e *echo.Echo, sessionCfg middleware.SessionConfig, h Handlers) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Session(sessionCfg))
	e.Use(middleware.AuditLogger(h.AuditService))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Browser pages; the session middleware handles redirects around these.
	e.GET("/", h.Pages.Home)
	e.GET("/login", h.Pages.Login)
	e.GET("/register", h.Pages.Register)
	e.GET("/dashboard", h.Pages.Dashboard)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/demo", h.Auth.Demo)

	// Secured routes (cookie session or demo mode)
	secured := api.Group("", middleware.RequireAuth(sessionCfg))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)

	// ORM-backed resources
	secured.GET("/customers", h.Customers.List)
	secured.POST("/customers", h.Customers.Create)
	secured.GET("/customers/:id", h.Customers.Get)
	secured.PUT("/customers/:id", h.Customers.Update)
	secured.DELETE("/customers/:id", h.Customers.Delete)

	secured.GET("/appointments", h.Appointments.List)
	secured.POST("/appointments", h.Appointments.Create)
	secured.GET("/appointments/:id", h.Appointments.Get)
	secured.PUT("/appointments/:id", h.Appointments.Update)
	secured.DELETE("/appointments/:id", h.Appointments.Delete)

	secured.GET("/tasks", h.Tasks.List)
	secured.POST("/tasks", h.Tasks.Create)
	secured.GET("/tasks/:id", h.Tasks.Get)
	secured.PUT("/tasks/:id", h.Tasks.Update)
	secured.DELETE("/tasks/:id", h.Tasks.Delete)

	// CMS-backed resources share one handler per collection.
	for _, res := range handler.ContentResources {
		ch := handler.NewContentHandler(h.Content, res)
		secured.GET("/"+res.Path, ch.List)
		secured.POST("/"+res.Path, ch.Create)
		secured.GET("/"+res.Path+"/:id", ch.Get)
		secured.PATCH("/"+res.Path+"/:id", ch.Update)
		secured.DELETE("/"+res.Path+"/:id", ch.Delete)
	}

	secured.GET("/settings", h.Settings.Get)
	secured.PUT("/settings", h.Settings.Update)

	// Role-gated routes
	directory := api.Group("", middleware.RequireAuth(sessionCfg, model.RoleAdmin, model.RoleManager))
	directory.GET("/users", h.Users.List)

	admin := api.Group("", middleware.RequireAuth(sessionCfg, model.RoleAdmin))
	admin.GET("/audit-logs", h.Audit.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
