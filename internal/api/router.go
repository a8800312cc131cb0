package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/api/handler"
	"github.com/inmovement/patient-portal/internal/api/middleware"
	"github.com/inmovement/patient-portal/internal/core/ports"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Registration ports.RegistrationService
	Profile      ports.ProfileService
	Catalog      ports.CatalogService
	Validator    *validation.Validator
	Probes       map[string]handler.Probe
	JWTSecret    string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator(d.Validator)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("patient_portal"))

	authHandler := handler.NewAuthHandler(d.Registration)
	profileHandler := handler.NewProfileHandler(d.Profile)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Session routes ---
	requireSession := middleware.Auth(d.JWTSecret)
	e.GET("/profile", profileHandler.Get, requireSession)
	e.PUT("/profile", profileHandler.Update, requireSession)
	e.GET("/home", catalogHandler.Home, requireSession)
	e.GET("/videos", catalogHandler.Search, requireSession)
	e.GET("/favorites", catalogHandler.Favorites, requireSession)
	e.POST("/videos/:id/favorite", catalogHandler.ToggleFavorite, requireSession)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Probes)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
