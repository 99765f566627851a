package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/lead-capture/internal/config"
	"github.com/octobees/lead-capture/internal/handler"
	middlewarepkg "github.com/octobees/lead-capture/internal/middleware"
	"github.com/octobees/lead-capture/internal/validation"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Form  *handler.FormHandler
	Leads *handler.LeadHandler
}

// New builds the echo instance with the shared middleware chain and all routes registered.
func New(cfg *config.Config, handlers Handlers, log *zap.SugaredLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.Echo(nil)
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	Register(e, cfg, handlers)
	return e
}

// Register wires all HTTP routes for the service.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/", handlers.Form.Show)

	api := e.Group("/api")
	api.POST("/check", handlers.Leads.Check, middlewarepkg.RateLimiter(cfg.RateLimitCheck))
	api.POST("/create", handlers.Leads.Create, middlewarepkg.RateLimiter(cfg.RateLimitCreate))
}
