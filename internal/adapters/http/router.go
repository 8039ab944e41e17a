package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedash/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds /api/v1 requests when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything SetupRouter mounts.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	Dashboard     *app.Dashboard
	HealthHandler *handlers.HealthHandler

	// Timeout is the deadline of /api/v1 requests. Probes are not bounded.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Context logger - base logger for everything below
//  2. Recovery - catch panics
//  3. Request ID and correlation ID
//  4. OpenTelemetry - server span, then metrics
//  5. Logging - one line per request (skips /-/)
//
// Route groups:
//   - /-/ probes, build info and metrics
//   - /api/v1/session login, register, logout (no session needed)
//   - /api/v1/... dashboard, quotes, form (session required)
//   - /api/v1/admin/... tags and categories (admin role required)
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(noRoute)
	engine.NoMethod(noMethod)

	engine.Use(
		middleware.ContextLogger(cfg.Logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	apiV1 := engine.Group("/api/v1", middleware.Timeout(timeout))
	setupAPIRoutes(apiV1, cfg.Dashboard)
}

func setupAPIRoutes(rg *gin.RouterGroup, dash *app.Dashboard) {
	handlers.NewSessionHandler(dash).RegisterRoutes(rg)

	authed := rg.Group("", middleware.RequireSession(dash))
	handlers.NewDashboardHandler(dash).RegisterRoutes(authed)
	handlers.NewFormHandler(dash).RegisterRoutes(authed)

	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	handlers.NewAdminHandler(dash).RegisterRoutes(admin)
}
