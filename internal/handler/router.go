package handler

import (
	"net/http"

	"reminder-engine/internal/handler/api"
	"reminder-engine/internal/handler/middleware"
	"reminder-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine             *gin.Engine
	Config             config.Config
	Logger             *middleware.Logger
	Registry           *prometheus.Registry
	ReminderHandler    *api.ReminderHandler
	DispatchHandler    *api.DispatchHandler
	UnsubscribeHandler *api.UnsubscribeHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{Registry: p.Registry})))
	engine.GET("/unsub/:clientId", p.UnsubscribeHandler.Confirm)
	engine.POST("/unsub/:clientId", p.UnsubscribeHandler.Unsubscribe)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		cronAuth := []gin.HandlerFunc{middleware.RequireCronSecret(p.Config.Cron)}
		addRoutes(apiGroup.Group("/cron"), []route{
			{Method: http.MethodGet, Path: "/dispatch", Handler: p.DispatchHandler.Run, Mw: cronAuth},
			{Method: http.MethodPost, Path: "/dispatch", Handler: p.DispatchHandler.Run, Mw: cronAuth},
		})

		reminders := apiGroup.Group("/reminders")
		reminders.Use(p.AuthMiddleware.RequireTenant())
		{
			h := p.ReminderHandler
			addRoutes(reminders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Create},
				{Method: http.MethodGet, Path: "", Handler: h.List},
				{Method: http.MethodGet, Path: "/overview", Handler: h.Overview},
				{Method: http.MethodGet, Path: "/logs", Handler: h.RecentLogs},
				{Method: http.MethodPost, Path: "/generate", Handler: h.Generate},
				{Method: http.MethodPost, Path: "/plan-purchase", Handler: h.PlanPurchase},
				{Method: http.MethodPost, Path: "/:id/schedule", Handler: h.Schedule},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Cancel},
				{Method: http.MethodPost, Path: "/:id/send-now", Handler: h.SendNow},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
