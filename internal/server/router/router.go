package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/server/handlers"
	"github.com/hingaguru/farmdesk/internal/server/middleware"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins  []string
	Production   bool
	Tokens       middleware.TokenParser
	DefaultOwner primitive.ObjectID
}

// Handlers groups the resource handlers mounted under /api.
type Handlers struct {
	Farmlands    *handlers.FarmlandHandler
	Employees    *handlers.EmployeeHandler
	Transactions *handlers.TransactionHandler
	Crops        *handlers.CropHandler
	Tasks        *handlers.TaskHandler
	Auth         *handlers.AuthHandler
	Dashboard    *handlers.DashboardHandler
	Assistant    *handlers.AssistantHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(opts Options, h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(middleware.Recovery(logger, opts.Production))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.Errors(logger, opts.Production))
	r.NoRoute(middleware.NotFound())

	r.GET("/", handlers.Health)
	r.GET("/healthz", handlers.Health)

	api := r.Group("/api", middleware.Owner(opts.Tokens, opts.DefaultOwner))

	api.GET("/dashboard/summary", h.Dashboard.Summary)
	api.GET("/dashboard/history", h.Dashboard.History)

	farmlands := api.Group("/farmlands")
	farmlands.GET("", h.Farmlands.List)
	farmlands.POST("", h.Farmlands.Create)
	farmlands.GET("/:id", h.Farmlands.Get)
	farmlands.PATCH("/:id", h.Farmlands.Update)
	farmlands.DELETE("/:id", h.Farmlands.Delete)

	employees := api.Group("/employees")
	employees.GET("", h.Employees.List)
	employees.POST("", h.Employees.Create)
	employees.GET("/:id", h.Employees.Get)
	employees.PATCH("/:id", h.Employees.Update)
	employees.DELETE("/:id", h.Employees.Delete)

	transactions := api.Group("/transactions")
	transactions.GET("", h.Transactions.List)
	transactions.POST("", h.Transactions.Create)
	transactions.GET("/export", h.Transactions.Export)
	transactions.GET("/:id", h.Transactions.Get)
	transactions.DELETE("/:id", h.Transactions.Delete)

	crops := api.Group("/crops")
	crops.GET("", h.Crops.List)
	crops.POST("", h.Crops.Create)
	crops.GET("/:id", h.Crops.Get)
	crops.PATCH("/:id", h.Crops.Update)
	crops.DELETE("/:id", h.Crops.Delete)

	tasks := api.Group("/tasks")
	tasks.GET("", h.Tasks.List)
	tasks.POST("", h.Tasks.Create)
	tasks.GET("/:id", h.Tasks.Get)
	tasks.PATCH("/:id", h.Tasks.Update)
	tasks.DELETE("/:id", h.Tasks.Delete)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", middleware.RequireUser(), h.Auth.Me)
	authGroup.PUT("/me", middleware.RequireUser(), h.Auth.UpdateMe)

	api.POST("/ai/chat", h.Assistant.Chat)

	logger.Info("router initialized")

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
