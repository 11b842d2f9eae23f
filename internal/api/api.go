package api

import (
	"log"
	"strings"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/ragify/internal/prompt"
	"github.com/ethanbaker/ragify/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chat_module "github.com/ethanbaker/ragify/internal/api/modules/chat"
	health_module "github.com/ethanbaker/ragify/internal/api/modules/health"
	widget_module "github.com/ethanbaker/ragify/internal/api/modules/widget"
)

// NewEngine builds the gin engine with every module registered. The chat
// service must be initialized before requests are served
func NewEngine(cfg *utils.Config) *gin.Engine {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Chat page at the root
	widget_module.RegisterRoutes(&engine.RouterGroup)

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	chat_module.RegisterRoutes(baseGroup)

	return engine
}

// Start initializes every module and serves until the server fails
func Start(cfg *utils.Config, document string, persona *prompt.Persona) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	svc := chat_module.Init(cfg, document, persona)
	defer svc.Stop()

	health_module.Init(health_module.Info{
		Model:         svc.Model(),
		Persona:       persona.Name + "@" + persona.Version,
		DocumentChars: len(document),
	})
	widget_module.Init(svc.Model(), svc.HasFallbackKey())

	engine := NewEngine(cfg)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
