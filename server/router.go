package server

import (
	"time"

	"video-distributor/infrastructure/configuration"
	httpHandler "video-distributor/interfaces/http"
	"video-distributor/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health     httpHandler.IHealthHandler
	Platform   httpHandler.IPlatformHandler
	Settings   httpHandler.ISettingsHandler
	Session    httpHandler.ISessionHandler
	Generation httpHandler.IGenerationHandler
	Publish    httpHandler.IPublishHandler
}

func InitiateRouter(app configuration.App, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(app.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = app.AllowOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", h.Health.Healthz)

	api := router.Group("api")
	api.Use(middleware.Credential())

	api.GET("/platforms", h.Platform.List)
	api.GET("/settings", h.Settings.Get)
	api.PUT("/settings/api-key", h.Settings.SaveAPIKey)

	api.POST("/sessions", h.Session.Create)
	sessions := api.Group("/sessions/:id")
	{
		sessions.GET("", h.Session.Get)
		sessions.DELETE("", h.Session.Delete)
		sessions.GET("/stream", h.Session.Stream)

		sessions.PUT("/file", h.Session.SetFile)
		sessions.POST("/file", h.Session.UploadFile)
		sessions.PUT("/context", h.Session.SetContext)

		sessions.POST("/platforms/:platform/toggle", h.Session.ToggleSelection)
		sessions.PUT("/platforms/:platform/content", h.Session.ReplaceContent)
		sessions.PATCH("/platforms/:platform/content", h.Session.UpdateContent)

		sessions.POST("/generate", h.Generation.Generate)
		sessions.POST("/publish", h.Publish.Publish)
		sessions.POST("/publish/reset", h.Publish.Reset)
	}

	return router
}
