package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/activitae/cra-api/docs"
	"github.com/activitae/cra-api/internal/config"
	"github.com/activitae/cra-api/internal/middleware"
	"github.com/activitae/cra-api/internal/modules/handler"
	"github.com/activitae/cra-api/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config     *config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	CRAHandler *handler.CRAHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)
	handler.RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(otelgin.Middleware(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler(d.DB))

		cras := api.Group("/cras")
		{
			cras.GET("", d.CRAHandler.ListCRAs)
			cras.POST("", d.CRAHandler.CreateCRA)
			cras.GET("/stats", d.CRAHandler.GetStats)
			cras.GET("/:id", d.CRAHandler.GetCRA)
			cras.PUT("/:id", d.CRAHandler.UpdateCRA)
			cras.DELETE("/:id", d.CRAHandler.DeleteCRA)
		}
	}
	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil {
			dbStatus = "disconnected"
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		}

		c.JSON(http.StatusOK, serializer.OK(gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
		}))
	}
}
