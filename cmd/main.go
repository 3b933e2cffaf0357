package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/activitae/cra-api/internal/bootstrap"
	"github.com/activitae/cra-api/internal/config"
	"github.com/activitae/cra-api/internal/infra/db"
	"github.com/activitae/cra-api/internal/modules/handler"
	"github.com/activitae/cra-api/internal/router"
	"github.com/activitae/cra-api/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//	@title			CRA API
//	@version		1.0
//	@description	CRUD service for monthly activity reports (Compte Rendu d'Activité).
//	@BasePath		/api
func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("failed to register gorm tracing plugin", zap.Error(err))
		}
	}

	r := router.NewRouter(router.RouterDeps{
		Config:     cfg,
		DB:         gdb,
		Log:        log,
		CRAHandler: do.MustInvoke[*handler.CRAHandler](inj),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Info("server started", zap.String("addr", cfg.Server.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if tp != nil {
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Error("tracer shutdown failed", zap.Error(err))
		}
	}
	if err := inj.Shutdown(); err != nil {
		log.Error("container shutdown failed", zap.Error(err))
	}
}
