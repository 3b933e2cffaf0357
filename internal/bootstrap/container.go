package bootstrap

import (
	"time"

	"github.com/activitae/cra-api/internal/config"
	"github.com/activitae/cra-api/internal/infra/cache"
	"github.com/activitae/cra-api/internal/infra/db"
	"github.com/activitae/cra-api/internal/infra/logger"
	mq "github.com/activitae/cra-api/internal/infra/queue"
	"github.com/activitae/cra-api/internal/modules/handler"
	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/activitae/cra-api/internal/modules/repo"
	"github.com/activitae/cra-api/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(&model.CRA{}, &model.Activity{}); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis (optional, nil when disabled)
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ publisher (optional, nil when disabled)
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return nil, nil
		}
		log := do.MustInvoke[*zap.Logger](i)
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		return mq.NewPublisher(conn, log)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.CRARepo, error) {
		return repo.NewCRARepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.StatsService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewStatsService(
			do.MustInvoke[repo.CRARepo](i),
			do.MustInvoke[*redis.Client](i),
			time.Duration(cfg.Stats.CacheTTLSec)*time.Second,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CRAService, error) {
		// Avoid handing a typed-nil publisher to the interface field.
		var publisher service.EventPublisher
		if p := do.MustInvoke[*mq.Publisher](i); p != nil {
			publisher = p
		}
		return service.NewCRAService(
			do.MustInvoke[repo.CRARepo](i),
			do.MustInvoke[service.StatsService](i),
			publisher,
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.CRAHandler, error) {
		return handler.NewCRAHandler(
			do.MustInvoke[service.CRAService](i),
			do.MustInvoke[service.StatsService](i),
		), nil
	})

	return inj
}
