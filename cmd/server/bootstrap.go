package main

import (
	"context"

	"github.com/styledesk/styledesk/internal/config"
	"github.com/styledesk/styledesk/internal/handlers"
	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/internal/utils"
	"github.com/styledesk/styledesk/pkg/logger"
)

// appServices holds the long-lived pieces wired at startup so shutdown can
// stop them in order.
type appServices struct {
	cfg         *config.Config
	authHandler *handlers.AuthHandler
	taskQueue   services.TaskQueue
	worker      *services.Worker
	digest      *services.DigestService
	maintenance *services.MaintenanceScheduler
}

func bootstrap(cfg *config.Config) (*appServices, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	if err := models.SeedDefaultData(); err != nil {
		return nil, err
	}

	db := models.GetDB()
	services.InitSystemLogger(db)

	// Bridge every published change event into the notify queue. SSE fan-out
	// happens inside the hub itself; the queue only feeds webhooks.
	taskQueue := services.InitTaskQueue(cfg)
	services.GetEventHub().SetForwarder(func(event services.ChangeEvent) {
		task := &services.NotifyTask{
			Category: event.Category,
			Action:   event.Action,
			Payload:  event.Payload,
			Actor:    event.Actor,
			At:       event.At,
		}
		if err := taskQueue.Enqueue(task); err != nil {
			logger.Infof("[Bootstrap] Failed to enqueue notify task: %v", err)
		}
	})

	notification := services.NewNotificationService(&cfg.Notify)
	processor := func(ctx context.Context, task *services.NotifyTask) error {
		if !notification.HasWebhooks() {
			return nil
		}
		return notification.SendChangeNotification(task)
	}

	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.InitWorker(&cfg.Redis)
		worker.SetProcessor(processor)
		if err := worker.Start(); err != nil {
			logger.Infof("[Bootstrap] Failed to start notify worker: %v", err)
		}
	} else if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processor)
	}

	digest := services.NewDigestService(db, &cfg.Notify)
	digest.StartScheduler()

	maintenance := services.NewMaintenanceScheduler(db, &cfg.Log)
	maintenance.Start()

	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Infof("[Bootstrap] Failed to ensure admin user: %v", err)
	}

	return &appServices{
		cfg:         cfg,
		authHandler: authHandler,
		taskQueue:   taskQueue,
		worker:      worker,
		digest:      digest,
		maintenance: maintenance,
	}, nil
}

func (s *appServices) shutdown() {
	if s.digest != nil {
		s.digest.StopScheduler()
	}
	if s.maintenance != nil {
		s.maintenance.Stop()
	}
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Close(); err != nil {
			logger.Infof("[Shutdown] Failed to close task queue: %v", err)
		}
	}
}
