package services

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/styledesk/styledesk/internal/config"
	"gorm.io/gorm"
)

// MaintenanceScheduler runs nightly housekeeping: pruning old system logs
// and sweeping stale active-token references out of the register.
type MaintenanceScheduler struct {
	db            *gorm.DB
	cfg           *config.LogConfig
	cronScheduler *cron.Cron
}

func NewMaintenanceScheduler(db *gorm.DB, cfg *config.LogConfig) *MaintenanceScheduler {
	return &MaintenanceScheduler{db: db, cfg: cfg}
}

func (s *MaintenanceScheduler) Start() {
	s.cronScheduler = cron.New()

	// Log cleanup at 03:00
	if _, err := s.cronScheduler.AddFunc("0 3 * * *", s.cleanupLogs); err != nil {
		log.Printf("[Maintenance] Failed to schedule log cleanup: %v", err)
	}

	// Register sweep at 03:30
	if _, err := s.cronScheduler.AddFunc("30 3 * * *", s.revalidateRegister); err != nil {
		log.Printf("[Maintenance] Failed to schedule register sweep: %v", err)
	}

	s.cronScheduler.Start()
	log.Println("[Maintenance] Scheduler started")

	// Run cleanup once at startup so stale data never outlives a restart
	go s.cleanupLogs()
}

func (s *MaintenanceScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *MaintenanceScheduler) cleanupLogs() {
	retentionDays := s.cfg.RetentionDays
	if retentionDays <= 0 {
		return
	}

	deleted, err := NewSystemLogService(s.db).CleanupOldLogs(retentionDays)
	if err != nil {
		log.Printf("[Maintenance] Log cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Maintenance] Cleaned up %d logs older than %d days", deleted, retentionDays)
	}
}

func (s *MaintenanceScheduler) revalidateRegister() {
	if err := NewActiveSelectionService(s.db).RevalidateAll(); err != nil {
		log.Printf("[Maintenance] Register sweep failed: %v", err)
	}
}
