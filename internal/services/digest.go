package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/styledesk/styledesk/internal/config"
	"github.com/styledesk/styledesk/internal/models"
	"gorm.io/gorm"
)

// DigestService sends a daily summary of style guide activity to the
// configured webhooks. It reads the day's audit trail from system_logs,
// so it covers every write that went through the API.
type DigestService struct {
	db            *gorm.DB
	notification  *NotificationService
	holiday       *HolidayService
	cfg           *config.NotifyConfig
	cronScheduler *cron.Cron
}

func NewDigestService(db *gorm.DB, cfg *config.NotifyConfig) *DigestService {
	return &DigestService{
		db:           db,
		notification: NewNotificationService(cfg),
		holiday:      NewHolidayService(),
		cfg:          cfg,
	}
}

// StartScheduler schedules the digest at the configured local time.
func (s *DigestService) StartScheduler() {
	if !s.cfg.DigestEnabled {
		log.Println("[Digest] Daily digest disabled")
		return
	}

	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		log.Printf("[Digest] Unknown timezone %q, using UTC", s.cfg.Timezone)
		loc = time.UTC
	}

	s.cronScheduler = cron.New(cron.WithLocation(loc))

	parts := strings.Split(s.cfg.DigestTime, ":")
	hour, minute := "18", "0"
	if len(parts) == 2 {
		hour = parts[0]
		minute = parts[1]
	}
	cronExpr := fmt.Sprintf("%s %s * * *", minute, hour)

	if _, err := s.cronScheduler.AddFunc(cronExpr, func() {
		if err := s.GenerateAndSend(); err != nil {
			log.Printf("[Digest] Failed to send digest: %v", err)
		}
	}); err != nil {
		log.Printf("[Digest] Failed to add cron job: %v", err)
		return
	}

	s.cronScheduler.Start()
	log.Printf("[Digest] Scheduled at %s %s (cron: %s)", s.cfg.DigestTime, s.cfg.Timezone, cronExpr)
}

func (s *DigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// GenerateAndSend builds today's digest and posts it. Non-workdays are
// skipped so nobody gets pinged on holidays.
func (s *DigestService) GenerateAndSend() error {
	now := time.Now()
	if !s.holiday.IsWorkday(now, s.cfg.Country) {
		log.Printf("[Digest] %s is not a workday in %s, skipping", now.Format("2006-01-02"), s.cfg.Country)
		return nil
	}

	body, count, err := s.BuildDigest(now)
	if err != nil {
		return err
	}
	if count == 0 {
		log.Println("[Digest] No changes today, skipping")
		return nil
	}

	title := fmt.Sprintf("Style guide digest - %s", now.Format("2006-01-02"))
	return s.notification.SendDigest(title, body)
}

// BuildDigest summarizes the audit trail for the day containing t.
// Returns the digest text and the number of audited changes.
func (s *DigestService) BuildDigest(t time.Time) (string, int, error) {
	startOfDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var results []struct {
		Module string
		Action string
		Count  int
	}
	err := s.db.Model(&models.SystemLog{}).
		Select("module, action, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ? AND extra LIKE ?", startOfDay, endOfDay, `%"audit":true%`).
		Group("module, action").
		Order("count DESC").
		Scan(&results).Error
	if err != nil {
		return "", 0, err
	}

	total := 0
	var sb strings.Builder
	for _, r := range results {
		total += r.Count
		sb.WriteString(fmt.Sprintf("- %s %s: %d\n", r.Module, strings.ToLower(r.Action), r.Count))
	}

	var errorCount int64
	s.db.Model(&models.SystemLog{}).
		Where("created_at BETWEEN ? AND ? AND level = ?", startOfDay, endOfDay, "error").
		Count(&errorCount)

	header := fmt.Sprintf("%d change(s) across the design system today.\n", total)
	if errorCount > 0 {
		header += fmt.Sprintf("%d error(s) logged - check the system log.\n", errorCount)
	}

	return header + sb.String(), total, nil
}
