package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReminderSchedule runs the fee reminder every day at 08:30
const DefaultReminderSchedule = "30 8 * * *"

// FeeReminderService periodically reminds members about outstanding fees
type FeeReminderService struct {
	library  *LibraryService
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
	timeout  time.Duration
}

// NewFeeReminderService creates a reminder service; an empty schedule disables it
func NewFeeReminderService(library *LibraryService, schedule string, log *zap.Logger) *FeeReminderService {
	return &FeeReminderService{
		library:  library,
		schedule: schedule,
		cron:     cron.New(),
		log:      log,
		timeout:  time.Minute,
	}
}

// Start registers the job and starts the scheduler
func (s *FeeReminderService) Start() error {
	if s.schedule == "" {
		s.log.Info("⏸️ Fee reminders disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runJob); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()

	s.log.Info("⏰ Fee reminders scheduled", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *FeeReminderService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("🛑 Fee reminders stopped")
}

func (s *FeeReminderService) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.SendReminders(ctx)
	if err != nil {
		s.log.Error("❌ Fee reminder run failed", zap.Error(err))
		return
	}
	s.log.Info("📨 Fee reminders sent", zap.Int("count", sent))
}

// SendReminders notifies every member with outstanding fees and returns how many
// messages were delivered
func (s *FeeReminderService) SendReminders(ctx context.Context) (int, error) {
	members, err := s.library.MembersWithFees(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, m := range members {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		body := fmt.Sprintf("Hi %s, you have $%.2f in outstanding library fees.", m.Name, m.Fees)
		if s.library.NotifyMember(ctx, m, "Outstanding fees", body) {
			sent++
		}
	}
	return sent, nil
}
