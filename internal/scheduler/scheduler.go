package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/domain"
	"github.com/rythem12/hlp-funding-fee/internal/store"
)

// broadcastSpec fires just before the hourly funding settlement boundary.
const broadcastSpec = "59 * * * *"

const scheduledPrefix = "📩 Scheduled message:\n\n"

// Broadcaster is what the periodic cycle needs from the notification engine.
type Broadcaster interface {
	BroadcastAll(ctx context.Context)
}

// Sender is a minimal interface the scheduler needs to send a text message.
// telegram.Router will implement this (method: SendMessage).
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler drives the hourly broadcast cycle and one-shot admin messages.
// One-shot timers live in memory; Run re-arms pending persisted records so
// a restart does not silently drop them.
type Scheduler struct {
	cron      *cron.Cron
	schedules *store.Schedules
	engine    Broadcaster
	sender    Sender
	log       *zap.Logger
}

func New(schedules *store.Schedules, engine Broadcaster, sender Sender, log *zap.Logger) *Scheduler {
	// Recover keeps a panicking firing from unscheduling future ones.
	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog)),
	)
	return &Scheduler{
		cron:      c,
		schedules: schedules,
		engine:    engine,
		sender:    sender,
		log:       log,
	}
}

// Run registers the hourly cycle, reconciles persisted one-shot schedules
// and blocks until ctx is canceled. Missed cron firings are skipped, never
// backfilled.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(broadcastSpec, func() {
		s.log.Info("hourly broadcast cycle")
		s.engine.BroadcastAll(ctx)
	}); err != nil {
		return err
	}

	s.reconcile(ctx)
	s.cron.Start()

	<-ctx.Done()
	s.log.Info("scheduler stopping")
	// Stop accepting new firings; an in-flight one completes.
	<-s.cron.Stop().Done()
	return nil
}

// ScheduleAt persists msg and arms an in-process one-shot timer bound to
// ctx. The returned record carries the store-assigned ID.
func (s *Scheduler) ScheduleAt(ctx context.Context, msg domain.ScheduledMessage) (domain.ScheduledMessage, error) {
	stored, err := s.schedules.Append(msg)
	if err != nil {
		return domain.ScheduledMessage{}, err
	}
	s.arm(ctx, stored)
	s.log.Info("broadcast scheduled",
		zap.Int64("id", stored.ID),
		zap.Int64("target", stored.TargetID),
		zap.Time("fireAt", stored.FireAt),
	)
	return stored, nil
}

// reconcile replays the schedule store against the clock: pending records
// still in the future get a fresh timer, overdue ones are marked missed
// rather than delivered late.
func (s *Scheduler) reconcile(ctx context.Context) {
	now := time.Now()
	for _, msg := range s.schedules.Pending() {
		if msg.FireAt.After(now) {
			s.arm(ctx, msg)
			s.log.Info("re-armed pending schedule", zap.Int64("id", msg.ID), zap.Time("fireAt", msg.FireAt))
			continue
		}
		if err := s.schedules.SetStatus(msg.ID, domain.StatusMissed); err != nil {
			s.log.Error("mark missed failed", zap.Int64("id", msg.ID), zap.Error(err))
			continue
		}
		s.log.Warn("schedule missed while process was down", zap.Int64("id", msg.ID), zap.Time("fireAt", msg.FireAt))
	}
}

func (s *Scheduler) arm(ctx context.Context, msg domain.ScheduledMessage) {
	delay := time.Until(msg.FireAt)
	if delay < 0 {
		delay = 0
	}
	timer := time.NewTimer(delay)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			s.fire(msg)
		}
	}()
}

func (s *Scheduler) fire(msg domain.ScheduledMessage) {
	if err := s.sender.SendMessage(msg.TargetID, scheduledPrefix+msg.Message); err != nil {
		// Left pending: the record is reconciled (as missed) on next start.
		s.log.Error("scheduled send failed", zap.Int64("id", msg.ID), zap.Int64("target", msg.TargetID), zap.Error(err))
		return
	}
	if err := s.schedules.SetStatus(msg.ID, domain.StatusSent); err != nil {
		s.log.Error("mark sent failed", zap.Int64("id", msg.ID), zap.Error(err))
		return
	}
	s.log.Info("scheduled message delivered", zap.Int64("id", msg.ID), zap.Int64("target", msg.TargetID))
}
