package cron

import (
	"context"
	"time"

	"medivault/services/medication"
	"medivault/services/reminder"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// tickTimeout bounds a single scheduled run so a stalled store cannot pile
// ticks up behind it.
const tickTimeout = 5 * time.Minute

// Scheduler drives the two periodic engine tasks: the one-minute reminder
// trigger loop and the thirty-minute missed-dose sweep. Each task is
// wrapped in a single-flight guard, so a slow run is skipped over rather
// than executed concurrently with itself.
type Scheduler struct {
	cron        *cron.Cron
	reminders   reminder.ReminderService
	medications medication.MedicationService
	logger      *zap.Logger
}

// NewScheduler builds a stopped scheduler. Instances are independent, so
// tests can run their own without shared process state.
func NewScheduler(reminders reminder.ReminderService, medications medication.MedicationService, logger *zap.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	return &Scheduler{
		cron: cron.New(
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
		reminders:   reminders,
		medications: medications,
		logger:      logger,
	}
}

// Start registers both tasks and launches the timer loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.runTriggerLoop); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 30m", s.runMissedDoseSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("triggerLoop", "1m"), zap.String("missedDoseSweep", "30m"))
	return nil
}

// Stop halts the timer loop and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runTriggerLoop() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if err := s.reminders.ProcessDue(ctx, time.Now()); err != nil {
		// A failed tick is dropped whole; the next tick starts clean.
		s.logger.Error("trigger loop tick failed", zap.Error(err))
	}
}

func (s *Scheduler) runMissedDoseSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if err := s.medications.Sweep(ctx, time.Now()); err != nil {
		s.logger.Error("missed-dose sweep failed", zap.Error(err))
	}
}
