package services

import (
	"context"
	"log/slog"
	"time"

	"sacco-admin/internal/config"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 5 * time.Minute

// CronService runs background jobs on cron specs with a seconds field
type CronService struct {
	cron  *cron.Cron
	loans *LoanService
	auth  *AuthService
	cfg   config.SchedulerConfig
}

// NewCronService creates a scheduler for the overdue-loan sweep and refresh token cleanup
func NewCronService(cfg config.SchedulerConfig, loans *LoanService, auth *AuthService) *CronService {
	return &CronService{
		cron:  cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		loans: loans,
		auth:  auth,
		cfg:   cfg,
	}
}

// Start registers the jobs and starts the scheduler. An invalid spec is returned before anything runs.
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.OverdueSweep, s.sweepOverdue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.TokenCleanup, s.cleanupTokens); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("🚀 Scheduler started", "overdue_sweep", s.cfg.OverdueSweep, "token_cleanup", s.cfg.TokenCleanup)
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("🛑 Scheduler stopped")
}

func (s *CronService) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.loans.SweepOverdue(ctx, time.Now())
	if err != nil {
		slog.Error("Overdue sweep failed", "error", err)
		return
	}
	slog.Info("Overdue sweep finished", "defaulted", n)
}

func (s *CronService) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.auth.CleanupExpiredTokens(ctx); err != nil {
		slog.Error("Token cleanup failed", "error", err)
	}
}
