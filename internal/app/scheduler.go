package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	overview *service.OverviewService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(overview *service.OverviewService, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		overview: overview,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("report_interval", s.interval))

	go s.runReportTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

// runReportTask периодически пишет в лог сводку загрузки зала
func (s *Scheduler) runReportTask(ctx context.Context) {
	defer close(s.done)

	// Первый отчёт сразу при старте
	s.report(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.report(ctx)
		case <-s.stopChan:
			s.logger.Info("Usage report task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Usage report task cancelled")
			return
		}
	}
}

func (s *Scheduler) report(ctx context.Context) {
	overview, err := s.overview.System(ctx)
	if err != nil {
		s.logger.Error("Failed to build usage report", zap.Error(err))
		return
	}

	s.logger.Info("Usage report",
		zap.Int("upcoming_slots", overview.UpcomingSlots),
		zap.Int("total_slots", overview.TotalSlots),
		zap.Int("active_bookings", overview.ActiveBookings),
		zap.Int("booked_spots", overview.BookedSpots),
		zap.Int("total_capacity", overview.TotalCapacity),
		zap.Int("utilization_pct", overview.Utilization),
		zap.Int("students", overview.UsersByRole["student"]),
		zap.Int("teachers", overview.UsersByRole["teacher"]),
	)
}
