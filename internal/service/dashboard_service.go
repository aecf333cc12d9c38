package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	applog "github.com/noah-isme/lab-portal-api/pkg/logger"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type bookingCounter interface {
	counter
	CountUnavailableSlots(ctx context.Context, day models.Weekday) (int, error)
}

// DashboardService aggregates portal statistics for admins.
type DashboardService struct {
	users      counter
	labs       counter
	timetables bookingCounter
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(users, labs counter, timetables bookingCounter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{users: users, labs: labs, timetables: timetables, logger: logger, now: time.Now}
}

// Stats returns entity totals and the number of booked slots today.
// Weekends have no bookings.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}
	if stats.TotalLabs, err = s.labs.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count labs")
	}
	if stats.TotalTimetables, err = s.timetables.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count timetables")
	}
	if day, ok := models.WeekdayOf(s.now()); ok {
		if stats.TodayBookings, err = s.timetables.CountUnavailableSlots(ctx, day); err != nil {
			applog.FromContext(ctx, s.logger).Warn("failed to count today's bookings", zap.Error(err))
			stats.TodayBookings = 0
		}
	}
	return &stats, nil
}
