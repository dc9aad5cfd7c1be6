package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.Service
	interval      time.Duration
}

func NewAttendanceJobs(attendanceSvc attendance.Service, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		interval:      interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_sessions", j.interval, j.CloseStaleSessions)
	scheduler.AddJob("mark_absent_employees", j.interval, j.MarkAbsentEmployees)
}

// CloseStaleSessions sweeps yesterday's open sessions shortly after the day
// rolls over and closes them at the sweep instant.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting stale session sweep")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	reason := "Auto-closed: no checkout recorded by end of day"

	result, err := j.attendanceSvc.BulkCheckout(ctx, &attendance.BulkCheckoutRequest{
		Date:   yesterday,
		Reason: &reason,
	})
	if err != nil {
		return err
	}

	slog.Info("Cron: Stale session sweep finished",
		"date", result.Date,
		"closed", result.Closed,
		"skipped", result.Skipped,
		"errors", result.Errors)
	return nil
}

// MarkAbsentEmployees writes absent records for yesterday once the day has
// rolled over everywhere.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	count, err := j.attendanceSvc.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Marked absent employees", "date", yesterday, "count", count)
	return nil
}
