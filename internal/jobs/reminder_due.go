// File: internal/jobs/reminder_due.go
package jobs

import (
	"fmt"
	"time"

	"seva_backend/internal/config"
	"seva_backend/internal/reminder"
	"seva_backend/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// dueWindow is how far ahead the scan looks for upcoming reminders.
const dueWindow = 24 * time.Hour

// ReminderDueJob periodically scans active client sessions for pending
// reminders coming due and emits a notification log line for each, honoring
// the profile's notification settings.
type ReminderDueJob struct {
	sessions      *session.Manager
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
	now           func() time.Time
}

// NewReminderDueJob creates a new ReminderDueJob.
func NewReminderDueJob(
	sessions *session.Manager,
	logger *zap.Logger,
	cfg *config.Config,
) *ReminderDueJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ReminderDueJob{
		sessions:      sessions,
		logger:        logger.Named("ReminderDueJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
		now:           time.Now,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ReminderDueJob) SetupAndStart() error {
	jobSpec := j.cfg.ReminderDueJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Reminder due job schedule not defined (REMINDER_DUE_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule reminder due job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Reminder due job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// dueNotification is one reminder selected by the scan, with the channels
// the owning profile allows.
type dueNotification struct {
	UserID   string
	Reminder reminder.Reminder
	Push     bool
	Email    bool
}

// selectDue picks the pending reminders due within the window, skipping
// sessions that have every notification channel disabled.
func selectDue(infos []session.ClientSessionInfo, now time.Time) []dueNotification {
	horizon := now.Add(dueWindow)
	var out []dueNotification
	for _, info := range infos {
		if !info.Settings.Notifications.Push && !info.Settings.Notifications.Email {
			continue
		}
		for _, rem := range info.Reminders {
			if rem.Status != reminder.StatusPending {
				continue
			}
			if rem.DueDate.Before(now) || rem.DueDate.After(horizon) {
				continue
			}
			out = append(out, dueNotification{
				UserID:   info.UserID,
				Reminder: rem,
				Push:     info.Settings.Notifications.Push,
				Email:    info.Settings.Notifications.Email,
			})
		}
	}
	return out
}

// runJob scans the cached reminders of every client-ready session. It works
// entirely off session state, so users without an active session are never
// notified.
func (j *ReminderDueJob) runJob() {
	j.logger.Info("Starting reminder due scan...")
	infos := j.sessions.ActiveClientSessions()
	due := selectDue(infos, j.now().UTC())

	for _, n := range due {
		j.logger.Info("Reminder coming due",
			zap.String("userID", n.UserID),
			zap.String("reminderID", n.Reminder.ID),
			zap.String("service", n.Reminder.ServiceName),
			zap.Time("dueDate", n.Reminder.DueDate),
			zap.Bool("push", n.Push),
			zap.Bool("email", n.Email),
		)
	}
	j.logger.Info("Reminder due scan completed",
		zap.Int("sessions_scanned", len(infos)),
		zap.Int("reminders_due", len(due)),
	)
}

// Stop gracefully stops the cron scheduler.
func (j *ReminderDueJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping reminder due job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Reminder due job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Reminder due job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
