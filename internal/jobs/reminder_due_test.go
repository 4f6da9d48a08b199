// File: internal/jobs/reminder_due_test.go
package jobs

import (
	"testing"
	"time"

	"seva_backend/internal/reminder"
	"seva_backend/internal/session"
	"seva_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientInfo(userID string, push, email bool, reminders ...reminder.Reminder) session.ClientSessionInfo {
	return session.ClientSessionInfo{
		UserID: userID,
		Settings: shared.Settings{
			Notifications: shared.NotificationSettings{Push: push, Email: email},
		},
		Reminders: reminders,
	}
}

func TestSelectDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	dueSoon := reminder.Reminder{ID: "r1", ServiceName: "Gutter Cleaning", Status: reminder.StatusPending, DueDate: now.Add(6 * time.Hour)}
	dueLater := reminder.Reminder{ID: "r2", ServiceName: "Lawn Mowing", Status: reminder.StatusPending, DueDate: now.AddDate(0, 0, 7)}
	overdue := reminder.Reminder{ID: "r3", ServiceName: "AC Unit Inspection", Status: reminder.StatusPending, DueDate: now.Add(-time.Hour)}
	completed := reminder.Reminder{ID: "r4", ServiceName: "Pest Control", Status: reminder.StatusCompleted, DueDate: now.Add(6 * time.Hour)}

	infos := []session.ClientSessionInfo{
		clientInfo("u1", true, false, dueSoon, dueLater, overdue, completed),
		clientInfo("u2", false, true, dueSoon),
		clientInfo("muted", false, false, dueSoon),
	}

	due := selectDue(infos, now)
	require.Len(t, due, 2)

	assert.Equal(t, "u1", due[0].UserID)
	assert.Equal(t, "r1", due[0].Reminder.ID)
	assert.True(t, due[0].Push)
	assert.False(t, due[0].Email)

	assert.Equal(t, "u2", due[1].UserID)
	assert.False(t, due[1].Push)
	assert.True(t, due[1].Email)
}

func TestSelectDue_WindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	atNow := reminder.Reminder{ID: "edge-now", Status: reminder.StatusPending, DueDate: now}
	atHorizon := reminder.Reminder{ID: "edge-horizon", Status: reminder.StatusPending, DueDate: now.Add(dueWindow)}
	pastHorizon := reminder.Reminder{ID: "past-horizon", Status: reminder.StatusPending, DueDate: now.Add(dueWindow + time.Second)}

	due := selectDue([]session.ClientSessionInfo{
		clientInfo("u1", true, true, atNow, atHorizon, pastHorizon),
	}, now)

	ids := make([]string, 0, len(due))
	for _, n := range due {
		ids = append(ids, n.Reminder.ID)
	}
	assert.Equal(t, []string{"edge-now", "edge-horizon"}, ids)
}

func TestSelectDue_NoSessions(t *testing.T) {
	assert.Empty(t, selectDue(nil, time.Now()))
}
