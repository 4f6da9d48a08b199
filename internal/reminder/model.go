// File: internal/reminder/model.go
package reminder

import (
	"time"

	"seva_backend/internal/store"
)

// Reminder statuses. There is no status-transition API; the type admits the
// states so seeded and imported data can carry them.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Reminder is a scheduled or past maintenance task associated with a vendor.
type Reminder struct {
	ID          string    `json:"id"`
	ServiceName string    `json:"serviceName"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	VendorName  string    `json:"vendorName"`
}

// DemoReminders is the fixed set written to a brand-new user's empty
// collection on first load.
func DemoReminders(now time.Time) []Reminder {
	return []Reminder{
		{
			ServiceName: "Quarterly Pest Control",
			DueDate:     now.AddDate(0, 0, 3),
			Status:      StatusPending,
			VendorName:  "GreenShield Pest Co.",
		},
		{
			ServiceName: "Lawn Mowing",
			DueDate:     now.AddDate(0, 0, 7),
			Status:      StatusPending,
			VendorName:  "Evergreen Lawn Care",
		},
		{
			ServiceName: "AC Unit Inspection",
			DueDate:     now.AddDate(0, 0, -10),
			Status:      StatusCompleted,
			VendorName:  "CoolBreeze HVAC",
		},
	}
}

// ToDocument converts a reminder to its persisted document form.
func ToDocument(r *Reminder) store.Document {
	return store.Document{
		"serviceName": r.ServiceName,
		"dueDate":     r.DueDate.Format(time.RFC3339Nano),
		"status":      r.Status,
		"vendorName":  r.VendorName,
	}
}

// FromDocument converts a persisted document back to a reminder.
func FromDocument(doc store.Document) Reminder {
	return Reminder{
		ID:          store.String(doc, store.IDField),
		ServiceName: store.String(doc, "serviceName"),
		DueDate:     store.Time(doc, "dueDate"),
		Status:      store.String(doc, "status"),
		VendorName:  store.String(doc, "vendorName"),
	}
}
