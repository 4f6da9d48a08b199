// File: internal/store/convert_test.go
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAcceptsBothBackendRepresentations(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC)

	// Firestore hands back time.Time values.
	assert.Equal(t, want, Time(Document{"at": want}, "at"))

	// The SQL and memory backends round-trip through JSON strings.
	assert.True(t, want.Equal(Time(Document{"at": want.Format(time.RFC3339Nano)}, "at")))

	truncated := want.Truncate(time.Second)
	assert.True(t, truncated.Equal(Time(Document{"at": truncated.Format(time.RFC3339)}, "at")))

	assert.True(t, Time(Document{"at": "not a timestamp"}, "at").IsZero())
	assert.True(t, Time(Document{}, "at").IsZero())
}

func TestMapAcceptsNestedDocumentForms(t *testing.T) {
	nested := Document{"push": true}

	assert.Equal(t, nested, Map(Document{"notifications": nested}, "notifications"))
	assert.Equal(t, nested, Map(Document{"notifications": map[string]interface{}{"push": true}}, "notifications"))
	assert.Nil(t, Map(Document{"notifications": "bogus"}, "notifications"))
}
