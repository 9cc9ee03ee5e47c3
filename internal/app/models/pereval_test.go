package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPerevalPatch_Fields(t *testing.T) {
	t.Run("empty patch yields no fields", func(t *testing.T) {
		assert.Empty(t, (&PerevalPatch{}).Fields())
	})

	t.Run("only supplied fields appear", func(t *testing.T) {
		at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		lat := 45.0
		patch := &PerevalPatch{
			Title:    strPtr("renamed"),
			AddTime:  &at,
			Latitude: &lat,
			Winter:   strPtr("2A"),
		}

		fields := patch.Fields()
		assert.Len(t, fields, 4)
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "add_time")
		assert.Contains(t, fields, "latitude")
		assert.Contains(t, fields, "winter")
	})

	t.Run("user block never becomes a column", func(t *testing.T) {
		patch := &PerevalPatch{User: &User{Email: "user@example.com"}}
		assert.Empty(t, patch.Fields())
	})
}

func TestUser_Matches(t *testing.T) {
	stored := &User{
		ID:    10,
		Email: "user@example.com",
		Phone: "+79001234567",
		Fam:   "Ivanov",
		Name:  "Ivan",
		Otc:   "Ivanovich",
	}

	same := *stored
	same.ID = 0 // identity compares data, not row ids
	assert.True(t, stored.Matches(&same))

	changed := same
	changed.Phone = "+70000000000"
	assert.False(t, stored.Matches(&changed))

	assert.False(t, stored.Matches(nil))
	assert.False(t, (*User)(nil).Matches(stored))
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusPending, StatusAccepted, StatusRejected} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
