package timezone_test

import (
	"dinebook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestDateAndClock(t *testing.T) {
	instant := time.Date(2025, 3, 14, 19, 30, 0, 0, timezone.GetLocation())

	assert.Equal(t, "2025-03-14", timezone.Date(instant))
	assert.Equal(t, "19:30", timezone.Clock(instant))
}

func TestAt(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		got, err := timezone.At("2025-03-14", "19:30")

		assert.NoError(t, err)
		assert.Equal(t, timezone.GetLocation(), got.Location())
		assert.Equal(t, "2025-03-14", timezone.Date(got))
		assert.Equal(t, "19:30", timezone.Clock(got))
	})

	t.Run("round trips through UTC", func(t *testing.T) {
		got, err := timezone.At("2025-12-31", "23:45")
		assert.NoError(t, err)

		assert.Equal(t, "23:45", timezone.Clock(got.UTC()))
	})

	for _, tt := range []struct{ date, clock string }{
		{"2025-02-30", "12:00"},
		{"14/03/2025", "12:00"},
		{"2025-03-14", "25:00"},
		{"2025-03-14", "7pm"},
	} {
		t.Run("rejects "+tt.date+" "+tt.clock, func(t *testing.T) {
			_, err := timezone.At(tt.date, tt.clock)

			assert.Error(t, err)
		})
	}
}
