//go:build unit

package stay_test

import (
	"testing"
	"time"

	"hotel-booking-api/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func period(t *testing.T, checkIn, checkOut string) stay.Period {
	t.Helper()
	p, err := stay.NewPeriod(day(checkIn), day(checkOut))
	require.NoError(t, err)
	return p
}

func TestNewPeriod(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		p := period(t, "2026-03-01", "2026-03-04")
		assert.Equal(t, 3, p.Nights())
	})

	t.Run("check-in equal to check-out", func(t *testing.T) {
		_, err := stay.NewPeriod(day("2026-03-01"), day("2026-03-01"))
		assert.ErrorIs(t, err, stay.ErrInvalidPeriod)
	})

	t.Run("check-in after check-out", func(t *testing.T) {
		_, err := stay.NewPeriod(day("2026-03-05"), day("2026-03-01"))
		assert.ErrorIs(t, err, stay.ErrInvalidPeriod)
	})
}

func TestConflictsWith(t *testing.T) {
	base := period(t, "2026-03-10", "2026-03-15")

	cases := []struct {
		name      string
		other     stay.Period
		conflicts bool
	}{
		{"identical window", period(t, "2026-03-10", "2026-03-15"), true},
		{"fully inside", period(t, "2026-03-11", "2026-03-13"), true},
		{"overlapping the start", period(t, "2026-03-08", "2026-03-11"), true},
		{"overlapping the end", period(t, "2026-03-14", "2026-03-18"), true},
		{"surrounding", period(t, "2026-03-01", "2026-03-31"), true},
		{"checkout touching check-in", period(t, "2026-03-05", "2026-03-10"), true},
		{"check-in touching checkout", period(t, "2026-03-15", "2026-03-20"), true},
		{"clearly before", period(t, "2026-03-01", "2026-03-05"), false},
		{"clearly after", period(t, "2026-03-20", "2026-03-25"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.conflicts, base.ConflictsWith(tc.other))
			assert.Equal(t, tc.conflicts, tc.other.ConflictsWith(base), "overlap must be symmetric")
		})
	}
}
