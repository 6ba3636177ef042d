//go:build unit

package stay_test

import (
	"testing"

	"hotel-booking-api/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSurchargeTable(t *testing.T) {
	t.Run("bands are sorted by lower bound", func(t *testing.T) {
		table, err := stay.ParseSurchargeTable(map[string]float64{
			"14-17": 0.3,
			"0-6":   0,
			"7-13":  0.2,
			"18":    1,
		})
		require.NoError(t, err)

		bands := table.Bands()
		require.Len(t, bands, 4)
		assert.Equal(t, 0, bands[0].MinAge)
		assert.Equal(t, 7, bands[1].MinAge)
		assert.Equal(t, 14, bands[2].MinAge)
		assert.Equal(t, 18, bands[3].MinAge)
		assert.Equal(t, -1, bands[3].MaxAge)
	})

	t.Run("invalid labels", func(t *testing.T) {
		for _, label := range []string{"", "abc", "6-0", "-3-5", "1-two"} {
			_, err := stay.ParseSurchargeTable(map[string]float64{label: 0.1})
			assert.ErrorIs(t, err, stay.ErrInvalidBandLabel, "label %q", label)
		}
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := stay.ParseSurchargeTable(map[string]float64{"0-6": -0.1})
		assert.ErrorIs(t, err, stay.ErrNegativeRate)
	})
}

func TestRateFor(t *testing.T) {
	table, err := stay.ParseSurchargeTable(map[string]float64{
		"0-6":   0,
		"7-13":  0.2,
		"14-17": 0.4,
		"18":    1,
	})
	require.NoError(t, err)

	cases := []struct {
		age  int
		rate float64
	}{
		{0, 0},
		{6, 0},
		{7, 0.2},
		{13, 0.2},
		{14, 0.4},
		{17, 0.4},
		{18, 1},
		{25, 1},
	}
	for _, tc := range cases {
		rate, err := table.RateFor(tc.age)
		require.NoError(t, err, "age %d", tc.age)
		assert.Equal(t, tc.rate, rate, "age %d", tc.age)
	}

	t.Run("negative age", func(t *testing.T) {
		_, err := table.RateFor(-1)
		assert.ErrorIs(t, err, stay.ErrNegativeChildAge)
	})

	t.Run("gap in the table", func(t *testing.T) {
		sparse, err := stay.ParseSurchargeTable(map[string]float64{"0-6": 0, "14-17": 0.4})
		require.NoError(t, err)

		_, err = sparse.RateFor(10)
		assert.ErrorIs(t, err, stay.ErrNoBandForAge)
	})
}
