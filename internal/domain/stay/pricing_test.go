//go:build unit

package stay_test

import (
	"testing"

	"hotel-booking-api/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) stay.Policy {
	t.Helper()
	surcharges, err := stay.ParseSurchargeTable(map[string]float64{
		"0-6":   0,
		"7-13":  0.2,
		"14-17": 0.2,
		"18":    1,
	})
	require.NoError(t, err)

	return stay.Policy{
		BasePrice:    1_000_000,
		RoomDiscount: 0,
		Occupancy: stay.Occupancy{
			StandardOccupant: 2,
			MaxChildren:      1,
			MaxOccupant:      3,
			MaxExtraBed:      1,
		},
		Surcharges:    surcharges,
		TaxAndFeeRate: 0,
	}
}

func TestPrice(t *testing.T) {
	t.Run("two rooms with one teenager and one young child", func(t *testing.T) {
		policy := testPolicy(t)

		quote, err := stay.QuoteRequest(stay.Request{
			NumRooms:     2,
			NumAdults:    3,
			NumChildren:  2,
			ChildrenAges: []int{4, 15},
		}, policy)
		require.NoError(t, err)

		require.Len(t, quote.Rooms, 2)

		// Room 1: two adults plus the 15-year-old at a 20% surcharge.
		assert.Equal(t, int64(1_200_000), quote.Rooms[0].Total)
		assert.Equal(t, int64(200_000), quote.Rooms[0].Surcharge)

		// Room 2: one adult plus the 4-year-old, free of surcharge.
		assert.Equal(t, int64(1_000_000), quote.Rooms[1].Total)
		assert.Equal(t, int64(0), quote.Rooms[1].Surcharge)

		assert.Equal(t, int64(2_200_000), quote.TotalRoomPrice)
		assert.Equal(t, int64(0), quote.TaxAndFee)
		assert.Equal(t, int64(2_200_000), quote.GrandTotal())
	})

	t.Run("discount reduces the surcharge base", func(t *testing.T) {
		policy := testPolicy(t)
		policy.RoomDiscount = 200_000

		quote, err := stay.QuoteRequest(stay.Request{
			NumRooms:     1,
			NumAdults:    2,
			NumChildren:  1,
			ChildrenAges: []int{10},
		}, policy)
		require.NoError(t, err)

		// Surcharge applies to the discounted price: 800,000 × 0.2.
		assert.Equal(t, int64(160_000), quote.Rooms[0].Surcharge)
		assert.Equal(t, int64(960_000), quote.Rooms[0].Total)
	})

	t.Run("discount larger than base price clamps to zero", func(t *testing.T) {
		policy := testPolicy(t)
		policy.RoomDiscount = 2_000_000

		assert.Equal(t, int64(0), policy.EffectivePrice())

		quote, err := stay.QuoteRequest(stay.Request{
			NumRooms:  1,
			NumAdults: 1,
		}, policy)
		require.NoError(t, err)
		assert.Equal(t, int64(0), quote.TotalRoomPrice)
	})

	t.Run("tax and fee is a rounded percentage of the room total", func(t *testing.T) {
		policy := testPolicy(t)
		policy.TaxAndFeeRate = 8.5

		quote, err := stay.QuoteRequest(stay.Request{
			NumRooms:  1,
			NumAdults: 2,
		}, policy)
		require.NoError(t, err)

		assert.Equal(t, int64(1_000_000), quote.TotalRoomPrice)
		assert.Equal(t, int64(85_000), quote.TaxAndFee)
		assert.Equal(t, int64(1_085_000), quote.GrandTotal())
	})

	t.Run("adult-age child uses the open-ended band", func(t *testing.T) {
		policy := testPolicy(t)

		quote, err := stay.QuoteRequest(stay.Request{
			NumRooms:     1,
			NumAdults:    2,
			NumChildren:  1,
			ChildrenAges: []int{18},
		}, policy)
		require.NoError(t, err)

		// 100% surcharge: the 18-year-old pays a full adult share.
		assert.Equal(t, int64(1_000_000), quote.Rooms[0].Surcharge)
	})

	t.Run("age not covered by any band", func(t *testing.T) {
		surcharges, err := stay.ParseSurchargeTable(map[string]float64{"0-6": 0})
		require.NoError(t, err)
		policy := testPolicy(t)
		policy.Surcharges = surcharges

		_, err = stay.QuoteRequest(stay.Request{
			NumRooms:     1,
			NumAdults:    2,
			NumChildren:  1,
			ChildrenAges: []int{10},
		}, policy)
		assert.ErrorIs(t, err, stay.ErrNoBandForAge)
	})

	t.Run("children ages must match the declared count", func(t *testing.T) {
		policy := testPolicy(t)

		_, err := stay.QuoteRequest(stay.Request{
			NumRooms:     1,
			NumAdults:    2,
			NumChildren:  2,
			ChildrenAges: []int{10},
		}, policy)
		assert.ErrorIs(t, err, stay.ErrChildrenAgesCount)
	})

	t.Run("negative base price is rejected", func(t *testing.T) {
		policy := testPolicy(t)
		policy.BasePrice = -1

		_, err := stay.Price([]stay.RoomAllocation{{Adults: 1}}, policy)
		assert.ErrorIs(t, err, stay.ErrNegativePrice)
	})
}
