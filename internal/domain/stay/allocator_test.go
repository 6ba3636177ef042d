//go:build unit

package stay_test

import (
	"testing"

	"hotel-booking-api/internal/domain/stay"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allocCmpOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
}

func TestAllocate(t *testing.T) {
	occ := stay.Occupancy{
		StandardOccupant: 2,
		MaxChildren:      1,
		MaxOccupant:      3,
		MaxExtraBed:      1,
	}

	t.Run("adults spread then front-loaded to standard occupancy", func(t *testing.T) {
		rooms, err := stay.Allocate(2, 3, nil, occ)
		require.NoError(t, err)

		expected := []stay.RoomAllocation{
			{Adults: 2},
			{Adults: 1},
		}
		if diff := cmp.Diff(expected, rooms, allocCmpOpts...); diff != "" {
			t.Errorf("allocation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("children seated oldest first within limits", func(t *testing.T) {
		rooms, err := stay.Allocate(2, 3, []int{4, 15}, occ)
		require.NoError(t, err)

		expected := []stay.RoomAllocation{
			{Adults: 2, Children: []int{15}},
			{Adults: 1, Children: []int{4}},
		}
		if diff := cmp.Diff(expected, rooms, allocCmpOpts...); diff != "" {
			t.Errorf("allocation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("adults overflow to max occupancy when standard is full", func(t *testing.T) {
		rooms, err := stay.Allocate(2, 5, nil, occ)
		require.NoError(t, err)

		expected := []stay.RoomAllocation{
			{Adults: 3},
			{Adults: 2},
		}
		if diff := cmp.Diff(expected, rooms, allocCmpOpts...); diff != "" {
			t.Errorf("allocation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("spilled children rebalance into rooms with spare capacity", func(t *testing.T) {
		// Three rooms, three adults, three children. Room 1 fills its child
		// slot; the rest must land one per room rather than pile up at the
		// end.
		rooms, err := stay.Allocate(3, 3, []int{2, 5, 9}, occ)
		require.NoError(t, err)

		for i, room := range rooms {
			assert.Equal(t, 1, room.Adults, "room %d adults", i)
			assert.Len(t, room.Children, 1, "room %d children", i)
			assert.LessOrEqual(t, room.Occupants(), occ.MaxOccupant)
		}
	})

	t.Run("fewer adults than rooms", func(t *testing.T) {
		_, err := stay.Allocate(3, 2, nil, occ)
		assert.ErrorIs(t, err, stay.ErrNotEnoughAdults)
	})

	t.Run("guests beyond hard capacity", func(t *testing.T) {
		_, err := stay.Allocate(1, 2, []int{3, 4}, occ)
		assert.ErrorIs(t, err, stay.ErrCapacityExceeded)
	})

	t.Run("children beyond per-room child limit", func(t *testing.T) {
		// The raw headcount fits, but only one child slot exists per room.
		_, err := stay.Allocate(1, 1, []int{3, 4}, occ)
		assert.ErrorIs(t, err, stay.ErrCapacityExceeded)
	})

	t.Run("zero rooms", func(t *testing.T) {
		_, err := stay.Allocate(0, 1, nil, occ)
		assert.ErrorIs(t, err, stay.ErrNoRooms)
	})

	t.Run("invalid occupancy policy", func(t *testing.T) {
		_, err := stay.Allocate(1, 1, nil, stay.Occupancy{})
		assert.ErrorIs(t, err, stay.ErrInvalidOccupancy)
	})
}
