//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote() stay.Quote {
	return stay.Quote{
		TotalRoomPrice: 2_200_000,
		TaxAndFee:      187_000,
		Rooms: []stay.RoomCharge{
			{Adults: 2, ChildrenAges: []int{15}, BasePrice: 1_000_000, Surcharge: 200_000, Total: 1_200_000},
			{Adults: 1, ChildrenAges: []int{4}, BasePrice: 1_000_000, Surcharge: 0, Total: 1_000_000},
		},
	}
}

func newPendingBooking(t *testing.T) *booking.Booking {
	t.Helper()
	period, err := stay.NewPeriod(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	b, err := booking.NewPending(
		uuid.New(), uuid.New(), period, testQuote(),
		[]uuid.UUID{uuid.New(), uuid.New()},
		time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return b
}

func TestNewPending(t *testing.T) {
	t.Run("builds one room booking per allocated room", func(t *testing.T) {
		b := newPendingBooking(t)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, int64(2_200_000), b.TotalRoomPrice())
		assert.Equal(t, int64(187_000), b.TaxAndFee())

		rooms := b.Rooms()
		require.Len(t, rooms, 2)
		assert.Equal(t, 2, rooms[0].NumAdults)
		assert.Equal(t, []int{15}, rooms[0].ChildrenAges)
		assert.Equal(t, int64(200_000), rooms[0].Surcharge)
		assert.NotEqual(t, rooms[0].RoomID, rooms[1].RoomID)
	})

	t.Run("room count must match the quote", func(t *testing.T) {
		period, err := stay.NewPeriod(
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = booking.NewPending(
			uuid.New(), uuid.New(), period, testQuote(),
			[]uuid.UUID{uuid.New()},
			time.Now(),
		)
		assert.ErrorIs(t, err, booking.ErrNoRooms)
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("pending to confirmed to checked in to checked out", func(t *testing.T) {
		b := newPendingBooking(t)

		require.NoError(t, b.Confirm())
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.CheckIn())
		assert.Equal(t, booking.StatusCheckedIn, b.Status())

		require.NoError(t, b.CheckOut())
		assert.Equal(t, booking.StatusCheckedOut, b.Status())
		assert.False(t, b.IsActive())
	})

	t.Run("confirmed can check out without checking in", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm())
		assert.NoError(t, b.CheckOut())
	})

	t.Run("pending cannot check in", func(t *testing.T) {
		b := newPendingBooking(t)
		assert.ErrorIs(t, b.CheckIn(), booking.ErrInvalidTransition)
	})

	t.Run("checked in cannot cancel", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm())
		require.NoError(t, b.CheckIn())
		assert.ErrorIs(t, b.Cancel(), booking.ErrInvalidTransition)
	})

	t.Run("terminal states admit nothing", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Cancel())

		assert.ErrorIs(t, b.Confirm(), booking.ErrInvalidTransition)
		assert.ErrorIs(t, b.Cancel(), booking.ErrInvalidTransition)
		assert.ErrorIs(t, b.CheckOut(), booking.ErrInvalidTransition)
	})
}

func TestHoldExpired(t *testing.T) {
	b := newPendingBooking(t)
	deadline := b.ExpiresAt()

	assert.False(t, b.HoldExpired(deadline.Add(-time.Minute)))
	assert.False(t, b.HoldExpired(deadline))
	assert.True(t, b.HoldExpired(deadline.Add(time.Second)))

	// Only pending bookings expire.
	require.NoError(t, b.Confirm())
	assert.False(t, b.HoldExpired(deadline.Add(time.Hour)))
}
