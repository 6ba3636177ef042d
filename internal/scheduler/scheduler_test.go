//go:build unit

package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/scheduler"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory scheduler.Store mirroring the relational shape
// the real store reads from.
type fakeStore struct {
	bookings   map[uuid.UUID]*scheduler.BookingState
	promotions map[uuid.UUID]*scheduler.PromotionState
	roomStatus map[uuid.UUID]room.Status
	holds      map[uuid.UUID][]uuid.UUID // booking -> rooms
	idemKeys   map[uuid.UUID]time.Time   // key -> expires_at
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:   map[uuid.UUID]*scheduler.BookingState{},
		promotions: map[uuid.UUID]*scheduler.PromotionState{},
		roomStatus: map[uuid.UUID]room.Status{},
		holds:      map[uuid.UUID][]uuid.UUID{},
		idemKeys:   map[uuid.UUID]time.Time{},
	}
}

func (f *fakeStore) addBooking(status booking.Status, checkOut, expiresAt time.Time, roomIDs ...uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.bookings[id] = &scheduler.BookingState{ID: id, Status: status, CheckOut: checkOut, ExpiresAt: expiresAt}
	f.holds[id] = roomIDs
	for _, roomID := range roomIDs {
		if !status.IsTerminal() {
			f.roomStatus[roomID] = room.StatusUnavailable
		} else if _, ok := f.roomStatus[roomID]; !ok {
			f.roomStatus[roomID] = room.StatusAvailable
		}
	}
	return id
}

func (f *fakeStore) ListPendingBookings(_ context.Context) ([]scheduler.BookingState, error) {
	var result []scheduler.BookingState
	for _, b := range f.bookings {
		if b.Status == booking.StatusPending {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeStore) ListDepartedBookings(_ context.Context, now time.Time) ([]scheduler.BookingState, error) {
	var result []scheduler.BookingState
	for _, b := range f.bookings {
		if b.CheckOut.Before(now) && !b.Status.IsTerminal() {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, id uuid.UUID, status booking.Status) error {
	f.bookings[id].Status = status
	return nil
}

func (f *fakeStore) RoomIDsForBooking(_ context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	return f.holds[bookingID], nil
}

func (f *fakeStore) ListPromotions(_ context.Context) ([]scheduler.PromotionState, error) {
	var result []scheduler.PromotionState
	for _, p := range f.promotions {
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeStore) SetPromotionActive(_ context.Context, id uuid.UUID, active bool) error {
	f.promotions[id].IsActive = active
	return nil
}

func (f *fakeStore) ListRoomHolds(_ context.Context) ([]scheduler.RoomHoldState, error) {
	var result []scheduler.RoomHoldState
	for bookingID, roomIDs := range f.holds {
		for _, roomID := range roomIDs {
			result = append(result, scheduler.RoomHoldState{
				RoomID:        roomID,
				BookingStatus: f.bookings[bookingID].Status,
				RoomStatus:    f.roomStatus[roomID],
			})
		}
	}
	return result, nil
}

func (f *fakeStore) SetRoomStatus(_ context.Context, id uuid.UUID, status room.Status) error {
	f.roomStatus[id] = status
	return nil
}

func (f *fakeStore) addIdempotencyKey(expiresAt time.Time) uuid.UUID {
	id := uuid.New()
	f.idemKeys[id] = expiresAt
	return id
}

func (f *fakeStore) DeleteExpiredIdempotencyKeys(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, expiresAt := range f.idemKeys {
		if expiresAt.Before(now) {
			delete(f.idemKeys, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) snapshot() map[string]any {
	bookings := map[uuid.UUID]scheduler.BookingState{}
	for id, b := range f.bookings {
		bookings[id] = *b
	}
	promotions := map[uuid.UUID]scheduler.PromotionState{}
	for id, p := range f.promotions {
		promotions[id] = *p
	}
	rooms := map[uuid.UUID]room.Status{}
	for id, s := range f.roomStatus {
		rooms[id] = s
	}
	keys := map[uuid.UUID]time.Time{}
	for id, expiresAt := range f.idemKeys {
		keys[id] = expiresAt
	}
	return map[string]any{"bookings": bookings, "promotions": promotions, "rooms": rooms, "idempotency_keys": keys}
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newScheduler(store *fakeStore) (*scheduler.Scheduler, *clock.Fake) {
	clk := clock.NewFake(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return scheduler.New(store, clk, logger, time.Minute), clk
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("expired pending bookings are canceled and release rooms", func(t *testing.T) {
		store := newFakeStore()
		roomID := uuid.New()
		expired := store.addBooking(booking.StatusPending, testNow.AddDate(0, 0, 5), testNow.Add(-time.Minute), roomID)

		aliveRoom := uuid.New()
		alive := store.addBooking(booking.StatusPending, testNow.AddDate(0, 0, 5), testNow.Add(time.Hour), aliveRoom)

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.Equal(t, booking.StatusCanceled, store.bookings[expired].Status)
		assert.Equal(t, room.StatusAvailable, store.roomStatus[roomID])

		assert.Equal(t, booking.StatusPending, store.bookings[alive].Status)
		assert.Equal(t, room.StatusUnavailable, store.roomStatus[aliveRoom])
	})

	t.Run("a booking expiring exactly now survives the tick", func(t *testing.T) {
		store := newFakeStore()
		id := store.addBooking(booking.StatusPending, testNow.AddDate(0, 0, 5), testNow, uuid.New())

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.Equal(t, booking.StatusPending, store.bookings[id].Status)
	})

	t.Run("promotions flip with their window", func(t *testing.T) {
		store := newFakeStore()
		inWindow := uuid.New()
		store.promotions[inWindow] = &scheduler.PromotionState{
			ID: inWindow, StartDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour), IsActive: false,
		}
		lapsed := uuid.New()
		store.promotions[lapsed] = &scheduler.PromotionState{
			ID: lapsed, StartDate: testNow.Add(-48 * time.Hour), EndDate: testNow.Add(-time.Hour), IsActive: true,
		}
		future := uuid.New()
		store.promotions[future] = &scheduler.PromotionState{
			ID: future, StartDate: testNow.Add(time.Hour), EndDate: testNow.Add(48 * time.Hour), IsActive: false,
		}

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.True(t, store.promotions[inWindow].IsActive)
		assert.False(t, store.promotions[lapsed].IsActive)
		assert.False(t, store.promotions[future].IsActive)
	})

	t.Run("departed stays are checked out and rooms freed", func(t *testing.T) {
		store := newFakeStore()
		roomID := uuid.New()
		departed := store.addBooking(booking.StatusCheckedIn, testNow.Add(-time.Hour), testNow.Add(-72*time.Hour), roomID)

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.Equal(t, booking.StatusCheckedOut, store.bookings[departed].Status)
		assert.Equal(t, room.StatusAvailable, store.roomStatus[roomID])
	})

	t.Run("canceled bookings stay canceled past their checkout date", func(t *testing.T) {
		store := newFakeStore()
		canceled := store.addBooking(booking.StatusCanceled, testNow.Add(-time.Hour), testNow.Add(-72*time.Hour), uuid.New())

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.Equal(t, booking.StatusCanceled, store.bookings[canceled].Status)
	})

	t.Run("reconciliation fixes a drifted room status", func(t *testing.T) {
		store := newFakeStore()
		roomID := uuid.New()
		store.addBooking(booking.StatusConfirmed, testNow.AddDate(0, 0, 5), testNow.Add(-time.Minute), roomID)
		// Drift: the event-driven update was lost.
		store.roomStatus[roomID] = room.StatusAvailable

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.Equal(t, room.StatusUnavailable, store.roomStatus[roomID])
	})

	t.Run("expired idempotency keys are purged", func(t *testing.T) {
		store := newFakeStore()
		expired := store.addIdempotencyKey(testNow.Add(-time.Minute))
		alive := store.addIdempotencyKey(testNow.Add(time.Hour))
		boundary := store.addIdempotencyKey(testNow)

		s, _ := newScheduler(store)
		s.RunOnce(ctx)

		assert.NotContains(t, store.idemKeys, expired)
		assert.Contains(t, store.idemKeys, alive)
		assert.Contains(t, store.idemKeys, boundary)
	})

	t.Run("a second run on settled state changes nothing", func(t *testing.T) {
		store := newFakeStore()
		store.addBooking(booking.StatusPending, testNow.AddDate(0, 0, 5), testNow.Add(-time.Minute), uuid.New())
		store.addBooking(booking.StatusCheckedIn, testNow.Add(-time.Hour), testNow.Add(-72*time.Hour), uuid.New())
		promoID := uuid.New()
		store.promotions[promoID] = &scheduler.PromotionState{
			ID: promoID, StartDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour),
		}

		s, _ := newScheduler(store)
		s.RunOnce(ctx)
		settled := store.snapshot()

		s.RunOnce(ctx)
		if diff := cmp.Diff(settled, store.snapshot()); diff != "" {
			t.Errorf("second run mutated state (-want +got):\n%s", diff)
		}
	})

	t.Run("time advancing expires the next hold", func(t *testing.T) {
		store := newFakeStore()
		id := store.addBooking(booking.StatusPending, testNow.AddDate(0, 0, 5), testNow.Add(30*time.Minute), uuid.New())

		s, clk := newScheduler(store)
		s.RunOnce(ctx)
		require.Equal(t, booking.StatusPending, store.bookings[id].Status)

		clk.Advance(31 * time.Minute)
		s.RunOnce(ctx)
		assert.Equal(t, booking.StatusCanceled, store.bookings[id].Status)
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	s, _ := newScheduler(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
