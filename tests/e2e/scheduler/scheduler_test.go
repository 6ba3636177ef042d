//go:build e2e

package scheduler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"hotel-booking-api/internal/domain/user"
	reqdto "hotel-booking-api/internal/handler/dto/request"
	resdto "hotel-booking-api/internal/handler/dto/response"
	"hotel-booking-api/internal/infra/repository"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/scheduler"
	"hotel-booking-api/tests/common/authtest"
	"hotel-booking-api/tests/common/dbtest"
	"hotel-booking-api/tests/common/httptest"
	"hotel-booking-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SchedulerSuite drives the sweep directly against the container database
// instead of waiting for the background ticker.
type SchedulerSuite struct {
	e2e.SharedSuite
}

func TestSchedulerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SchedulerSuite))
}

func (s *SchedulerSuite) newSweeper(at time.Time) *scheduler.Scheduler {
	clk := clock.NewFake(at)
	store := repository.NewSchedulerStore(s.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return scheduler.New(store, clk, logger, time.Minute)
}

func (s *SchedulerSuite) seedInventory(t *testing.T, rooms int) uuid.UUID {
	hotelID := dbtest.CreateTestHotel(t, s.DB, "Seaside Resort", 0.085)
	roomTypeID := dbtest.CreateTestRoomType(t, s.DB, dbtest.RoomTypeFixture{
		HotelID: hotelID,
		Name:    "Deluxe Twin",
	})
	dbtest.CreateTestRooms(t, s.DB, roomTypeID, rooms)
	return roomTypeID
}

func (s *SchedulerSuite) createBooking(t *testing.T, roomTypeID uuid.UUID) resdto.BookingResponse {
	dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
	token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

	reqBody := reqdto.CreateBookingRequest{
		RoomTypeID: roomTypeID,
		CheckIn:    time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		CheckOut:   time.Now().AddDate(0, 0, 10).Truncate(24 * time.Hour),
		NumRooms:   2,
		NumAdults:  2,
	}
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings",
		reqBody, token, map[string]string{"Idempotency-Key": uuid.New().String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

func (s *SchedulerSuite) bookingStatus(t *testing.T, id uuid.UUID) string {
	var status string
	require.NoError(t, s.DB.QueryRow(t.Context(),
		"SELECT status FROM bookings WHERE id = $1", id).Scan(&status))
	return status
}

func (s *SchedulerSuite) freeRooms(t *testing.T, roomTypeID uuid.UUID) int {
	var n int
	require.NoError(t, s.DB.QueryRow(t.Context(),
		"SELECT count(*) FROM rooms WHERE room_type_id = $1 AND status = 'available'", roomTypeID).Scan(&n))
	return n
}

func (s *SchedulerSuite) TestSweep() {
	s.Run("Normal case: an expired hold is canceled and its rooms come back", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		created := s.createBooking(t, roomTypeID)
		require.Equal(t, 1, s.freeRooms(t, roomTypeID))

		sweeper := s.newSweeper(created.ExpiresAt.Add(time.Minute))
		sweeper.RunOnce(t.Context())

		require.Equal(t, "canceled", s.bookingStatus(t, created.ID))
		require.Equal(t, 3, s.freeRooms(t, roomTypeID))
	})

	s.Run("Normal case: a hold that has not expired yet survives the sweep", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		created := s.createBooking(t, roomTypeID)

		sweeper := s.newSweeper(created.ExpiresAt.Add(-time.Minute))
		sweeper.RunOnce(t.Context())

		require.Equal(t, "pending", s.bookingStatus(t, created.ID))
		require.Equal(t, 1, s.freeRooms(t, roomTypeID))
	})

	s.Run("Normal case: a confirmed booking is immune to the expiry sweep", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		created := s.createBooking(t, roomTypeID)

		dbtest.CreateTestUser(t, s.DB, "frontdesk@example.com", string(user.RoleStaff))
		staffToken := authtest.LoginUser(t, s.Router, "frontdesk@example.com", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/bookings/"+created.ID.String()+"/confirm", nil, staffToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		sweeper := s.newSweeper(created.ExpiresAt.Add(time.Hour))
		sweeper.RunOnce(t.Context())

		require.Equal(t, "confirmed", s.bookingStatus(t, created.ID))
		require.Equal(t, 1, s.freeRooms(t, roomTypeID))
	})

	s.Run("Normal case: promotions are activated and deactivated by their windows", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 1)
		now := time.Now().UTC()

		current := dbtest.CreateTestPromotion(t, s.DB, roomTypeID, "NOW10", "percentage", 10,
			now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), false)
		lapsed := dbtest.CreateTestPromotion(t, s.DB, roomTypeID, "OLD10", "percentage", 10,
			now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), true)
		upcoming := dbtest.CreateTestPromotion(t, s.DB, roomTypeID, "SOON10", "percentage", 10,
			now.AddDate(0, 1, 0), now.AddDate(0, 2, 0), false)

		sweeper := s.newSweeper(now)
		sweeper.RunOnce(t.Context())

		s.requirePromotionActive(t, current, true)
		s.requirePromotionActive(t, lapsed, false)
		s.requirePromotionActive(t, upcoming, false)
	})

	s.Run("Normal case: departed guests are checked out and rooms released", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		created := s.createBooking(t, roomTypeID)

		// Simulate a stay that already ended.
		past := time.Now().AddDate(0, 0, -1)
		_, err := s.DB.Exec(t.Context(),
			"UPDATE bookings SET status = 'checked_in', check_in = $2, check_out = $3 WHERE id = $1",
			created.ID, past.AddDate(0, 0, -3), past)
		require.NoError(t, err)

		sweeper := s.newSweeper(time.Now())
		sweeper.RunOnce(t.Context())

		require.Equal(t, "checked_out", s.bookingStatus(t, created.ID))
		require.Equal(t, 3, s.freeRooms(t, roomTypeID))
	})

	s.Run("Normal case: running the sweep twice changes nothing further", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		created := s.createBooking(t, roomTypeID)

		sweeper := s.newSweeper(created.ExpiresAt.Add(time.Minute))
		sweeper.RunOnce(t.Context())
		sweeper.RunOnce(t.Context())

		require.Equal(t, "canceled", s.bookingStatus(t, created.ID))
		require.Equal(t, 3, s.freeRooms(t, roomTypeID))
	})
}

func (s *SchedulerSuite) requirePromotionActive(t *testing.T, id uuid.UUID, want bool) {
	var active bool
	require.NoError(t, s.DB.QueryRow(t.Context(),
		"SELECT is_active FROM promotions WHERE id = $1", id).Scan(&active))
	require.Equal(t, want, active)
}
