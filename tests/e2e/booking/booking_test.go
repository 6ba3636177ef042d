//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"hotel-booking-api/internal/domain/user"
	reqdto "hotel-booking-api/internal/handler/dto/request"
	resdto "hotel-booking-api/internal/handler/dto/response"
	"hotel-booking-api/tests/common/authtest"
	"hotel-booking-api/tests/common/dbtest"
	"hotel-booking-api/tests/common/httptest"
	"hotel-booking-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// seedInventory creates a hotel with one room type and the given number of
// rooms, returning the room type ID.
func (s *BookingSuite) seedInventory(t *testing.T, rooms int) uuid.UUID {
	hotelID := dbtest.CreateTestHotel(t, s.DB, "Seaside Resort", 0.085)
	roomTypeID := dbtest.CreateTestRoomType(t, s.DB, dbtest.RoomTypeFixture{
		HotelID: hotelID,
		Name:    "Deluxe Twin",
	})
	dbtest.CreateTestRooms(t, s.DB, roomTypeID, rooms)
	return roomTypeID
}

func bookingRequest(roomTypeID uuid.UUID) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomTypeID:   roomTypeID,
		CheckIn:      time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		CheckOut:     time.Now().AddDate(0, 0, 10).Truncate(24 * time.Hour),
		NumRooms:     2,
		NumAdults:    3,
		NumChildren:  2,
		ChildrenAges: []int{4, 15},
	}
}

func idemKey() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.New().String()}
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking is created pending with the priced total", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), token, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		require.Equal(t, "pending", created.Status)
		require.Len(t, created.Rooms, 2)
		// One room carries two adults and the teenager's surcharge, the other
		// one adult and the free-of-charge young child.
		require.Equal(t, int64(2_200_000), created.TotalRoomPrice)
		require.Equal(t, int64(187_000), created.TaxAndFee)
		require.Equal(t, int64(2_387_000), created.GrandTotal)
		require.True(t, created.ExpiresAt.After(time.Now()), "hold deadline should be in the future")
	})

	s.Run("Normal case: replaying the same key returns the same booking with 200", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		key := idemKey()
		reqBody := bookingRequest(roomTypeID)

		w1 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, key)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())
		var first resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &first))

		w2 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, key)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())
		var second resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &second))

		require.Equal(t, first.ID, second.ID, "replay must not create a second booking")
	})

	s.Run("Error case: second booking for the same window is rejected", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 2)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		w1 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), token, idemKey())
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		// Both rooms are now held for the window.
		w2 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), token, idemKey())
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("Error case: missing Idempotency-Key is a 400", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(roomTypeID), token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Error case: party larger than the rooms can hold is a 422", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		reqBody := bookingRequest(roomTypeID)
		reqBody.NumRooms = 1
		reqBody.NumAdults = 5
		reqBody.NumChildren = 0
		reqBody.ChildrenAges = nil

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idemKey())
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: unauthenticated request is a 401", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 3)
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), "", idemKey())
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: staff confirms, owner cancels and rooms are released", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 2)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		dbtest.CreateTestUser(t, s.DB, "frontdesk@example.com", string(user.RoleStaff))
		guestToken := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")
		staffToken := authtest.LoginUser(t, s.Router, "frontdesk@example.com", "password123")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), guestToken, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		confirmURL := fmt.Sprintf("%s/%s/confirm", bookingsURL, created.ID)

		// A customer cannot confirm.
		wc := httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, guestToken)
		require.Equal(t, http.StatusForbidden, wc.Code, wc.Body.String())

		ws := httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, staffToken)
		require.Equal(t, http.StatusNoContent, ws.Code, ws.Body.String())

		detail := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, guestToken)
		require.Equal(t, http.StatusOK, detail.Code)
		var confirmed resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, detail.Body, &confirmed))
		require.Equal(t, "confirmed", confirmed.Status)

		cancelURL := fmt.Sprintf("%s/%s/cancel", bookingsURL, created.ID)
		wx := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, guestToken)
		require.Equal(t, http.StatusNoContent, wx.Code, wx.Body.String())

		var freeRooms int
		err := s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM rooms WHERE room_type_id = $1 AND status = 'available'", roomTypeID).Scan(&freeRooms)
		require.NoError(t, err)
		require.Equal(t, 2, freeRooms, "canceling must release the held rooms")
	})

	s.Run("Error case: another customer cannot see or cancel the booking", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 2)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleCustomer))
		ownerToken := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")
		otherToken := authtest.LoginUser(t, s.Router, "other@example.com", "password123")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), ownerToken, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		detail := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, detail.Code, detail.Body.String())

		cancel := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, created.ID), nil, otherToken)
		require.Equal(t, http.StatusForbidden, cancel.Code, cancel.Body.String())
	})

	s.Run("Error case: canceling twice is a 409", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 2)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest(roomTypeID), token, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cancelURL := fmt.Sprintf("%s/%s/cancel", bookingsURL, created.ID)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusNoContent, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})
}

func (s *BookingSuite) TestListMyBookings() {
	s.Run("Normal case: only the caller's bookings are listed, newest first", func() {
		t := s.T()

		roomTypeID := s.seedInventory(t, 4)
		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleCustomer))
		guestToken := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")
		otherToken := authtest.LoginUser(t, s.Router, "other@example.com", "password123")

		reqBody := bookingRequest(roomTypeID)
		reqBody.NumRooms = 1
		reqBody.NumAdults = 2
		reqBody.NumChildren = 0
		reqBody.ChildrenAges = nil

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, guestToken, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, otherToken, idemKey())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		list := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, guestToken)
		require.Equal(t, http.StatusOK, list.Code)

		var items []resdto.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, list.Body, &items))
		require.Len(t, items, 1, "the other guest's booking must not leak")
		require.Equal(t, int64(1_085_000), items[0].Total) // 1 room, 2 adults: 1,000,000 + 8.5% tax
	})
}

func (s *BookingSuite) TestQuote() {
	s.Run("Normal case: quote prices a stay without touching inventory", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		reqBody := reqdto.QuoteRequest{
			NumRooms:         2,
			NumAdults:        3,
			NumChildren:      2,
			ChildrenAges:     []int{4, 15},
			BasePrice:        1_000_000,
			StandardOccupant: 2,
			MaxChildren:      1,
			MaxOccupant:      3,
			MaxExtraBed:      1,
			SurchargeRates:   map[string]float64{"0-6": 0, "7-13": 0.2, "14-17": 0.2, "18": 1},
			TaxAndFeeRate:    0.085,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/quote", reqBody, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote resdto.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, int64(2_200_000), quote.TotalRoomPrice)
		require.Equal(t, int64(187_000), quote.TaxAndFee)
		require.Equal(t, int64(2_387_000), quote.GrandTotal)

		var bookings int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&bookings))
		require.Zero(t, bookings, "quote must not persist anything")
	})
}
