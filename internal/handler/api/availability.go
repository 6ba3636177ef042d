package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotel-booking-api/internal/domain/stay"
	resdto "hotel-booking-api/internal/handler/dto/response"
	"hotel-booking-api/internal/handler/httperr"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
	}
}

// @Summary Search availability
// @Description List the hotel's room types with enough free rooms for the stay
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param num_rooms query int false "Rooms needed (default 1)"
// @Param min_price query int false "Minimum effective price"
// @Param max_price query int false "Maximum effective price"
// @Success 200 {array} resdto.RoomTypeAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /hotels/{id}/availability [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hotel ID", nil)
		return
	}

	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_in date", nil)
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_out date", nil)
		return
	}

	period, err := stay.NewPeriod(checkIn, checkOut)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Check-out must be after check-in", nil)
		return
	}

	numRooms := 1
	if raw := c.Query("num_rooms"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid num_rooms"), "Invalid num_rooms", nil)
			return
		}
		numRooms = parsed
	}

	priceRange, err := parsePriceRange(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid price range", nil)
		return
	}

	views, err := h.availability.Search(c.Request.Context(), hotelID, period, numRooms, priceRange)
	if err != nil {
		if errors.Is(err, errs.ErrHotelNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Hotel not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityViews(views))
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errs.New("date is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func parsePriceRange(c *gin.Context) (*queries.PriceRange, error) {
	var priceRange queries.PriceRange
	set := false

	if raw := c.Query("min_price"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return nil, errs.New("invalid min_price")
		}
		priceRange.Min = &parsed
		set = true
	}
	if raw := c.Query("max_price"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return nil, errs.New("invalid max_price")
		}
		priceRange.Max = &parsed
		set = true
	}
	if !set {
		return nil, nil
	}
	if priceRange.Min != nil && priceRange.Max != nil && *priceRange.Min > *priceRange.Max {
		return nil, errs.New("min_price exceeds max_price")
	}
	return &priceRange, nil
}
