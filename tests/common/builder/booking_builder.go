//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-booking-api/internal/handler/dto/request"
	"hotel-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder produces valid booking request DTOs and read models that
// tests mutate field by field.
type BookingBuilder struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RoomTypeID   uuid.UUID
	CheckIn      time.Time
	CheckOut     time.Time
	NumRooms     int
	NumAdults    int
	NumChildren  int
	ChildrenAges []int
	Status       string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		RoomTypeID:   uuid.New(),
		CheckIn:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		NumRooms:     2,
		NumAdults:    3,
		NumChildren:  2,
		ChildrenAges: []int{4, 15},
		Status:       "pending",
	}
}

func (b *BookingBuilder) WithUser(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomTypeID:   b.RoomTypeID,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		NumRooms:     b.NumRooms,
		NumAdults:    b.NumAdults,
		NumChildren:  b.NumChildren,
		ChildrenAges: b.ChildrenAges,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomTypeID:     b.RoomTypeID,
		RoomTypeName:   "Deluxe Twin",
		Status:         b.Status,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		TotalRoomPrice: 2_000_000,
		TaxAndFee:      170_000,
		ExpiresAt:      now.Add(30 * time.Minute),
		Rooms: []queries.RoomBookingView{
			{
				ID:           uuid.New(),
				RoomID:       uuid.New(),
				RoomName:     "201",
				NumAdults:    2,
				ChildrenAges: []int{15},
				BasePrice:    1_000_000,
				Surcharge:    200_000,
				Discount:     0,
			},
			{
				ID:           uuid.New(),
				RoomID:       uuid.New(),
				RoomName:     "202",
				NumAdults:    1,
				ChildrenAges: []int{4},
				BasePrice:    1_000_000,
				Surcharge:    0,
				Discount:     0,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	now := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)
	return &queries.BookingListItem{
		ID:           b.ID,
		RoomTypeID:   b.RoomTypeID,
		RoomTypeName: "Deluxe Twin",
		Status:       b.Status,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Total:        2_170_000,
		CreatedAt:    now,
	}
}

// QuoteBuilder produces a valid stateless quote request.
type QuoteBuilder struct {
	NumRooms     int
	NumAdults    int
	NumChildren  int
	ChildrenAges []int
	BasePrice    int64
}

func NewQuoteBuilder() *QuoteBuilder {
	return &QuoteBuilder{
		NumRooms:     2,
		NumAdults:    3,
		NumChildren:  2,
		ChildrenAges: []int{4, 15},
		BasePrice:    1_000_000,
	}
}

func (q *QuoteBuilder) BuildDTO() reqdto.QuoteRequest {
	return reqdto.QuoteRequest{
		NumRooms:         q.NumRooms,
		NumAdults:        q.NumAdults,
		NumChildren:      q.NumChildren,
		ChildrenAges:     q.ChildrenAges,
		BasePrice:        q.BasePrice,
		RoomDiscount:     0,
		StandardOccupant: 2,
		MaxChildren:      1,
		MaxOccupant:      3,
		MaxExtraBed:      1,
		SurchargeRates:   map[string]float64{"0-6": 0, "7-13": 0.2, "14-17": 0.2, "18": 1},
		TaxAndFeeRate:    0.085,
	}
}
