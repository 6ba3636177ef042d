package response

import (
	"time"

	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBookingResponse struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"room_id"`
	RoomName     string    `json:"room_name"`
	NumAdults    int       `json:"num_adults"`
	ChildrenAges []int     `json:"children_ages"`
	BasePrice    int64     `json:"base_price"`
	Surcharge    int64     `json:"surcharge"`
	Discount     int64     `json:"discount"`
}

type BookingResponse struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	RoomTypeID     uuid.UUID             `json:"room_type_id"`
	RoomTypeName   string                `json:"room_type_name"`
	Status         string                `json:"status"`
	CheckIn        time.Time             `json:"check_in"`
	CheckOut       time.Time             `json:"check_out"`
	TotalRoomPrice int64                 `json:"total_room_price"`
	TaxAndFee      int64                 `json:"tax_and_fee"`
	GrandTotal     int64                 `json:"grand_total"`
	ExpiresAt      time.Time             `json:"expires_at"`
	Rooms          []RoomBookingResponse `json:"rooms"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	RoomTypeName string    `json:"room_type_name"`
	Status       string    `json:"status"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Total        int64     `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	rooms := make([]RoomBookingResponse, len(view.Rooms))
	for i, r := range view.Rooms {
		rooms[i] = RoomBookingResponse{
			ID:           r.ID,
			RoomID:       r.RoomID,
			RoomName:     r.RoomName,
			NumAdults:    r.NumAdults,
			ChildrenAges: r.ChildrenAges,
			BasePrice:    r.BasePrice,
			Surcharge:    r.Surcharge,
			Discount:     r.Discount,
		}
	}

	return &BookingResponse{
		ID:             view.ID,
		UserID:         view.UserID,
		RoomTypeID:     view.RoomTypeID,
		RoomTypeName:   view.RoomTypeName,
		Status:         view.Status,
		CheckIn:        view.CheckIn,
		CheckOut:       view.CheckOut,
		TotalRoomPrice: view.TotalRoomPrice,
		TaxAndFee:      view.TaxAndFee,
		GrandTotal:     view.TotalRoomPrice + view.TaxAndFee,
		ExpiresAt:      view.ExpiresAt,
		Rooms:          rooms,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:           item.ID,
		RoomTypeID:   item.RoomTypeID,
		RoomTypeName: item.RoomTypeName,
		Status:       item.Status,
		CheckIn:      item.CheckIn,
		CheckOut:     item.CheckOut,
		Total:        item.Total,
		CreatedAt:    item.CreatedAt,
	}
}

type RoomChargeResponse struct {
	Adults       int   `json:"adults"`
	ChildrenAges []int `json:"children_ages"`
	BasePrice    int64 `json:"base_price"`
	Discount     int64 `json:"discount"`
	Surcharge    int64 `json:"surcharge"`
	Total        int64 `json:"total"`
}

type QuoteResponse struct {
	TotalRoomPrice int64                `json:"total_room_price"`
	TaxAndFee      int64                `json:"tax_and_fee"`
	GrandTotal     int64                `json:"grand_total"`
	Rooms          []RoomChargeResponse `json:"rooms"`
}

func FromQuote(quote *stay.Quote) *QuoteResponse {
	rooms := make([]RoomChargeResponse, len(quote.Rooms))
	for i, r := range quote.Rooms {
		rooms[i] = RoomChargeResponse{
			Adults:       r.Adults,
			ChildrenAges: r.ChildrenAges,
			BasePrice:    r.BasePrice,
			Discount:     r.Discount,
			Surcharge:    r.Surcharge,
			Total:        r.Total,
		}
	}

	return &QuoteResponse{
		TotalRoomPrice: quote.TotalRoomPrice,
		TaxAndFee:      quote.TaxAndFee,
		GrandTotal:     quote.GrandTotal(),
		Rooms:          rooms,
	}
}
