package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomTypeAvailabilityView struct {
	RoomTypeID     uuid.UUID   `json:"room_type_id"`
	Name           string      `json:"name"`
	BasePrice      int64       `json:"base_price"`
	Discount       int64       `json:"discount"`
	EffectivePrice int64       `json:"effective_price"`
	AvailableRooms int         `json:"available_rooms"`
	TotalRooms     int         `json:"total_rooms"`
	RoomIDs        []uuid.UUID `json:"room_ids"`
}

type RoomBookingView struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"room_id"`
	RoomName     string    `json:"room_name"`
	NumAdults    int       `json:"num_adults"`
	ChildrenAges []int     `json:"children_ages"`
	BasePrice    int64     `json:"base_price"`
	Surcharge    int64     `json:"surcharge"`
	Discount     int64     `json:"discount"`
}

type BookingView struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	RoomTypeID     uuid.UUID         `json:"room_type_id"`
	RoomTypeName   string            `json:"room_type_name"`
	Status         string            `json:"status"`
	CheckIn        time.Time         `json:"check_in"`
	CheckOut       time.Time         `json:"check_out"`
	TotalRoomPrice int64             `json:"total_room_price"`
	TaxAndFee      int64             `json:"tax_and_fee"`
	ExpiresAt      time.Time         `json:"expires_at"`
	Rooms          []RoomBookingView `json:"rooms"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	RoomTypeName string    `json:"room_type_name"`
	Status       string    `json:"status"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Total        int64     `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}
