package request

import (
	"time"

	"hotel-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomTypeID   uuid.UUID `json:"room_type_id" binding:"required"`
	CheckIn      time.Time `json:"check_in" binding:"required"`
	CheckOut     time.Time `json:"check_out" binding:"required"`
	NumRooms     int       `json:"num_rooms" binding:"required,min=1"`
	NumAdults    int       `json:"num_adults" binding:"required,min=1"`
	NumChildren  int       `json:"num_children" binding:"min=0"`
	ChildrenAges []int     `json:"children_ages" binding:"omitempty,dive,min=0"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		RoomTypeID:   r.RoomTypeID,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		NumRooms:     r.NumRooms,
		NumAdults:    r.NumAdults,
		NumChildren:  r.NumChildren,
		ChildrenAges: r.ChildrenAges,
	}
}

// QuoteRequest carries the stateless price estimation input. The whole pricing
// policy travels with the request; nothing is looked up.
type QuoteRequest struct {
	NumRooms         int                `json:"num_rooms" binding:"required,min=1"`
	NumAdults        int                `json:"num_adults" binding:"required,min=1"`
	NumChildren      int                `json:"num_children" binding:"min=0"`
	ChildrenAges     []int              `json:"children_ages" binding:"omitempty,dive,min=0"`
	BasePrice        int64              `json:"base_price" binding:"required,min=0"`
	RoomDiscount     int64              `json:"room_discount" binding:"min=0"`
	StandardOccupant int                `json:"standard_occupant" binding:"required,min=1"`
	MaxChildren      int                `json:"max_children" binding:"min=0"`
	MaxOccupant      int                `json:"max_occupant" binding:"required,min=1"`
	MaxExtraBed      int                `json:"max_extra_bed" binding:"min=0"`
	SurchargeRates   map[string]float64 `json:"surcharge_rates"`
	TaxAndFeeRate    float64            `json:"tax_and_fee_rate" binding:"min=0"`
}

func (r QuoteRequest) ToParams() commands.QuoteParams {
	return commands.QuoteParams{
		NumRooms:         r.NumRooms,
		NumAdults:        r.NumAdults,
		NumChildren:      r.NumChildren,
		ChildrenAges:     r.ChildrenAges,
		BasePrice:        r.BasePrice,
		RoomDiscount:     r.RoomDiscount,
		StandardOccupant: r.StandardOccupant,
		MaxChildren:      r.MaxChildren,
		MaxOccupant:      r.MaxOccupant,
		MaxExtraBed:      r.MaxExtraBed,
		SurchargeRates:   r.SurchargeRates,
		TaxAndFeeRate:    r.TaxAndFeeRate,
	}
}
