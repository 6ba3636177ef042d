package hotel

import (
	"errors"

	"hotel-booking-api/internal/domain/stay"

	"github.com/google/uuid"
)

var ErrInvalidBasePrice = errors.New("base price cannot be negative")

// RoomType is a category of room within a hotel sharing one pricing and
// capacity policy. Physical rooms belong to exactly one room type.
type RoomType struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	Name          string
	BasePrice     int64
	Occupancy     stay.Occupancy
	Surcharges    stay.SurchargeTable
	TaxAndFeeRate float64 // from the hotel's TAX_AND_FEE policy record
}

func (rt RoomType) Validate() error {
	if rt.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	return rt.Occupancy.Validate()
}

// PricingPolicy combines the room type with a resolved promotional discount
// into the input the cost calculator works on.
func (rt RoomType) PricingPolicy(roomDiscount int64) stay.Policy {
	return stay.Policy{
		BasePrice:     rt.BasePrice,
		RoomDiscount:  roomDiscount,
		Occupancy:     rt.Occupancy,
		Surcharges:    rt.Surcharges,
		TaxAndFeeRate: rt.TaxAndFeeRate,
	}
}
