package stay

import (
	"errors"
	"math"
)

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNegativeTaxRate = errors.New("tax and fee rate cannot be negative")
)

// Policy is the resolved pricing policy for one room type: the base price,
// the promotional discount already converted to an absolute amount, the
// occupancy limits, the child surcharge table, and the hotel's tax-and-fee
// rate.
type Policy struct {
	BasePrice     int64
	RoomDiscount  int64
	Occupancy     Occupancy
	Surcharges    SurchargeTable
	TaxAndFeeRate float64 // percentage on the room subtotal
}

func (p Policy) Validate() error {
	if p.BasePrice < 0 || p.RoomDiscount < 0 {
		return ErrNegativePrice
	}
	if p.TaxAndFeeRate < 0 {
		return ErrNegativeTaxRate
	}
	return p.Occupancy.Validate()
}

// EffectivePrice is the per-room nightly price after the promotional
// discount, clamped at zero. A discount larger than the base price is a
// policy error upstream, not a negative charge.
func (p Policy) EffectivePrice() int64 {
	effective := p.BasePrice - p.RoomDiscount
	if effective < 0 {
		return 0
	}
	return effective
}

// RoomCharge is the priced breakdown for one allocated room.
type RoomCharge struct {
	Adults       int
	ChildrenAges []int
	BasePrice    int64
	Discount     int64
	Surcharge    int64
	Total        int64
}

// Quote is the priced result of a stay request.
type Quote struct {
	TotalRoomPrice int64
	TaxAndFee      int64
	Rooms          []RoomCharge
}

func (q Quote) GrandTotal() int64 {
	return q.TotalRoomPrice + q.TaxAndFee
}

// Price applies the policy to an allocation: each room is charged the
// effective price plus one surcharge per child, where the surcharge is the
// effective price times the rate of the band covering the child's age.
func Price(allocations []RoomAllocation, policy Policy) (Quote, error) {
	if err := policy.Validate(); err != nil {
		return Quote{}, err
	}

	effective := policy.EffectivePrice()

	quote := Quote{Rooms: make([]RoomCharge, len(allocations))}
	for i, alloc := range allocations {
		charge := RoomCharge{
			Adults:       alloc.Adults,
			ChildrenAges: alloc.Children,
			BasePrice:    policy.BasePrice,
			Discount:     policy.RoomDiscount,
			Total:        effective,
		}

		for _, age := range alloc.Children {
			rate, err := policy.Surcharges.RateFor(age)
			if err != nil {
				return Quote{}, err
			}
			charge.Surcharge += int64(math.Round(float64(effective) * rate))
		}
		charge.Total += charge.Surcharge

		quote.Rooms[i] = charge
		quote.TotalRoomPrice += charge.Total
	}

	quote.TaxAndFee = int64(math.Round(float64(quote.TotalRoomPrice) * policy.TaxAndFeeRate / 100))

	return quote, nil
}

// QuoteRequest allocates and prices a stay request in one step.
func QuoteRequest(req Request, policy Policy) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}

	allocations, err := Allocate(req.NumRooms, req.NumAdults, req.ChildrenAges, policy.Occupancy)
	if err != nil {
		return Quote{}, err
	}

	return Price(allocations, policy)
}
