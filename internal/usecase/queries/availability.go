package queries

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// PriceRange filters room types by their effective (post-discount) price.
type PriceRange struct {
	Min *int64
	Max *int64
}

func (r *PriceRange) contains(price int64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

type AvailabilityQueries interface {
	// Search returns the hotel's room types that can host the stay: effective
	// price inside the range and at least numRooms rooms free for the window.
	Search(ctx context.Context, hotelID uuid.UUID, period stay.Period, numRooms int, priceRange *PriceRange) ([]*RoomTypeAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	dbtx       db.DBTX
	roomTypes  shared.RoomTypeReadStore
	rooms      shared.RoomReadStore
	promotions shared.PromotionReadStore
	clock      clock.Clock
}

func NewAvailabilityQueries(
	dbtx db.DBTX,
	roomTypes shared.RoomTypeReadStore,
	rooms shared.RoomReadStore,
	promotions shared.PromotionReadStore,
	clk clock.Clock,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		dbtx:       dbtx,
		roomTypes:  roomTypes,
		rooms:      rooms,
		promotions: promotions,
		clock:      clk,
	}
}

func (q *availabilityQueriesImpl) Search(
	ctx context.Context,
	hotelID uuid.UUID,
	period stay.Period,
	numRooms int,
	priceRange *PriceRange,
) ([]*RoomTypeAvailabilityView, error) {
	roomTypes, err := q.roomTypes.ListByHotel(ctx, q.dbtx, hotelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrHotelNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	result := make([]*RoomTypeAvailabilityView, 0, len(roomTypes))

	for _, rt := range roomTypes {
		discount, err := ResolveDiscount(ctx, q.promotions, q.dbtx, rt.ID, rt.BasePrice, now)
		if err != nil {
			return nil, err
		}

		effective := rt.BasePrice - discount
		if effective < 0 {
			effective = 0
		}
		if !priceRange.contains(effective) {
			continue
		}

		rooms, err := q.rooms.ListByRoomType(ctx, q.dbtx, rt.ID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		holds, err := q.rooms.ListHolds(ctx, q.dbtx, rt.ID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		free := FreeRooms(rooms, holds, period)
		if len(free) < numRooms {
			continue
		}

		roomIDs := make([]uuid.UUID, len(free))
		for i, r := range free {
			roomIDs[i] = r.ID
		}

		result = append(result, &RoomTypeAvailabilityView{
			RoomTypeID:     rt.ID,
			Name:           rt.Name,
			BasePrice:      rt.BasePrice,
			Discount:       discount,
			EffectivePrice: effective,
			AvailableRooms: len(free),
			TotalRooms:     len(rooms),
			RoomIDs:        roomIDs,
		})
	}

	return result, nil
}

// FreeRooms returns the rooms with no conflicting hold for the window, in the
// read store's ID order. A hold conflicts when its stay window touches the
// requested one, boundaries included.
func FreeRooms(rooms []shared.RoomState, holds []shared.RoomHold, period stay.Period) []shared.RoomState {
	held := make(map[uuid.UUID]bool)
	for _, h := range holds {
		if period.ConflictsWith(h.Period) {
			held[h.RoomID] = true
		}
	}

	free := make([]shared.RoomState, 0, len(rooms))
	for _, r := range rooms {
		if !held[r.ID] {
			free = append(free, r)
		}
	}
	return free
}

// ResolveDiscount converts the room type's active promotion (if any) at the
// given instant into an absolute discount amount. No active promotion means
// no discount.
func ResolveDiscount(
	ctx context.Context,
	promotions shared.PromotionReadStore,
	dbtx db.DBTX,
	roomTypeID uuid.UUID,
	basePrice int64,
	at time.Time,
) (int64, error) {
	promo, err := promotions.FindActiveAt(ctx, dbtx, roomTypeID, at)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if promo == nil {
		return 0, nil
	}
	return promo.DiscountAmount(basePrice), nil
}
