package booking

import (
	"errors"
	"time"

	"hotel-booking-api/internal/domain/stay"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoRooms           = errors.New("booking must hold at least one room")
)

// RoomBooking pins one allocated room of a stay to a physical room, with the
// per-room price breakdown persisted for audit and invoicing.
type RoomBooking struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	NumAdults    int
	ChildrenAges []int
	BasePrice    int64
	Surcharge    int64
	Discount     int64
}

type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	roomTypeID     uuid.UUID
	period         stay.Period
	status         Status
	totalRoomPrice int64
	taxAndFee      int64
	expiresAt      time.Time
	rooms          []RoomBooking
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPending builds the root aggregate for a freshly requested stay. The
// booking holds its rooms until expiresAt; the status scheduler cancels it if
// it is still pending past that instant.
func NewPending(
	userID, roomTypeID uuid.UUID,
	period stay.Period,
	quote stay.Quote,
	roomIDs []uuid.UUID,
	expiresAt time.Time,
) (*Booking, error) {
	if len(roomIDs) == 0 || len(roomIDs) != len(quote.Rooms) {
		return nil, ErrNoRooms
	}

	rooms := make([]RoomBooking, len(roomIDs))
	for i, charge := range quote.Rooms {
		rooms[i] = RoomBooking{
			ID:           uuid.New(),
			RoomID:       roomIDs[i],
			NumAdults:    charge.Adults,
			ChildrenAges: charge.ChildrenAges,
			BasePrice:    charge.BasePrice,
			Surcharge:    charge.Surcharge,
			Discount:     charge.Discount,
		}
	}

	return &Booking{
		id:             uuid.New(),
		userID:         userID,
		roomTypeID:     roomTypeID,
		period:         period,
		status:         StatusPending,
		totalRoomPrice: quote.TotalRoomPrice,
		taxAndFee:      quote.TaxAndFee,
		expiresAt:      expiresAt,
		rooms:          rooms,
	}, nil
}

func Reconstruct(
	id, userID, roomTypeID uuid.UUID,
	period stay.Period,
	status Status,
	totalRoomPrice, taxAndFee int64,
	expiresAt time.Time,
	rooms []RoomBooking,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		roomTypeID:     roomTypeID,
		period:         period,
		status:         status,
		totalRoomPrice: totalRoomPrice,
		taxAndFee:      taxAndFee,
		expiresAt:      expiresAt,
		rooms:          rooms,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) transition(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) Confirm() error {
	return b.transition(StatusConfirmed)
}

func (b *Booking) Cancel() error {
	return b.transition(StatusCanceled)
}

func (b *Booking) CheckIn() error {
	return b.transition(StatusCheckedIn)
}

func (b *Booking) CheckOut() error {
	return b.transition(StatusCheckedOut)
}

// HoldExpired reports whether a pending booking has outlived its hold
// deadline.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.status == StatusPending && b.expiresAt.Before(now)
}

func (b *Booking) IsActive() bool {
	return !b.status.IsTerminal()
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) RoomTypeID() uuid.UUID { return b.roomTypeID }
func (b *Booking) Period() stay.Period   { return b.period }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) TotalRoomPrice() int64 { return b.totalRoomPrice }
func (b *Booking) TaxAndFee() int64      { return b.taxAndFee }
func (b *Booking) ExpiresAt() time.Time  { return b.expiresAt }
func (b *Booking) Rooms() []RoomBooking  { return b.rooms }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
