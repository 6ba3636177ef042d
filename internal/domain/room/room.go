package room

import "hotel-booking-api/internal/domain/booking"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// DeriveStatus recomputes a room's status from the state of a booking that
// holds it. A room held by any active booking is unavailable; canceled and
// checked-out bookings release it. The reconciliation sweep applies this to
// every room booking in the system.
func DeriveStatus(bookingStatus booking.Status) Status {
	if bookingStatus.IsTerminal() {
		return StatusAvailable
	}
	return StatusUnavailable
}
