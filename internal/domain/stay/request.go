package stay

import "errors"

var (
	ErrNoRooms           = errors.New("at least one room is required")
	ErrNegativeGuests    = errors.New("guest counts cannot be negative")
	ErrChildrenAgesCount = errors.New("children ages must match the number of children")
)

// Request is a caller-supplied stay request: how many rooms, who is staying,
// and for which window.
type Request struct {
	NumRooms     int
	NumAdults    int
	NumChildren  int
	ChildrenAges []int
	Period       Period
}

func (r Request) Validate() error {
	if r.NumRooms <= 0 {
		return ErrNoRooms
	}
	if r.NumAdults < 0 || r.NumChildren < 0 {
		return ErrNegativeGuests
	}
	if len(r.ChildrenAges) != r.NumChildren {
		return ErrChildrenAgesCount
	}
	for _, age := range r.ChildrenAges {
		if age < 0 {
			return ErrNegativeChildAge
		}
	}
	return nil
}

func (r Request) TotalGuests() int {
	return r.NumAdults + len(r.ChildrenAges)
}
