package stay

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("check-in must be before check-out")

// Period is the requested stay window. Dates are compared at whatever
// precision the caller supplies; the HTTP layer normalizes to midnight UTC.
type Period struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewPeriod(checkIn, checkOut time.Time) (Period, error) {
	if !checkIn.Before(checkOut) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p Period) CheckIn() time.Time {
	return p.checkIn
}

func (p Period) CheckOut() time.Time {
	return p.checkOut
}

func (p Period) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

// ConflictsWith is the availability overlap test. Bounds are inclusive on
// both ends, so a checkout and a check-in on the same day are treated as a
// conflict. This is deliberately conservative: it leaves the housekeeping gap
// between back-to-back stays.
func (p Period) ConflictsWith(other Period) bool {
	return !other.checkIn.After(p.checkOut) && !other.checkOut.Before(p.checkIn)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s,%s]", p.checkIn.Format(time.RFC3339), p.checkOut.Format(time.RFC3339))
}
