package promotion

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCode           = errors.New("promotion code cannot be empty")
	ErrInvalidDiscountType = errors.New("invalid discount type")
	ErrInvalidPercentage   = errors.New("percentage discount must be in (0,100]")
	ErrInvalidFixedAmount  = errors.New("fixed amount discount must be positive")
	ErrInvalidWindow       = errors.New("promotion start date must be before end date")
)

// Promotion is a time-windowed discount on one room type. IsActive is
// materialized state maintained by the status scheduler, not recomputed from
// the dates on every read.
type Promotion struct {
	id            uuid.UUID
	roomTypeID    uuid.UUID
	code          string
	discountType  DiscountType
	discountValue float64
	startDate     time.Time
	endDate       time.Time
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func New(
	roomTypeID uuid.UUID,
	code string,
	discountType DiscountType,
	discountValue float64,
	startDate, endDate time.Time,
) (*Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if !discountType.IsValid() {
		return nil, ErrInvalidDiscountType
	}
	if discountType == DiscountPercentage && (discountValue <= 0 || discountValue > 100) {
		return nil, ErrInvalidPercentage
	}
	if discountType == DiscountFixedAmount && discountValue <= 0 {
		return nil, ErrInvalidFixedAmount
	}
	if !startDate.Before(endDate) {
		return nil, ErrInvalidWindow
	}

	return &Promotion{
		id:            uuid.New(),
		roomTypeID:    roomTypeID,
		code:          code,
		discountType:  discountType,
		discountValue: discountValue,
		startDate:     startDate,
		endDate:       endDate,
		isActive:      false,
	}, nil
}

func Reconstruct(
	id, roomTypeID uuid.UUID,
	code string,
	discountType DiscountType,
	discountValue float64,
	startDate, endDate time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Promotion {
	return &Promotion{
		id:            id,
		roomTypeID:    roomTypeID,
		code:          code,
		discountType:  discountType,
		discountValue: discountValue,
		startDate:     startDate,
		endDate:       endDate,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// WindowContains reports whether the validity window covers the instant,
// inclusive on both ends.
func (p *Promotion) WindowContains(t time.Time) bool {
	return !t.Before(p.startDate) && !t.After(p.endDate)
}

// ShouldBeActive is the target of the scheduler's activation phases.
func (p *Promotion) ShouldBeActive(now time.Time) bool {
	return p.WindowContains(now)
}

// OverlapsWindow reports whether another validity window intersects this one.
// Two promotions for the same room type must never overlap.
func (p *Promotion) OverlapsWindow(start, end time.Time) bool {
	return !start.After(p.endDate) && !end.Before(p.startDate)
}

// DiscountAmount converts the promotion into an absolute discount for the
// given base price. Fixed amounts apply verbatim; percentages apply to the
// base price.
func (p *Promotion) DiscountAmount(basePrice int64) int64 {
	switch p.discountType {
	case DiscountFixedAmount:
		return int64(math.Round(p.discountValue))
	case DiscountPercentage:
		return int64(math.Round(float64(basePrice) * p.discountValue / 100))
	default:
		return 0
	}
}

func (p *Promotion) ID() uuid.UUID         { return p.id }
func (p *Promotion) RoomTypeID() uuid.UUID { return p.roomTypeID }
func (p *Promotion) Code() string          { return p.code }
func (p *Promotion) Type() DiscountType    { return p.discountType }
func (p *Promotion) Value() float64        { return p.discountValue }
func (p *Promotion) StartDate() time.Time  { return p.startDate }
func (p *Promotion) EndDate() time.Time    { return p.endDate }
func (p *Promotion) IsActive() bool        { return p.isActive }
func (p *Promotion) CreatedAt() time.Time  { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time  { return p.updatedAt }
