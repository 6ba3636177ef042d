package stay

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidBandLabel = errors.New("invalid surcharge band label")
	ErrNegativeRate     = errors.New("surcharge rate cannot be negative")
	ErrNoBandForAge     = errors.New("no surcharge band covers age")
	ErrNegativeChildAge = errors.New("child age cannot be negative")
)

// SurchargeBand is an inclusive age range carrying a fractional markup on the
// room's effective price. A band labeled with a single number ("18") is
// open-ended upward.
type SurchargeBand struct {
	MinAge int
	MaxAge int // -1 means no upper bound
	Rate   float64
}

func (b SurchargeBand) Contains(age int) bool {
	if age < b.MinAge {
		return false
	}
	return b.MaxAge < 0 || age <= b.MaxAge
}

// SurchargeTable maps child ages to surcharge rates. Bands come from labels
// like "0-6", "7-13", "14-17", "18" and are kept sorted by lower bound; lookup
// takes the first matching band.
type SurchargeTable struct {
	bands []SurchargeBand
}

func ParseSurchargeTable(rates map[string]float64) (SurchargeTable, error) {
	bands := make([]SurchargeBand, 0, len(rates))
	for label, rate := range rates {
		if rate < 0 {
			return SurchargeTable{}, ErrNegativeRate
		}
		band, err := parseBandLabel(label)
		if err != nil {
			return SurchargeTable{}, err
		}
		band.Rate = rate
		bands = append(bands, band)
	}

	sort.Slice(bands, func(i, j int) bool {
		return bands[i].MinAge < bands[j].MinAge
	})

	return SurchargeTable{bands: bands}, nil
}

func parseBandLabel(label string) (SurchargeBand, error) {
	parts := strings.SplitN(strings.TrimSpace(label), "-", 2)

	minAge, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || minAge < 0 {
		return SurchargeBand{}, ErrInvalidBandLabel
	}

	if len(parts) == 1 {
		return SurchargeBand{MinAge: minAge, MaxAge: -1}, nil
	}

	maxAge, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || maxAge < minAge {
		return SurchargeBand{}, ErrInvalidBandLabel
	}

	return SurchargeBand{MinAge: minAge, MaxAge: maxAge}, nil
}

// RateFor returns the surcharge rate for a child of the given age. Every age
// a guest can legally book with must be covered by a band; a gap is a policy
// configuration error surfaced as ErrNoBandForAge.
func (t SurchargeTable) RateFor(age int) (float64, error) {
	if age < 0 {
		return 0, ErrNegativeChildAge
	}
	for _, b := range t.bands {
		if b.Contains(age) {
			return b.Rate, nil
		}
	}
	return 0, ErrNoBandForAge
}

func (t SurchargeTable) Bands() []SurchargeBand {
	return t.bands
}

func (t SurchargeTable) IsEmpty() bool {
	return len(t.bands) == 0
}
