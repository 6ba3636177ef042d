package stay

import (
	"errors"
	"slices"
	"sort"
)

var (
	ErrNotEnoughAdults  = errors.New("every room needs at least one adult")
	ErrCapacityExceeded = errors.New("guests exceed the capacity of the requested rooms")
	ErrInvalidOccupancy = errors.New("invalid occupancy policy")
)

// Occupancy is the per-room capacity policy of a room type.
type Occupancy struct {
	StandardOccupant int // adults a room holds at the base price
	MaxChildren      int // children a room seats before rebalancing
	MaxOccupant      int // hard cap on guests per room
	MaxExtraBed      int
}

func (o Occupancy) Validate() error {
	if o.StandardOccupant < 1 || o.MaxOccupant < 1 || o.MaxChildren < 0 || o.MaxExtraBed < 0 {
		return ErrInvalidOccupancy
	}
	return nil
}

// RoomAllocation is the guest assignment for one physical room.
type RoomAllocation struct {
	Adults   int
	Children []int // ages, oldest first
}

func (a RoomAllocation) Occupants() int {
	return a.Adults + len(a.Children)
}

func (a RoomAllocation) overLimit(occ Occupancy) bool {
	return len(a.Children) > occ.MaxChildren || a.Occupants() > occ.MaxOccupant
}

func (a RoomAllocation) hasChildCapacity(occ Occupancy) bool {
	return len(a.Children) < occ.MaxChildren && a.Occupants() < occ.MaxOccupant
}

// Allocate partitions the requested guests across numRooms rooms.
//
// Adults are spread one per room first, then topped up to the standard
// occupant count front-loading earlier rooms, then up to the hard cap.
// Children are seated oldest first (older children carry higher surcharges,
// so placement must be deterministic), front-loading earlier rooms within the
// child and occupant limits; any remainder spills into the last room and is
// rebalanced. A request that cannot be seated within numRooms × MaxOccupant,
// or whose children cannot be placed within the per-room child limits, fails
// with an explicit error rather than an under-filled allocation.
func Allocate(numRooms, numAdults int, childrenAges []int, occ Occupancy) ([]RoomAllocation, error) {
	if numRooms <= 0 {
		return nil, ErrNoRooms
	}
	if err := occ.Validate(); err != nil {
		return nil, err
	}
	if numAdults < numRooms {
		return nil, ErrNotEnoughAdults
	}
	if numAdults+len(childrenAges) > numRooms*occ.MaxOccupant {
		return nil, ErrCapacityExceeded
	}

	ages := slices.Clone(childrenAges)
	sort.Sort(sort.Reverse(sort.IntSlice(ages)))

	rooms := make([]RoomAllocation, numRooms)

	adults := numAdults
	for i := range rooms {
		if adults == 0 {
			break
		}
		rooms[i].Adults = 1
		adults--
	}
	for i := range rooms {
		for adults > 0 && rooms[i].Adults < occ.StandardOccupant {
			rooms[i].Adults++
			adults--
		}
	}
	for i := range rooms {
		for adults > 0 && rooms[i].Adults < occ.MaxOccupant {
			rooms[i].Adults++
			adults--
		}
	}
	if adults > 0 {
		return nil, ErrCapacityExceeded
	}

	next := 0
	for i := range rooms {
		for next < len(ages) && rooms[i].hasChildCapacity(occ) {
			rooms[i].Children = append(rooms[i].Children, ages[next])
			next++
		}
	}
	// Unseated children spill into the last room; rebalance moves the excess
	// back out if any sibling room still has capacity.
	for next < len(ages) {
		rooms[numRooms-1].Children = append(rooms[numRooms-1].Children, ages[next])
		next++
	}

	if err := rebalance(rooms, occ); err != nil {
		return nil, err
	}

	return rooms, nil
}

// rebalance moves children out of over-limit rooms into the first room with
// spare capacity. The move count is capped so a violated capacity invariant
// upstream surfaces as an error instead of a spin.
func rebalance(rooms []RoomAllocation, occ Occupancy) error {
	totalChildren := 0
	for i := range rooms {
		totalChildren += len(rooms[i].Children)
	}
	maxMoves := totalChildren*len(rooms) + 1

	moves := 0
	for i := range rooms {
		for rooms[i].overLimit(occ) {
			if moves >= maxMoves {
				return ErrCapacityExceeded
			}
			target := -1
			for j := range rooms {
				if j != i && rooms[j].hasChildCapacity(occ) {
					target = j
					break
				}
			}
			if target < 0 {
				return ErrCapacityExceeded
			}
			last := len(rooms[i].Children) - 1
			child := rooms[i].Children[last]
			rooms[i].Children = rooms[i].Children[:last]
			rooms[target].Children = append(rooms[target].Children, child)
			moves++
		}
	}
	return nil
}
