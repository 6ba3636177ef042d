package repository

import (
	"context"
	"encoding/json"

	"hotel-booking-api/internal/domain/hotel"
	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RoomTypeReadStore struct{}

func NewRoomTypeReadStore() *RoomTypeReadStore {
	return &RoomTypeReadStore{}
}

const roomTypeColumns = `
	rt.id, rt.hotel_id, rt.name, rt.base_price,
	rt.standard_occupant, rt.max_children, rt.max_occupant, rt.max_extra_bed,
	rt.surcharge_rates, h.tax_and_fee_rate
`

func (s *RoomTypeReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*hotel.RoomType, error) {
	query := `
		SELECT ` + roomTypeColumns + `
		FROM room_types rt
		JOIN hotels h ON h.id = rt.hotel_id
		WHERE rt.id = $1
	`

	row := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id))
	rt, err := scanRoomType(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room type", err)
	}
	return rt, nil
}

func (s *RoomTypeReadStore) ListByHotel(ctx context.Context, dbtx db.DBTX, hotelID uuid.UUID) ([]hotel.RoomType, error) {
	query := `
		SELECT ` + roomTypeColumns + `
		FROM room_types rt
		JOIN hotels h ON h.id = rt.hotel_id
		WHERE rt.hotel_id = $1
		ORDER BY rt.name
	`

	rows, err := dbtx.Query(ctx, query, pgconv.UUIDToPgtype(hotelID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room types", err)
	}
	defer rows.Close()

	var roomTypes []hotel.RoomType
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type", err)
		}
		roomTypes = append(roomTypes, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room types", err)
	}
	return roomTypes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomType(row rowScanner) (*hotel.RoomType, error) {
	var (
		rt            hotel.RoomType
		surchargeJSON []byte
	)
	err := row.Scan(
		&rt.ID, &rt.HotelID, &rt.Name, &rt.BasePrice,
		&rt.Occupancy.StandardOccupant, &rt.Occupancy.MaxChildren,
		&rt.Occupancy.MaxOccupant, &rt.Occupancy.MaxExtraBed,
		&surchargeJSON, &rt.TaxAndFeeRate,
	)
	if err != nil {
		return nil, err
	}

	var rates map[string]float64
	if err := json.Unmarshal(surchargeJSON, &rates); err != nil {
		return nil, err
	}
	rt.Surcharges, err = stay.ParseSurchargeTable(rates)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
