package repository

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomReadStore struct{}

func NewRoomReadStore() *RoomReadStore {
	return &RoomReadStore{}
}

func (s *RoomReadStore) ListByRoomType(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID) ([]shared.RoomState, error) {
	query := `
		SELECT id, room_type_id, name, status
		FROM rooms
		WHERE room_type_id = $1
		ORDER BY id
	`

	rows, err := dbtx.Query(ctx, query, pgconv.UUIDToPgtype(roomTypeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var states []shared.RoomState
	for rows.Next() {
		var (
			st     shared.RoomState
			status string
		)
		if err := rows.Scan(&st.ID, &st.RoomTypeID, &st.Name, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		st.Status = room.Status(status)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return states, nil
}

func (s *RoomReadStore) ListHolds(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID) ([]shared.RoomHold, error) {
	query := `
		SELECT rb.room_id, b.check_in, b.check_out
		FROM room_bookings rb
		JOIN bookings b ON b.id = rb.booking_id
		JOIN rooms r ON r.id = rb.room_id
		WHERE r.room_type_id = $1
		  AND b.status NOT IN ('checked_out', 'canceled')
	`

	rows, err := dbtx.Query(ctx, query, pgconv.UUIDToPgtype(roomTypeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room holds", err)
	}
	defer rows.Close()

	var holds []shared.RoomHold
	for rows.Next() {
		var (
			roomID            uuid.UUID
			checkIn, checkOut time.Time
		)
		if err := rows.Scan(&roomID, &checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room hold", err)
		}
		period, err := stay.NewPeriod(checkIn, checkOut)
		if err != nil {
			return nil, infra.WrapRepoErr("persisted stay period is invalid", err)
		}
		holds = append(holds, shared.RoomHold{RoomID: roomID, Period: period})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room holds", err)
	}
	return holds, nil
}
