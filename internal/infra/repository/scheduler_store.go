package repository

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"
	"hotel-booking-api/internal/scheduler"

	"github.com/google/uuid"
)

// SchedulerStore backs the periodic status sweeps. Each write is row-local so
// a partially failed sweep leaves no inconsistency the next tick cannot fix.
type SchedulerStore struct {
	dbtx db.DBTX
}

func NewSchedulerStore(dbtx db.DBTX) *SchedulerStore {
	return &SchedulerStore{dbtx: dbtx}
}

func (s *SchedulerStore) ListPendingBookings(ctx context.Context) ([]scheduler.BookingState, error) {
	query := `
		SELECT id, status, check_out, expires_at
		FROM bookings
		WHERE status = 'pending'
	`
	return s.listBookingStates(ctx, query)
}

func (s *SchedulerStore) ListDepartedBookings(ctx context.Context, now time.Time) ([]scheduler.BookingState, error) {
	query := `
		SELECT id, status, check_out, expires_at
		FROM bookings
		WHERE check_out < $1
		  AND status NOT IN ('checked_out', 'canceled')
	`
	return s.listBookingStates(ctx, query, pgconv.TimeToPgtype(now))
}

func (s *SchedulerStore) listBookingStates(ctx context.Context, query string, args ...any) ([]scheduler.BookingState, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for sweep", err)
	}
	defer rows.Close()

	var states []scheduler.BookingState
	for rows.Next() {
		var (
			st     scheduler.BookingState
			status string
		)
		if err := rows.Scan(&st.ID, &status, &st.CheckOut, &st.ExpiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking for sweep", err)
		}
		st.Status = booking.Status(status)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings for sweep", err)
	}
	return states, nil
}

func (s *SchedulerStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id), string(status)); err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	return nil
}

func (s *SchedulerStore) RoomIDsForBooking(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT room_id
		FROM room_bookings
		WHERE booking_id = $1
	`

	rows, err := s.dbtx.Query(ctx, query, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked room ids", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room ids", err)
	}
	return ids, nil
}

func (s *SchedulerStore) ListPromotions(ctx context.Context) ([]scheduler.PromotionState, error) {
	query := `
		SELECT id, start_date, end_date, is_active
		FROM promotions
	`

	rows, err := s.dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotions for sweep", err)
	}
	defer rows.Close()

	var states []scheduler.PromotionState
	for rows.Next() {
		var st scheduler.PromotionState
		if err := rows.Scan(&st.ID, &st.StartDate, &st.EndDate, &st.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan promotion for sweep", err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate promotions for sweep", err)
	}
	return states, nil
}

func (s *SchedulerStore) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE promotions
		SET is_active = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id), active); err != nil {
		return infra.WrapRepoErr("failed to flip promotion", err)
	}
	return nil
}

func (s *SchedulerStore) ListRoomHolds(ctx context.Context) ([]scheduler.RoomHoldState, error) {
	// One row per room. A non-terminal booking, if any exists, decides the
	// room; otherwise the most recently settled one does, which reads as
	// available.
	query := `
		SELECT DISTINCT ON (rb.room_id) rb.room_id, b.status, r.status
		FROM room_bookings rb
		JOIN bookings b ON b.id = rb.booking_id
		JOIN rooms r ON r.id = rb.room_id
		ORDER BY rb.room_id,
		         (b.status IN ('checked_out', 'canceled')),
		         b.updated_at DESC
	`

	rows, err := s.dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room holds for sweep", err)
	}
	defer rows.Close()

	var states []scheduler.RoomHoldState
	for rows.Next() {
		var (
			st                        scheduler.RoomHoldState
			bookingStatus, roomStatus string
		)
		if err := rows.Scan(&st.RoomID, &bookingStatus, &roomStatus); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room hold for sweep", err)
		}
		st.BookingStatus = booking.Status(bookingStatus)
		st.RoomStatus = room.Status(roomStatus)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room holds for sweep", err)
	}
	return states, nil
}

func (s *SchedulerStore) DeleteExpiredIdempotencyKeys(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM idempotency_keys
		WHERE expires_at < $1
	`
	tag, err := s.dbtx.Exec(ctx, query, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}

func (s *SchedulerStore) SetRoomStatus(ctx context.Context, id uuid.UUID, status room.Status) error {
	query := `
		UPDATE rooms
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id), string(status)); err != nil {
		return infra.WrapRepoErr("failed to set room status", err)
	}
	return nil
}
