package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, room_type_id, status, check_in, check_out,
			total_room_price, tax_and_fee, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`

	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.UserID()),
		pgconv.UUIDToPgtype(b.RoomTypeID()),
		string(b.Status()),
		pgconv.TimeToPgtype(b.Period().CheckIn()),
		pgconv.TimeToPgtype(b.Period().CheckOut()),
		b.TotalRoomPrice(),
		b.TaxAndFee(),
		pgconv.TimeToPgtype(b.ExpiresAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	roomQuery := `
		INSERT INTO room_bookings (
			id, booking_id, room_id, num_adults, children_ages,
			base_price, surcharge, discount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, rb := range b.Rooms() {
		ages, err := json.Marshal(rb.ChildrenAges)
		if err != nil {
			return infra.WrapRepoErr("failed to encode children ages", err)
		}
		_, err = tx.Exec(ctx, roomQuery,
			pgconv.UUIDToPgtype(rb.ID),
			pgconv.UUIDToPgtype(b.ID()),
			pgconv.UUIDToPgtype(rb.RoomID),
			rb.NumAdults,
			ages,
			rb.BasePrice,
			rb.Surcharge,
			rb.Discount,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create room booking", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	query := `
		SELECT id, user_id, room_type_id, status, check_in, check_out,
		       total_room_price, tax_and_fee, expires_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var (
		bookingID, userID, roomTypeID uuid.UUID
		status                        string
		checkIn, checkOut             time.Time
		totalRoomPrice, taxAndFee     int64
		expiresAt                     time.Time
		createdAt, updatedAt          time.Time
	)
	err := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&bookingID, &userID, &roomTypeID, &status, &checkIn, &checkOut,
		&totalRoomPrice, &taxAndFee, &expiresAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	period, err := stay.NewPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("persisted stay period is invalid", err)
	}

	rooms, err := r.listRoomBookings(ctx, dbtx, bookingID)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		bookingID, userID, roomTypeID,
		period, booking.Status(status),
		totalRoomPrice, taxAndFee, expiresAt,
		rooms, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) listRoomBookings(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) ([]booking.RoomBooking, error) {
	query := `
		SELECT id, room_id, num_adults, children_ages, base_price, surcharge, discount
		FROM room_bookings
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := dbtx.Query(ctx, query, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room bookings", err)
	}
	defer rows.Close()

	var result []booking.RoomBooking
	for rows.Next() {
		var (
			rb   booking.RoomBooking
			ages []byte
		)
		if err := rows.Scan(&rb.ID, &rb.RoomID, &rb.NumAdults, &ages, &rb.BasePrice, &rb.Surcharge, &rb.Discount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room booking", err)
		}
		if err := json.Unmarshal(ages, &rb.ChildrenAges); err != nil {
			return nil, infra.WrapRepoErr("failed to decode children ages", err)
		}
		result = append(result, rb)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room bookings", err)
	}
	return result, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(id), string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
