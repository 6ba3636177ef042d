package repository

import (
	"context"
	"encoding/json"

	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"
	"hotel-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingReadStore serves the read side directly from the pool, outside any
// unit of work.
type BookingReadStore struct {
	dbtx db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{dbtx: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT b.id, b.user_id, b.room_type_id, rt.name, b.status,
		       b.check_in, b.check_out, b.total_room_price, b.tax_and_fee,
		       b.expires_at, b.created_at, b.updated_at
		FROM bookings b
		JOIN room_types rt ON rt.id = b.room_type_id
		WHERE b.id = $1
	`

	var view queries.BookingView
	err := s.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&view.ID, &view.UserID, &view.RoomTypeID, &view.RoomTypeName, &view.Status,
		&view.CheckIn, &view.CheckOut, &view.TotalRoomPrice, &view.TaxAndFee,
		&view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	rooms, err := s.listRoomViews(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Rooms = rooms
	return &view, nil
}

func (s *BookingReadStore) listRoomViews(ctx context.Context, bookingID uuid.UUID) ([]queries.RoomBookingView, error) {
	query := `
		SELECT rb.id, rb.room_id, r.name, rb.num_adults, rb.children_ages,
		       rb.base_price, rb.surcharge, rb.discount
		FROM room_bookings rb
		JOIN rooms r ON r.id = rb.room_id
		WHERE rb.booking_id = $1
		ORDER BY rb.id
	`

	rows, err := s.dbtx.Query(ctx, query, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked rooms", err)
	}
	defer rows.Close()

	var views []queries.RoomBookingView
	for rows.Next() {
		var (
			v    queries.RoomBookingView
			ages []byte
		)
		err := rows.Scan(&v.ID, &v.RoomID, &v.RoomName, &v.NumAdults, &ages,
			&v.BasePrice, &v.Surcharge, &v.Discount)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked room", err)
		}
		if err := json.Unmarshal(ages, &v.ChildrenAges); err != nil {
			return nil, infra.WrapRepoErr("failed to decode children ages", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked rooms", err)
	}
	return views, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.id, b.room_type_id, rt.name, b.status, b.check_in, b.check_out,
		       b.total_room_price + b.tax_and_fee, b.created_at
		FROM bookings b
		JOIN room_types rt ON rt.id = b.room_type_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2
	`

	rows, err := s.dbtx.Query(ctx, query, pgconv.UUIDToPgtype(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(&item.ID, &item.RoomTypeID, &item.RoomTypeName, &item.Status,
			&item.CheckIn, &item.CheckOut, &item.Total, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return items, nil
}
