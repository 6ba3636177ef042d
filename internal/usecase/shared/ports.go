package shared

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/hotel"
	"hotel-booking-api/internal/domain/promotion"
	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/infra/db"

	"github.com/google/uuid"
)

// RoomState is a physical room as the availability filter sees it.
type RoomState struct {
	ID         uuid.UUID
	RoomTypeID uuid.UUID
	Name       string
	Status     room.Status
}

// RoomHold is a non-terminal booking's claim on one room for a stay window.
type RoomHold struct {
	RoomID uuid.UUID
	Period stay.Period
}

type RoomTypeReadStore interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*hotel.RoomType, error)
	ListByHotel(ctx context.Context, dbtx db.DBTX, hotelID uuid.UUID) ([]hotel.RoomType, error)
}

type RoomReadStore interface {
	// ListByRoomType returns the physical rooms of a room type ordered by ID.
	ListByRoomType(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID) ([]RoomState, error)
	// ListHolds returns every non-terminal booking claim on the room type's
	// rooms.
	ListHolds(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID) ([]RoomHold, error)
}

type PromotionReadStore interface {
	// FindActiveAt returns the promotion whose window contains the instant,
	// or nil when the room type has none.
	FindActiveAt(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, at time.Time) (*promotion.Promotion, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*promotion.Promotion, error)
	// HasOverlapping reports whether another promotion on the room type
	// intersects the window. excludeID skips the promotion being updated.
	HasOverlapping(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	// CodeExists reports whether the code is taken within the room type.
	CodeExists(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
}

type RoomRepository interface {
	UpdateStatus(ctx context.Context, tx db.DBTX, roomID uuid.UUID, status room.Status) error
}

type PromotionRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error
	Update(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type IdempotencyRepository interface {
	// TryInsert records the key as processing and reports whether the row was
	// actually inserted. An existing key is left untouched so the subsequent
	// Get decides between replay and conflict.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error
}

// AuthUser is the credential row the login flow reads.
type AuthUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*AuthUser, error)
}
