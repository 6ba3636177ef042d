package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/domain/stay"
	"hotel-booking-api/internal/domain/user"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/internal/usecase/queries"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const createBookingEndpoint = "POST /bookings"

type CreateBookingParams struct {
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	NumRooms     int       `json:"num_rooms"`
	NumAdults    int       `json:"num_adults"`
	NumChildren  int       `json:"num_children"`
	ChildrenAges []int     `json:"children_ages"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

// QuoteParams carries a fully caller-supplied pricing policy, mirroring the
// stateless cost endpoint: nothing is read from persistence.
type QuoteParams struct {
	NumRooms         int
	NumAdults        int
	NumChildren      int
	ChildrenAges     []int
	BasePrice        int64
	RoomDiscount     int64
	StandardOccupant int
	MaxChildren      int
	MaxOccupant      int
	MaxExtraBed      int
	SurchargeRates   map[string]float64
	TaxAndFeeRate    float64
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID) error
	Quote(params QuoteParams) (*stay.Quote, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	dbtx           db.DBTX
	bookings       shared.BookingRepository
	rooms          shared.RoomRepository
	roomTypes      shared.RoomTypeReadStore
	roomStates     shared.RoomReadStore
	promotions     shared.PromotionReadStore
	idempotency    shared.IdempotencyRepository
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	holdTTL        time.Duration
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	dbtx db.DBTX,
	bookings shared.BookingRepository,
	rooms shared.RoomRepository,
	roomTypes shared.RoomTypeReadStore,
	roomStates shared.RoomReadStore,
	promotions shared.PromotionReadStore,
	idempotency shared.IdempotencyRepository,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	holdTTL time.Duration,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		dbtx:           dbtx,
		bookings:       bookings,
		rooms:          rooms,
		roomTypes:      roomTypes,
		roomStates:     roomStates,
		promotions:     promotions,
		idempotency:    idempotency,
		bookingQueries: bookingQueries,
		clock:          clk,
		holdTTL:        holdTTL,
	}
}

// Quote allocates and prices a stay against a caller-supplied policy.
func (c *bookingCommandsImpl) Quote(params QuoteParams) (*stay.Quote, error) {
	surcharges, err := stay.ParseSurchargeTable(params.SurchargeRates)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	req := stay.Request{
		NumRooms:     params.NumRooms,
		NumAdults:    params.NumAdults,
		NumChildren:  params.NumChildren,
		ChildrenAges: params.ChildrenAges,
	}
	policy := stay.Policy{
		BasePrice:    params.BasePrice,
		RoomDiscount: params.RoomDiscount,
		Occupancy: stay.Occupancy{
			StandardOccupant: params.StandardOccupant,
			MaxChildren:      params.MaxChildren,
			MaxOccupant:      params.MaxOccupant,
			MaxExtraBed:      params.MaxExtraBed,
		},
		Surcharges:    surcharges,
		TaxAndFeeRate: params.TaxAndFeeRate,
	}

	quote, err := stay.QuoteRequest(req, policy)
	if err != nil {
		return nil, markAllocationErr(err)
	}
	return &quote, nil
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(params)
	keyExpiry := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash, keyExpiry)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	period, err := stay.NewPeriod(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStayPeriod)
	}

	var bookingID uuid.UUID
	txErr := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx db.DBTX) error {
		id, err := c.createPendingBooking(ctx, tx, params, userID, period)
		if err != nil {
			return err
		}
		bookingID = id
		return c.idempotency.MarkCompleted(ctx, tx, idempotencyKey, userID, id)
	})
	if txErr != nil {
		if infra.IsKind(txErr, infra.KindConflict) || infra.IsKind(txErr, infra.KindDuplicateKey) {
			return nil, errs.Mark(txErr, errs.ErrBookingConflict)
		}
		return nil, txErr
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

// createPendingBooking runs entirely inside the serializable transaction:
// availability is re-checked against the same snapshot the insert commits
// into, so two concurrent requests for the last rooms cannot both pass.
func (c *bookingCommandsImpl) createPendingBooking(
	ctx context.Context,
	tx db.DBTX,
	params CreateBookingParams,
	userID uuid.UUID,
	period stay.Period,
) (uuid.UUID, error) {
	roomType, err := c.roomTypes.FindByID(ctx, tx, params.RoomTypeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrRoomTypeNotFound)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	discount, err := queries.ResolveDiscount(ctx, c.promotions, tx, roomType.ID, roomType.BasePrice, now)
	if err != nil {
		return uuid.Nil, err
	}

	rooms, err := c.roomStates.ListByRoomType(ctx, tx, roomType.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	holds, err := c.roomStates.ListHolds(ctx, tx, roomType.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	free := queries.FreeRooms(rooms, holds, period)
	if len(free) < params.NumRooms {
		return uuid.Nil, errs.ErrNoRoomsAvailable
	}

	req := stay.Request{
		NumRooms:     params.NumRooms,
		NumAdults:    params.NumAdults,
		NumChildren:  params.NumChildren,
		ChildrenAges: params.ChildrenAges,
		Period:       period,
	}
	quote, err := stay.QuoteRequest(req, roomType.PricingPolicy(discount))
	if err != nil {
		return uuid.Nil, markAllocationErr(err)
	}

	roomIDs := make([]uuid.UUID, params.NumRooms)
	for i := range roomIDs {
		roomIDs[i] = free[i].ID
	}

	b, err := booking.NewPending(userID, roomType.ID, period, quote, roomIDs, now.Add(c.holdTTL))
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.bookings.Create(ctx, tx, b); err != nil {
		return uuid.Nil, err
	}

	// Mark the held rooms in the same transaction; the scheduler sweep is
	// only the reconciliation safety net.
	for _, roomID := range roomIDs {
		if err := c.rooms.UpdateStatus(ctx, tx, roomID, room.StatusUnavailable); err != nil {
			return uuid.Nil, err
		}
	}

	return b.ID(), nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := c.findBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID() != actorID && actorRole == user.RoleCustomer {
			return errs.ErrNotBookingOwner
		}
		if err := b.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusTransition)
		}
		return c.releaseBooking(ctx, tx, b)
	})
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := c.findBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := b.Confirm(); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusTransition)
		}
		return c.bookings.UpdateStatus(ctx, tx, b.ID(), b.Status())
	})
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, err := c.bookings.FindByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

// releaseBooking persists the terminal status and frees the booking's rooms
// in the same transaction.
func (c *bookingCommandsImpl) releaseBooking(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	if err := c.bookings.UpdateStatus(ctx, tx, b.ID(), b.Status()); err != nil {
		return err
	}
	for _, rb := range b.Rooms() {
		if err := c.rooms.UpdateStatus(ctx, tx, rb.RoomID, room.StatusAvailable); err != nil {
			return err
		}
	}
	return nil
}

func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	inserted, err := c.idempotency.TryInsert(ctx, key, userID, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.idempotency.Get(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrIdempotencyCheckFailed
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func markAllocationErr(err error) error {
	switch {
	case errors.Is(err, stay.ErrCapacityExceeded):
		return errs.Mark(err, errs.ErrCapacityExceeded)
	case errors.Is(err, stay.ErrNotEnoughAdults):
		return errs.Mark(err, errs.ErrNotEnoughAdults)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func calculateRequestHash(params CreateBookingParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
