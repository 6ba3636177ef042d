// Package scheduler drives the time-based status machinery: expiring unpaid
// pending bookings, flipping promotions in and out of their validity windows,
// checking out departed stays, and reconciling room availability with booking
// state. Every phase is idempotent, so re-running a tick on unchanged data is
// a no-op and multiple instances may safely overlap.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking-api/internal/domain/booking"
	"hotel-booking-api/internal/domain/room"
	"hotel-booking-api/internal/pkg/clock"

	"github.com/google/uuid"
)

// BookingState is the slice of a booking the scheduler decides on.
type BookingState struct {
	ID        uuid.UUID
	Status    booking.Status
	CheckOut  time.Time
	ExpiresAt time.Time
}

// PromotionState is the slice of a promotion the scheduler decides on.
type PromotionState struct {
	ID        uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// RoomHoldState joins a room booking to its parent booking's status and the
// room's current status, for the reconciliation pass.
type RoomHoldState struct {
	RoomID        uuid.UUID
	BookingStatus booking.Status
	RoomStatus    room.Status
}

// Store is the persistence surface the scheduler sweeps over. Reads return
// full scans of the relevant rows; writes are row-local so their relative
// order within a phase does not matter.
type Store interface {
	ListPendingBookings(ctx context.Context) ([]BookingState, error)
	ListDepartedBookings(ctx context.Context, now time.Time) ([]BookingState, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	RoomIDsForBooking(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error)

	ListPromotions(ctx context.Context) ([]PromotionState, error)
	SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error

	ListRoomHolds(ctx context.Context) ([]RoomHoldState, error)
	SetRoomStatus(ctx context.Context, id uuid.UUID, status room.Status) error

	DeleteExpiredIdempotencyKeys(ctx context.Context, now time.Time) (int64, error)
}

type Scheduler struct {
	store    Store
	clock    clock.Clock
	logger   *slog.Logger
	interval time.Duration
}

func New(store Store, clk clock.Clock, logger *slog.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		clock:    clk,
		logger:   logger,
		interval: interval,
	}
}

// Run ticks until the context is canceled. The in-flight tick finishes before
// Run returns.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("booking status scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("booking status scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes one reconciliation cycle. Phases run in a fixed order
// because the room reconciliation pass reads booking statuses the checkout
// sweep has just written. A failing phase only logs; the remaining phases
// still run and the next tick self-corrects.
func (s *Scheduler) RunOnce(ctx context.Context) {
	now := s.clock.Now()

	phases := []struct {
		name string
		run  func(context.Context, time.Time) error
	}{
		{"expire_pending_bookings", s.expirePendingBookings},
		{"activate_promotions", s.activatePromotions},
		{"deactivate_promotions", s.deactivatePromotions},
		{"checkout_departed_bookings", s.checkoutDepartedBookings},
		{"reconcile_room_statuses", s.reconcileRoomStatuses},
		{"purge_expired_idempotency_keys", s.purgeExpiredIdempotencyKeys},
	}

	for _, phase := range phases {
		if err := phase.run(ctx, now); err != nil {
			s.logger.Error("scheduler phase failed", "phase", phase.name, "error", err.Error())
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// expirePendingBookings cancels pending bookings past their hold deadline and
// frees the rooms they held.
func (s *Scheduler) expirePendingBookings(ctx context.Context, now time.Time) error {
	pending, err := s.store.ListPendingBookings(ctx)
	if err != nil {
		return err
	}

	for _, b := range pending {
		if !b.ExpiresAt.Before(now) {
			continue
		}
		if err := s.store.UpdateBookingStatus(ctx, b.ID, booking.StatusCanceled); err != nil {
			s.logger.Error("failed to cancel expired booking", "booking_id", b.ID, "error", err.Error())
			continue
		}
		if err := s.freeRooms(ctx, b.ID); err != nil {
			s.logger.Error("failed to free rooms of expired booking", "booking_id", b.ID, "error", err.Error())
		}
		s.logger.Info("canceled expired pending booking", "booking_id", b.ID, "expired_at", b.ExpiresAt)
	}
	return nil
}

func (s *Scheduler) activatePromotions(ctx context.Context, now time.Time) error {
	return s.flipPromotions(ctx, now, true)
}

func (s *Scheduler) deactivatePromotions(ctx context.Context, now time.Time) error {
	return s.flipPromotions(ctx, now, false)
}

func (s *Scheduler) flipPromotions(ctx context.Context, now time.Time, toActive bool) error {
	promotions, err := s.store.ListPromotions(ctx)
	if err != nil {
		return err
	}

	for _, p := range promotions {
		inWindow := !now.Before(p.StartDate) && !now.After(p.EndDate)
		if toActive {
			if p.IsActive || !inWindow {
				continue
			}
		} else {
			if !p.IsActive || inWindow {
				continue
			}
		}
		if err := s.store.SetPromotionActive(ctx, p.ID, toActive); err != nil {
			s.logger.Error("failed to flip promotion", "promotion_id", p.ID, "active", toActive, "error", err.Error())
			continue
		}
		s.logger.Info("promotion flipped", "promotion_id", p.ID, "active", toActive)
	}
	return nil
}

// checkoutDepartedBookings closes out bookings whose checkout date has passed
// and releases their rooms. Canceled bookings stay canceled.
func (s *Scheduler) checkoutDepartedBookings(ctx context.Context, now time.Time) error {
	departed, err := s.store.ListDepartedBookings(ctx, now)
	if err != nil {
		return err
	}

	for _, b := range departed {
		if b.Status.IsTerminal() {
			continue
		}
		if err := s.store.UpdateBookingStatus(ctx, b.ID, booking.StatusCheckedOut); err != nil {
			s.logger.Error("failed to check out departed booking", "booking_id", b.ID, "error", err.Error())
			continue
		}
		if err := s.freeRooms(ctx, b.ID); err != nil {
			s.logger.Error("failed to free rooms of departed booking", "booking_id", b.ID, "error", err.Error())
		}
	}
	return nil
}

// reconcileRoomStatuses is the authoritative sweep: every room claimed by a
// booking gets its status re-derived from that booking's current state. Only
// rooms whose status actually differs are written, which keeps the sweep a
// no-op on settled data.
func (s *Scheduler) reconcileRoomStatuses(ctx context.Context, _ time.Time) error {
	holds, err := s.store.ListRoomHolds(ctx)
	if err != nil {
		return err
	}

	for _, h := range holds {
		want := room.DeriveStatus(h.BookingStatus)
		if want == h.RoomStatus {
			continue
		}
		if err := s.store.SetRoomStatus(ctx, h.RoomID, want); err != nil {
			s.logger.Error("failed to reconcile room status", "room_id", h.RoomID, "error", err.Error())
		}
	}
	return nil
}

// purgeExpiredIdempotencyKeys drops idempotency records whose retention window
// has passed. Completed responses stay replayable until then.
func (s *Scheduler) purgeExpiredIdempotencyKeys(ctx context.Context, now time.Time) error {
	n, err := s.store.DeleteExpiredIdempotencyKeys(ctx, now)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("purged expired idempotency keys", "count", n)
	}
	return nil
}

func (s *Scheduler) freeRooms(ctx context.Context, bookingID uuid.UUID) error {
	roomIDs, err := s.store.RoomIDsForBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, id := range roomIDs {
		if err := s.store.SetRoomStatus(ctx, id, room.StatusAvailable); err != nil {
			return err
		}
	}
	return nil
}
