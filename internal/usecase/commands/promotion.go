package commands

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/promotion"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePromotionParams struct {
	RoomTypeID    uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue float64
	StartDate     time.Time
	EndDate       time.Time
}

type UpdatePromotionParams struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	StartDate     time.Time
	EndDate       time.Time
}

type PromotionCommands interface {
	Create(ctx context.Context, params CreatePromotionParams) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, params UpdatePromotionParams) error
}

type promotionCommandsImpl struct {
	uow        shared.UnitOfWork
	dbtx       db.DBTX
	roomTypes  shared.RoomTypeReadStore
	promotions shared.PromotionReadStore
	repo       shared.PromotionRepository
}

func NewPromotionCommands(
	uow shared.UnitOfWork,
	dbtx db.DBTX,
	roomTypes shared.RoomTypeReadStore,
	promotions shared.PromotionReadStore,
	repo shared.PromotionRepository,
) PromotionCommands {
	return &promotionCommandsImpl{
		uow:        uow,
		dbtx:       dbtx,
		roomTypes:  roomTypes,
		promotions: promotions,
		repo:       repo,
	}
}

func (c *promotionCommandsImpl) Create(ctx context.Context, params CreatePromotionParams) (uuid.UUID, error) {
	promo, err := promotion.New(
		params.RoomTypeID,
		params.Code,
		promotion.DiscountType(params.DiscountType),
		params.DiscountValue,
		params.StartDate,
		params.EndDate,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidDiscount)
	}

	txErr := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := c.roomTypes.FindByID(ctx, tx, params.RoomTypeID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRoomTypeNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.checkConflicts(ctx, tx, promo, nil); err != nil {
			return err
		}

		if err := c.repo.Create(ctx, tx, promo); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicatePromotionCode)
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return uuid.Nil, txErr
	}

	return promo.ID(), nil
}

func (c *promotionCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdatePromotionParams) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		existing, err := c.promotions.FindByID(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPromotionNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		updated, err := promotion.New(
			existing.RoomTypeID(),
			params.Code,
			promotion.DiscountType(params.DiscountType),
			params.DiscountValue,
			params.StartDate,
			params.EndDate,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidDiscount)
		}
		// Keep the persisted identity and activation state; the scheduler
		// owns is_active.
		updated = promotion.Reconstruct(
			existing.ID(),
			existing.RoomTypeID(),
			updated.Code(),
			updated.Type(),
			updated.Value(),
			updated.StartDate(),
			updated.EndDate(),
			existing.IsActive(),
			existing.CreatedAt(),
			existing.UpdatedAt(),
		)

		excludeID := existing.ID()
		if err := c.checkConflicts(ctx, tx, updated, &excludeID); err != nil {
			return err
		}

		return c.repo.Update(ctx, tx, updated)
	})
}

// checkConflicts rejects overlapping validity windows and duplicate codes
// within a room type. Existing state is never mutated to resolve a conflict.
func (c *promotionCommandsImpl) checkConflicts(ctx context.Context, tx db.DBTX, promo *promotion.Promotion, excludeID *uuid.UUID) error {
	overlapping, err := c.promotions.HasOverlapping(ctx, tx, promo.RoomTypeID(), promo.StartDate(), promo.EndDate(), excludeID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if overlapping {
		return errs.ErrPromotionOverlap
	}

	taken, err := c.promotions.CodeExists(ctx, tx, promo.RoomTypeID(), promo.Code(), excludeID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if taken {
		return errs.ErrDuplicatePromotionCode
	}

	return nil
}
