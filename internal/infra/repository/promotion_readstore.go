package repository

import (
	"context"
	"time"

	"hotel-booking-api/internal/domain/promotion"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PromotionReadStore struct{}

func NewPromotionReadStore() *PromotionReadStore {
	return &PromotionReadStore{}
}

const promotionColumns = `
	id, room_type_id, code, discount_type, discount_value,
	start_date, end_date, is_active, created_at, updated_at
`

func (s *PromotionReadStore) FindActiveAt(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, at time.Time) (*promotion.Promotion, error) {
	// Non-overlap of windows per room type guarantees at most one row.
	// is_active is the materialized state the scheduler maintains; a window
	// that contains the instant but has not been activated yet does not
	// discount.
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE room_type_id = $1
		  AND is_active
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1
	`

	row := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(roomTypeID), pgconv.TimeToPgtype(at))
	p, err := scanPromotion(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active promotion", err)
	}
	return p, nil
}

func (s *PromotionReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*promotion.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE id = $1
	`

	row := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id))
	p, err := scanPromotion(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promotion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promotion", err)
	}
	return p, nil
}

func (s *PromotionReadStore) HasOverlapping(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM promotions
			WHERE room_type_id = $1
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exists bool
	err := dbtx.QueryRow(ctx, query,
		pgconv.UUIDToPgtype(roomTypeID),
		pgconv.TimeToPgtype(start),
		pgconv.TimeToPgtype(end),
		pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check promotion overlap", err)
	}
	return exists, nil
}

func (s *PromotionReadStore) CodeExists(ctx context.Context, dbtx db.DBTX, roomTypeID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM promotions
			WHERE room_type_id = $1
			  AND code = $2
			  AND ($3::uuid IS NULL OR id <> $3)
		)
	`

	var exists bool
	err := dbtx.QueryRow(ctx, query,
		pgconv.UUIDToPgtype(roomTypeID),
		code,
		pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check promotion code", err)
	}
	return exists, nil
}

func scanPromotion(row rowScanner) (*promotion.Promotion, error) {
	var (
		id, roomTypeID       uuid.UUID
		code, discountType   string
		discountValue        float64
		startDate, endDate   time.Time
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &roomTypeID, &code, &discountType, &discountValue,
		&startDate, &endDate, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return promotion.Reconstruct(
		id, roomTypeID, code,
		promotion.DiscountType(discountType), discountValue,
		startDate, endDate, isActive, createdAt, updatedAt,
	), nil
}
