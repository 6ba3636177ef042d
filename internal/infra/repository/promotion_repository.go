package repository

import (
	"context"

	"hotel-booking-api/internal/domain/promotion"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"
)

type PromotionRepository struct{}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{}
}

func (r *PromotionRepository) Create(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error {
	query := `
		INSERT INTO promotions (
			id, room_type_id, code, discount_type, discount_value,
			start_date, end_date, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`

	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.RoomTypeID()),
		p.Code(),
		p.Type().String(),
		p.Value(),
		pgconv.TimeToPgtype(p.StartDate()),
		pgconv.TimeToPgtype(p.EndDate()),
		p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create promotion", err)
	}
	return nil
}

func (r *PromotionRepository) Update(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error {
	query := `
		UPDATE promotions
		SET code = $2,
		    discount_type = $3,
		    discount_value = $4,
		    start_date = $5,
		    end_date = $6,
		    is_active = $7,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(p.ID()),
		p.Code(),
		p.Type().String(),
		p.Value(),
		pgconv.TimeToPgtype(p.StartDate()),
		pgconv.TimeToPgtype(p.EndDate()),
		p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update promotion", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}
