//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-booking-api/internal/handler/dto/request"

	"github.com/google/uuid"
)

type PromotionBuilder struct {
	RoomTypeID    uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue float64
	StartDate     time.Time
	EndDate       time.Time
}

func NewPromotionBuilder() *PromotionBuilder {
	return &PromotionBuilder{
		RoomTypeID:    uuid.New(),
		Code:          "SUMMER15",
		DiscountType:  "percentage",
		DiscountValue: 15,
		StartDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (p *PromotionBuilder) BuildDTO() reqdto.CreatePromotionRequest {
	return reqdto.CreatePromotionRequest{
		RoomTypeID:    p.RoomTypeID,
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
}

func (p *PromotionBuilder) BuildUpdateDTO() reqdto.UpdatePromotionRequest {
	return reqdto.UpdatePromotionRequest{
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
}
