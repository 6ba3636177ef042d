package request

import (
	"time"

	"hotel-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePromotionRequest struct {
	RoomTypeID    uuid.UUID `json:"room_type_id" binding:"required"`
	Code          string    `json:"code" binding:"required"`
	DiscountType  string    `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
}

func (r CreatePromotionRequest) ToParams() commands.CreatePromotionParams {
	return commands.CreatePromotionParams{
		RoomTypeID:    r.RoomTypeID,
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}

type UpdatePromotionRequest struct {
	Code          string    `json:"code" binding:"required"`
	DiscountType  string    `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
}

func (r UpdatePromotionRequest) ToParams() commands.UpdatePromotionParams {
	return commands.UpdatePromotionParams{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}
