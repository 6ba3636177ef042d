package response

import (
	"hotel-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomTypeAvailabilityResponse struct {
	RoomTypeID     uuid.UUID   `json:"room_type_id"`
	Name           string      `json:"name"`
	BasePrice      int64       `json:"base_price"`
	Discount       int64       `json:"discount"`
	EffectivePrice int64       `json:"effective_price"`
	AvailableRooms int         `json:"available_rooms"`
	TotalRooms     int         `json:"total_rooms"`
	RoomIDs        []uuid.UUID `json:"room_ids"`
}

func FromAvailabilityViews(views []*queries.RoomTypeAvailabilityView) []RoomTypeAvailabilityResponse {
	result := make([]RoomTypeAvailabilityResponse, len(views))
	for i, v := range views {
		result[i] = RoomTypeAvailabilityResponse{
			RoomTypeID:     v.RoomTypeID,
			Name:           v.Name,
			BasePrice:      v.BasePrice,
			Discount:       v.Discount,
			EffectivePrice: v.EffectivePrice,
			AvailableRooms: v.AvailableRooms,
			TotalRooms:     v.TotalRooms,
			RoomIDs:        v.RoomIDs,
		}
	}
	return result
}
