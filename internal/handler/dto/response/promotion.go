package response

import (
	"github.com/google/uuid"
)

type PromotionCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
