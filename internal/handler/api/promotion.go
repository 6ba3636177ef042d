package api

import (
	"errors"
	"net/http"

	reqdto "hotel-booking-api/internal/handler/dto/request"
	resdto "hotel-booking-api/internal/handler/dto/response"
	"hotel-booking-api/internal/handler/httperr"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PromotionHandler struct {
	promotionCommands commands.PromotionCommands
}

func NewPromotionHandler(promotionCommands commands.PromotionCommands) *PromotionHandler {
	return &PromotionHandler{
		promotionCommands: promotionCommands,
	}
}

// @Summary Create promotion
// @Description Create a time-windowed discount for a room type
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePromotionRequest true "Promotion"
// @Success 201 {object} resdto.PromotionCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req reqdto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.promotionCommands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		h.abortPromotionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.PromotionCreatedResponse{ID: id})
}

// @Summary Update promotion
// @Description Replace a promotion's code, discount and window
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Param request body reqdto.UpdatePromotionRequest true "Promotion"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid promotion ID", nil)
		return
	}

	var req reqdto.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.promotionCommands.Update(c.Request.Context(), id, req.ToParams()); err != nil {
		h.abortPromotionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PromotionHandler) abortPromotionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRoomTypeNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room type not found", nil)
	case errors.Is(err, errs.ErrPromotionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Promotion not found", nil)
	case errors.Is(err, errs.ErrPromotionOverlap):
		httperr.AbortWithError(c, http.StatusConflict, err, "Promotion window overlaps an existing promotion", nil)
	case errors.Is(err, errs.ErrDuplicatePromotionCode):
		httperr.AbortWithError(c, http.StatusConflict, err, "Promotion code already exists for this room type", nil)
	case errors.Is(err, errs.ErrInvalidDiscount):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid promotion parameters", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
