//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"hotel-booking-api/internal/handler/api"
	resdto "hotel-booking-api/internal/handler/dto/response"
	"hotel-booking-api/internal/pkg/errs"
	"hotel-booking-api/tests/common/builder"
	"hotel-booking-api/tests/common/httptest"
	"hotel-booking-api/tests/common/testutil"
	commandsmock "hotel-booking-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PromotionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPromotionCommands
	handler      *api.PromotionHandler
}

func (s *PromotionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPromotionCommands(s.mockCtrl)
	s.handler = api.NewPromotionHandler(s.mockCommands)

	s.router.POST("/promotions", s.handler.Create)
	s.router.PUT("/promotions/:id", s.handler.Update)
}

func (s *PromotionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPromotionHandlerSuite(t *testing.T) {
	suite.Run(t, new(PromotionHandlerTestSuite))
}

func (s *PromotionHandlerTestSuite) TestCreate() {
	url := "/promotions"
	reqBody := builder.NewPromotionBuilder().BuildDTO()

	s.Run("success: returns 201 Created with the new ID", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToParams()).
			Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.PromotionCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id, response.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing code", mutate: testutil.Field("code", nil)},
			{name: "unknown discount type", mutate: testutil.Field("discount_type", "bogo")},
			{name: "zero discount value", mutate: testutil.Field("discount_value", 0)},
			{name: "missing start date", mutate: testutil.Field("start_date", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "room type not found",
				commandsError:  errs.ErrRoomTypeNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room type not found",
			},
			{
				name:           "overlapping window",
				commandsError:  errs.ErrPromotionOverlap,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "overlaps",
			},
			{
				name:           "duplicate code",
				commandsError:  errs.ErrDuplicatePromotionCode,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already exists",
			},
			{
				name:           "percentage out of range",
				commandsError:  errs.ErrInvalidDiscount,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid promotion parameters",
			},
			{
				name:           "internal error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToParams()).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *PromotionHandlerTestSuite) TestUpdate() {
	promotionID := uuid.New()
	url := "/promotions/" + promotionID.String()
	reqBody := builder.NewPromotionBuilder().BuildUpdateDTO()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), promotionID, reqBody.ToParams()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on a malformed promotion ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/promotions/nope", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid promotion ID")
	})

	s.Run("error: 404 when the promotion does not exist", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), promotionID, reqBody.ToParams()).
			Return(errs.ErrPromotionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Promotion not found")
	})

	s.Run("error: 409 when the new window overlaps", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), promotionID, reqBody.ToParams()).
			Return(errs.ErrPromotionOverlap).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "overlaps")
	})
}
