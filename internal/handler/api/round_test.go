//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"presale-engine/internal/domain/round"
	"presale-engine/internal/handler/api"
	resdto "presale-engine/internal/handler/dto/response"
	"presale-engine/internal/handler/middleware"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/commands"
	"presale-engine/tests/common/builder"
	commonhttp "presale-engine/tests/common/httptest"
	commandsmock "presale-engine/tests/mock/commands"
	queriesmock "presale-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoundHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRoundCommands
	mockQueries  *queriesmock.MockRoundQueries
	handler      *api.RoundHandler
}

func (s *RoundHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoundCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoundQueries(s.mockCtrl)
	s.handler = api.NewRoundHandler(s.mockCommands, s.mockQueries)

	adminMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", middleware.RoleAdmin)
		c.Next()
	}

	s.router.GET("/rounds/:id", s.handler.GetRound)
	s.router.GET("/rounds/:id/progress", s.handler.GetProgress)
	s.router.POST("/rounds", adminMiddleware, s.handler.CreateRound)
	s.router.POST("/rounds/:id/close", adminMiddleware, s.handler.CloseRound)
}

func (s *RoundHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoundHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoundHandlerTestSuite))
}

func (s *RoundHandlerTestSuite) TestCreateRound() {
	reqBody := builder.NewRoundBuilder().BuildCreateRequestDTO()

	s.Run("created", func() {
		rd := builder.NewRoundBuilder().BuildReconstructed()
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(rd, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/rounds", reqBody, "token")

		var got resdto.CreatedRoundResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, &got)
		s.Equal(rd.ID(), got.ID)
		s.Equal(round.StatusOpen.String(), got.Status)
	})

	s.Run("validation failure", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrDomainValidation)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/rounds", reqBody, "token")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "validation")
	})

	s.Run("malformed body", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/rounds", map[string]any{"goalType": 42}, "token")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("unauthenticated", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/rounds", reqBody, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})
}

func (s *RoundHandlerTestSuite) TestGetRound() {
	b := builder.NewRoundBuilder()

	s.Run("reports display status", func() {
		progress := round.Summary{TotalSlots: 90, ConfirmedSlots: 85, TotalAmountCents: 450000, ConfirmedAmountCents: 425000, Percent: 85}
		view := b.BuildView(progress, round.StatusNearlyFull)
		s.mockQueries.EXPECT().
			GetRound(gomock.Any(), b.ID).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/rounds/"+b.ID.String(), nil, "")

		var got resdto.RoundResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(b.ID, got.ID)
		s.Equal(round.StatusNearlyFull.String(), got.Status)
		s.Equal(85, got.Progress.Percent)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().
			GetRound(gomock.Any(), b.ID).
			Return(nil, errs.ErrRoundNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/rounds/"+b.ID.String(), nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Round not found")
	})

	s.Run("invalid id", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/rounds/not-a-uuid", nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid round ID")
	})
}

func (s *RoundHandlerTestSuite) TestGetProgress() {
	roundID := uuid.New()

	s.Run("returns summary", func() {
		s.mockQueries.EXPECT().
			GetProgress(gomock.Any(), roundID).
			Return(round.Summary{TotalSlots: 12, ConfirmedSlots: 7, TotalAmountCents: 60000, ConfirmedAmountCents: 35000, Percent: 7}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/rounds/"+roundID.String()+"/progress", nil, "")

		var got resdto.ProgressDetail
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(int32(7), got.ConfirmedSlots)
		s.Equal(7, got.Percent)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().
			GetProgress(gomock.Any(), roundID).
			Return(round.Summary{}, errs.ErrRoundNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/rounds/"+roundID.String()+"/progress", nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Round not found")
	})
}

func (s *RoundHandlerTestSuite) TestCloseRound() {
	roundID := uuid.New()
	url := "/rounds/" + roundID.String() + "/close"

	s.Run("closed with refunds", func() {
		s.mockCommands.EXPECT().
			Close(gomock.Any(), roundID).
			Return(&commands.CloseResult{
				Status:            round.StatusNotMet,
				RefundedCount:     3,
				ProgressAtClosure: round.Summary{TotalSlots: 40, ConfirmedSlots: 40, TotalAmountCents: 200000, ConfirmedAmountCents: 200000, Percent: 40},
			}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var got resdto.CloseRoundResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(round.StatusNotMet.String(), got.Status)
		s.Equal(3, got.RefundedCount)
	})

	s.Run("not found", func() {
		s.mockCommands.EXPECT().
			Close(gomock.Any(), roundID).
			Return(nil, errs.ErrRoundNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Round not found")
	})

	s.Run("unauthenticated", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})
}
