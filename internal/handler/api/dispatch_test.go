//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"reminder-engine/internal/handler/api"
	"reminder-engine/internal/handler/middleware"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/tests/common/httptest"
	commandsmock "reminder-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatchHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDispatchCommands
	secret       string
}

func (s *DispatchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDispatchCommands(s.mockCtrl)
	s.secret = config.NewTestConfig().Cron.Secret

	h := api.NewDispatchHandler(s.mockCommands)
	guard := middleware.RequireCronSecret(config.CronConfig{Secret: s.secret})
	s.router.GET("/api/cron/dispatch", guard, h.Run)
	s.router.POST("/api/cron/dispatch", guard, h.Run)
}

func (s *DispatchHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDispatchHandlerSuite(t *testing.T) {
	suite.Run(t, new(DispatchHandlerTestSuite))
}

func (s *DispatchHandlerTestSuite) TestRun() {
	url := "/api/cron/dispatch"

	s.Run("success: returns the cycle counters", func() {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			s.mockCommands.EXPECT().RunCycle(gomock.Any(), 0).
				Return(&commands.CycleResult{Processed: 3, Sent: 1, Failed: 1, Retried: 1}, nil).Times(1)

			rec := httptest.PerformCronRequest(s.T(), s.router, method, url, s.secret)

			var body commands.CycleResult
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(commands.CycleResult{Processed: 3, Sent: 1, Failed: 1, Retried: 1}, body)
		}
	})

	s.Run("success: batch query is forwarded", func() {
		s.mockCommands.EXPECT().RunCycle(gomock.Any(), 25).Return(&commands.CycleResult{}, nil).Times(1)
		rec := httptest.PerformCronRequest(s.T(), s.router, http.MethodPost, url+"?batch=25", s.secret)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: bearer and query secrets are accepted", func() {
		s.mockCommands.EXPECT().RunCycle(gomock.Any(), 0).Return(&commands.CycleResult{}, nil).Times(2)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.secret)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformCronRequest(s.T(), s.router, http.MethodGet, url+"?secret="+s.secret, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 401 Unauthorized on missing or wrong secret", func() {
		for _, secret := range []string{"", "wrong-secret", s.secret + "x"} {
			rec := httptest.PerformCronRequest(s.T(), s.router, http.MethodPost, url, secret)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
		}
	})

	s.Run("error: 400 on invalid batch", func() {
		for _, q := range []string{"?batch=-1", "?batch=ten"} {
			rec := httptest.PerformCronRequest(s.T(), s.router, http.MethodPost, url+q, s.secret)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid batch")
		}
	})

	s.Run("error: 500 when the claim fails", func() {
		s.mockCommands.EXPECT().RunCycle(gomock.Any(), 0).Return(nil, errors.Join(commands.ErrClaimFailed, errors.New("db down"))).Times(1)
		rec := httptest.PerformCronRequest(s.T(), s.router, http.MethodPost, url, s.secret)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "dispatch failed")
	})
}

func TestRequireCronSecret_EmptyConfiguredSecretRejectsAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/cron", middleware.RequireCronSecret(config.CronConfig{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.PerformCronRequest(t, router, http.MethodPost, "/cron", "")
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Unauthorized")
}
