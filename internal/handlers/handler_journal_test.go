package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/core/services"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/finledger/bookkeeping_backend/internal/handlers"
	"github.com/finledger/bookkeeping_backend/internal/middleware"
	"github.com/finledger/bookkeeping_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournalsByPeriod(ctx context.Context, periodID int64, params dto.ListJournalsParams) ([]domain.Journal, error) {
	args := m.Called(ctx, periodID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}
func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) PostJournal(ctx context.Context, journalID string, actorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

type stubPeriodService struct{}

func (stubPeriodService) GetPeriodByID(context.Context, int64) (*domain.Period, error) {
	return nil, services.ErrPeriodLocked
}
func (stubPeriodService) ListPeriods(context.Context, dto.ListPeriodsParams) ([]domain.Period, error) {
	return nil, nil
}
func (stubPeriodService) CreatePeriod(context.Context, dto.CreatePeriodRequest, string) (*domain.Period, error) {
	return nil, services.ErrPeriodLocked
}
func (stubPeriodService) ClosePeriod(context.Context, int64, string) (*domain.Period, error) {
	return nil, services.ErrPeriodLocked
}

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	actorID            string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockJournalService = new(MockJournalService)
	suite.actorID = uuid.NewString()

	cfg := &config.Config{
		IsProduction:        true,
		SupportedCurrencies: []string{"USD", "PKR"},
		ReportingCurrency:   "PKR",
	}
	container := &portssvc.ServiceContainer{
		Account: stubAccountService{},
		Period:  stubPeriodService{},
		FxRate:  stubFxRateService{},
		Journal: suite.mockJournalService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *JournalHandlerTestSuite) serve(method, url string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) createRequestBody() []byte {
	body, _ := json.Marshal(dto.CreateJournalRequest{
		Reference:   "JV-2024-001",
		JournalDate: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    42,
		Lines: []dto.CreateJournalLineRequest{
			{
				AccountID:    uuid.NewString(),
				Amount:       decimal.NewFromInt(100),
				LineType:     domain.Debit,
				CurrencyCode: "USD",
			},
			{
				AccountID:    uuid.NewString(),
				Amount:       decimal.NewFromInt(28000),
				LineType:     domain.Credit,
				CurrencyCode: "PKR",
			},
		},
	})
	return body
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournal_Success() {
	journalID := uuid.NewString()
	suite.mockJournalService.On("CreateJournal", mock.Anything, mock.AnythingOfType("dto.CreateJournalRequest"), suite.actorID).
		Return(&domain.Journal{
			JournalID:    journalID,
			Reference:    "JV-2024-001",
			PeriodID:     42,
			CurrencyCode: "PKR",
			Status:       domain.Draft,
		}, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals", suite.createRequestBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(journalID, resp.JournalID)
	suite.Equal(domain.Draft, resp.Status)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_LockedPeriodReturnsConflict() {
	suite.mockJournalService.On("CreateJournal", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, fmt.Errorf("%w: period 2024-7", services.ErrPeriodLocked)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals", suite.createRequestBody())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_SingleLineRejectedByBinding() {
	body, _ := json.Marshal(dto.CreateJournalRequest{
		Reference:   "JV-2024-002",
		JournalDate: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    42,
		Lines: []dto.CreateJournalLineRequest{
			{
				AccountID:    uuid.NewString(),
				Amount:       decimal.NewFromInt(100),
				LineType:     domain.Debit,
				CurrencyCode: "USD",
			},
		},
	})

	w := suite.serve(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_UnsupportedCurrencyRejectedByBinding() {
	body, _ := json.Marshal(dto.CreateJournalRequest{
		Reference:   "JV-2024-003",
		JournalDate: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    42,
		Lines: []dto.CreateJournalLineRequest{
			{
				AccountID:    uuid.NewString(),
				Amount:       decimal.NewFromInt(100),
				LineType:     domain.Debit,
				CurrencyCode: "EUR",
			},
			{
				AccountID:    uuid.NewString(),
				Amount:       decimal.NewFromInt(100),
				LineType:     domain.Credit,
				CurrencyCode: "PKR",
			},
		},
	})

	w := suite.serve(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostJournal_Success() {
	journalID := uuid.NewString()
	postedAt := time.Now().UTC()
	suite.mockJournalService.On("PostJournal", mock.Anything, journalID, suite.actorID).
		Return(&domain.Journal{
			JournalID:    journalID,
			PeriodID:     42,
			CurrencyCode: "PKR",
			Status:       domain.Posted,
			TotalDebit:   decimal.NewFromInt(28000),
			TotalCredit:  decimal.NewFromInt(28000),
			PostedBy:     &suite.actorID,
			PostedAt:     &postedAt,
		}, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/"+journalID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(28000)))
	suite.Require().NotNil(resp.PostedBy)
	suite.Equal(suite.actorID, *resp.PostedBy)
}

func (suite *JournalHandlerTestSuite) TestPostJournal_NotFound() {
	journalID := uuid.NewString()
	suite.mockJournalService.On("PostJournal", mock.Anything, journalID, suite.actorID).
		Return(nil, fmt.Errorf("%w: %s", services.ErrJournalNotFound, journalID)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/"+journalID+"/post", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostJournal_AlreadyPostedReturnsConflict() {
	journalID := uuid.NewString()
	suite.mockJournalService.On("PostJournal", mock.Anything, journalID, suite.actorID).
		Return(nil, fmt.Errorf("%w: %s", services.ErrAlreadyPosted, journalID)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/"+journalID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostJournal_UnbalancedReturnsUnprocessable() {
	journalID := uuid.NewString()
	suite.mockJournalService.On("PostJournal", mock.Anything, journalID, suite.actorID).
		Return(nil, fmt.Errorf("%w: debit 28000 vs credit 27000", services.ErrJournalUnbalanced)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/"+journalID+"/post", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "28000")
}

func (suite *JournalHandlerTestSuite) TestPostJournal_MissingRateReturnsBadRequest() {
	journalID := uuid.NewString()
	suite.mockJournalService.On("PostJournal", mock.Anything, journalID, suite.actorID).
		Return(nil, fmt.Errorf("%w: USD->PKR on or before 2024-07-15", services.ErrRateNotFound)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/"+journalID+"/post", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUpdateJournal_NotDraftReturnsConflict() {
	journalID := uuid.NewString()
	newDescription := "amended"
	suite.mockJournalService.On("UpdateJournal", mock.Anything, journalID, mock.Anything, suite.actorID).
		Return(nil, fmt.Errorf("%w: journal %s is POSTED", services.ErrJournalNotDraft, journalID)).Once()

	body, _ := json.Marshal(dto.UpdateJournalRequest{Description: &newDescription})
	w := suite.serve(http.MethodPut, "/api/v1/journals/"+journalID, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListJournalsByPeriod_Success() {
	suite.mockJournalService.On("ListJournalsByPeriod", mock.Anything, int64(42), mock.AnythingOfType("dto.ListJournalsParams")).
		Return([]domain.Journal{
			{JournalID: uuid.NewString(), PeriodID: 42, Status: domain.Posted},
			{JournalID: uuid.NewString(), PeriodID: 42, Status: domain.Draft},
		}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/periods/42/journals?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
