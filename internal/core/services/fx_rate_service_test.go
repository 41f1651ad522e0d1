package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/core/services"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FxRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFxRateRepository
	service  portssvc.FxRateSvcFacade
}

func (suite *FxRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFxRateRepository)
	suite.service = services.NewFxRateService(suite.mockRepo, domain.NewCurrencySet([]string{"USD", "PKR"}))
}

func (suite *FxRateServiceTestSuite) TestCreateFxRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	effective := time.Date(2024, 7, 15, 13, 45, 0, 0, time.UTC)
	req := dto.CreateFxRateRequest{
		FromCurrencyCode: "usd",
		ToCurrencyCode:   "pkr",
		Rate:             decimal.RequireFromString("280.25"),
		DateEffective:    effective,
	}

	suite.mockRepo.On("SaveFxRate", ctx, mock.AnythingOfType("domain.FxRate")).Return(nil).Once()

	createdRate, err := suite.service.CreateFxRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdRate)
	suite.NotEmpty(createdRate.FxRateID)
	suite.Equal("USD", createdRate.FromCurrencyCode)
	suite.Equal("PKR", createdRate.ToCurrencyCode)
	suite.True(createdRate.Rate.Equal(req.Rate))
	// Effective dates carry day precision only
	suite.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), createdRate.DateEffective)
	suite.False(createdRate.IsLocked)
	suite.Equal(creatorUserID, createdRate.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestCreateFxRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateFxRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "PKR",
		Rate:             decimal.Zero,
		DateEffective:    time.Now(),
	}

	createdRate, err := suite.service.CreateFxRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidRate)
	suite.Nil(createdRate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFxRate", mock.Anything, mock.Anything)
}

func (suite *FxRateServiceTestSuite) TestCreateFxRate_SamePair() {
	ctx := context.Background()
	req := dto.CreateFxRateRequest{
		FromCurrencyCode: "usd",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
		DateEffective:    time.Now(),
	}

	_, err := suite.service.CreateFxRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCurrencyPair)
}

func (suite *FxRateServiceTestSuite) TestCreateFxRate_UnsupportedCurrency() {
	ctx := context.Background()
	req := dto.CreateFxRateRequest{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "PKR",
		Rate:             decimal.NewFromInt(300),
		DateEffective:    time.Now(),
	}

	_, err := suite.service.CreateFxRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnsupportedCurrency)
}

func (suite *FxRateServiceTestSuite) TestResolveRate_SameCurrencyIsIdentity() {
	ctx := context.Background()

	rate, err := suite.service.ResolveRate(ctx, "PKR", "pkr", time.Now())

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLatestFxRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FxRateServiceTestSuite) TestResolveRate_PicksLatestOnOrBeforeDate() {
	ctx := context.Background()
	asOf := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)
	// The July 10 rate supersedes the July 1 one for a July 20 resolution;
	// the repository encapsulates that ordering.
	applicable := &domain.FxRate{
		FxRateID:         uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "PKR",
		Rate:             decimal.RequireFromString("285"),
		DateEffective:    time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindLatestFxRate", ctx, "USD", "PKR", asOf).Return(applicable, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "usd", "pkr", asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("285")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestResolveRate_NoRateBeforeDate() {
	ctx := context.Background()
	asOf := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindLatestFxRate", ctx, "USD", "PKR", asOf).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRate(ctx, "USD", "PKR", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateNotFound)
}

func (suite *FxRateServiceTestSuite) TestLockFxRate_Success() {
	ctx := context.Background()
	requestingUserID := uuid.NewString()
	fxRateID := uuid.NewString()
	existing := &domain.FxRate{
		FxRateID:         fxRateID,
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "PKR",
		Rate:             decimal.RequireFromString("280"),
		IsLocked:         false,
	}

	suite.mockRepo.On("FindFxRateByID", ctx, fxRateID).Return(existing, nil).Once()
	suite.mockRepo.On("LockFxRate", ctx, fxRateID, requestingUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	lockedRate, err := suite.service.LockFxRate(ctx, fxRateID, requestingUserID)

	suite.Require().NoError(err)
	suite.True(lockedRate.IsLocked)
	suite.Equal(requestingUserID, lockedRate.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestLockFxRate_AlreadyLockedIsNoOp() {
	ctx := context.Background()
	fxRateID := uuid.NewString()
	existing := &domain.FxRate{
		FxRateID: fxRateID,
		IsLocked: true,
	}

	suite.mockRepo.On("FindFxRateByID", ctx, fxRateID).Return(existing, nil).Once()

	lockedRate, err := suite.service.LockFxRate(ctx, fxRateID, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(lockedRate.IsLocked)
	suite.mockRepo.AssertNotCalled(suite.T(), "LockFxRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFxRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxRateServiceTestSuite))
}
