package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/core/services"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/finledger/bookkeeping_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fxRateHandler handles HTTP requests related to FX rates.
type fxRateHandler struct {
	fxRateService portssvc.FxRateSvcFacade
}

// newFxRateHandler creates a new fxRateHandler.
func newFxRateHandler(frs portssvc.FxRateSvcFacade) *fxRateHandler {
	return &fxRateHandler{
		fxRateService: frs,
	}
}

// registerFxRateRoutes registers routes related to FX rates.
func registerFxRateRoutes(rg *gin.RouterGroup, fxRateService portssvc.FxRateSvcFacade) {
	h := newFxRateHandler(fxRateService)

	fxRates := rg.Group("/fx-rates")
	{
		fxRates.POST("", h.createFxRate)
		fxRates.GET("", h.listFxRates)
		fxRates.GET("/resolve", h.resolveFxRate)
		fxRates.GET("/:id", h.getFxRate)
		fxRates.POST("/:id/lock", h.lockFxRate)
	}
}

// createFxRate godoc
// @Summary Create a new FX rate
// @Description Adds a new exchange rate between two currencies effective on a specific date
// @Tags fx rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateFxRateRequest true "FX rate details"
// @Success 201 {object} dto.FxRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create FX rate"
// @Router /fx-rates [post]
func (h *fxRateHandler) createFxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFxRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor ID is required"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create FX rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.Any("rate", req.Rate),
		slog.Time("date_effective", req.DateEffective),
	)

	createdRate, err := h.fxRateService.CreateFxRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, services.ErrInvalidRate) ||
			errors.Is(err, services.ErrInvalidCurrencyPair) ||
			errors.Is(err, services.ErrUnsupportedCurrency) {
			logger.Warn("Validation error creating FX rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create FX rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FX rate"})
		}
		return
	}

	logger.Info("FX rate created successfully", slog.String("fx_rate_id", createdRate.FxRateID))
	c.JSON(http.StatusCreated, dto.ToFxRateResponse(createdRate))
}

// resolveFxRate godoc
// @Summary Resolve an FX rate
// @Description Returns the conversion rate for the pair applicable on the given date, using the most recent rate dated on or before it
// @Tags fx rates
// @Produce  json
// @Param   from  query string true "From currency code (3 letters)"
// @Param   to    query string true "To currency code (3 letters)"
// @Param   as_of query string true "Resolution date (YYYY-MM-DD)"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "No rate found for the pair on or before the date"
// @Failure 500 {object} map[string]string "Failed to resolve FX rate"
// @Router /fx-rates/resolve [get]
func (h *fxRateHandler) resolveFxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ResolveFxRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ResolveFxRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("from", params.From), slog.String("to", params.To))

	rate, err := h.fxRateService.ResolveRate(c.Request.Context(), params.From, params.To, params.AsOf)
	if err != nil {
		if errors.Is(err, services.ErrRateNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No FX rate found for pair", slog.Time("as_of", params.AsOf))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, services.ErrUnsupportedCurrency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve FX rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve FX rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedRateResponse{
		FromCurrencyCode: params.From,
		ToCurrencyCode:   params.To,
		AsOf:             params.AsOf,
		Rate:             rate,
	})
}

// getFxRate godoc
// @Summary Get an FX rate
// @Description Retrieves an FX rate by its ID
// @Tags fx rates
// @Produce  json
// @Param   id path string true "FX rate ID (UUID)"
// @Success 200 {object} dto.FxRateResponse
// @Failure 404 {object} map[string]string "FX rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve FX rate"
// @Router /fx-rates/{id} [get]
func (h *fxRateHandler) getFxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fxRateID := c.Param("id")

	rate, err := h.fxRateService.GetFxRateByID(c.Request.Context(), fxRateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("FX rate not found", slog.String("fx_rate_id", fxRateID))
			c.JSON(http.StatusNotFound, gin.H{"error": "FX rate not found"})
		} else {
			logger.Error("Failed to get FX rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve FX rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFxRateResponse(rate))
}

// listFxRates godoc
// @Summary List FX rates
// @Description Retrieves FX rates, optionally filtered to a currency pair
// @Tags fx rates
// @Produce  json
// @Param   from   query string false "From currency code (3 letters)"
// @Param   to     query string false "To currency code (3 letters)"
// @Param   limit  query int    false "Page size" default(20)
// @Param   offset query int    false "Page offset" default(0)
// @Success 200 {array} dto.FxRateResponse
// @Failure 500 {object} map[string]string "Failed to list FX rates"
// @Router /fx-rates [get]
func (h *fxRateHandler) listFxRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	rates, err := h.fxRateService.ListFxRates(c.Request.Context(), c.Query("from"), c.Query("to"), limit, offset)
	if err != nil {
		logger.Error("Failed to list FX rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list FX rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFxRateResponse(rates))
}

// lockFxRate godoc
// @Summary Lock an FX rate
// @Description Marks a rate as locked so it no longer blocks closing the period it is dated in
// @Tags fx rates
// @Produce  json
// @Param   id path string true "FX rate ID (UUID)"
// @Success 200 {object} dto.FxRateResponse
// @Failure 404 {object} map[string]string "FX rate not found"
// @Failure 500 {object} map[string]string "Failed to lock FX rate"
// @Router /fx-rates/{id}/lock [post]
func (h *fxRateHandler) lockFxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fxRateID := c.Param("id")

	requestingUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor ID is required"})
		return
	}

	logger = logger.With(slog.String("fx_rate_id", fxRateID))
	lockedRate, err := h.fxRateService.LockFxRate(c.Request.Context(), fxRateID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("FX rate not found for lock")
			c.JSON(http.StatusNotFound, gin.H{"error": "FX rate not found"})
		} else {
			logger.Error("Failed to lock FX rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock FX rate"})
		}
		return
	}

	logger.Info("FX rate locked")
	c.JSON(http.StatusOK, dto.ToFxRateResponse(lockedRate))
}
