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

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: ps,
	}
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.POST("/:id/close", h.closePeriod)
	}
}

func parsePeriodID(c *gin.Context) (int64, bool) {
	periodID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period ID must be an integer"})
		return 0, false
	}
	return periodID, true
}

// createPeriod godoc
// @Summary Create a new accounting period
// @Description Opens a new period for the given year and month
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Period already exists"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
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
	logger.Info("Received request to create period", slog.Int("year", req.Year), slog.Int("month", req.Month))

	createdPeriod, err := h.periodService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Period already exists", slog.Int("year", req.Year), slog.Int("month", req.Month))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	logger.Info("Period created successfully", slog.Int64("period_id", createdPeriod.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(createdPeriod))
}

// getPeriod godoc
// @Summary Get a period
// @Description Retrieves an accounting period by its ID
// @Tags periods
// @Produce  json
// @Param   id path int true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Router /periods/{id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID, ok := parsePeriodID(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found", slog.Int64("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get period from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List periods
// @Description Retrieves periods, optionally filtered by status and year
// @Tags periods
// @Produce  json
// @Param   status query string false "Period status" Enums(OPEN, LOCKED)
// @Param   year   query int    false "Year filter"
// @Success 200 {array} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid filter values"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPeriods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter values: " + err.Error()})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodResponse(periods))
}

// closePeriod godoc
// @Summary Close a period
// @Description Transitions a period from OPEN to LOCKED once every journal in it is posted and every FX rate dated within it is locked
// @Tags periods
// @Produce  json
// @Param   id path int true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already locked, open drafts remain, or unlocked rates remain"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /periods/{id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID, ok := parsePeriodID(c)
	if !ok {
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor ID is required"})
		return
	}

	logger = logger.With(slog.Int64("period_id", periodID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to close period")

	var alreadyLocked *services.PeriodAlreadyLockedError
	var openDrafts *services.OpenDraftsError
	var unlockedRates *services.UnlockedRatesError

	closedPeriod, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Period not found for close")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &alreadyLocked), errors.As(err, &openDrafts), errors.As(err, &unlockedRates):
			logger.Warn("Period close blocked", slog.String("reason", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed successfully")
	c.JSON(http.StatusOK, dto.ToPeriodResponse(closedPeriod))
}
