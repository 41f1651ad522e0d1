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

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.POST("/:id/post", h.postJournal)
	}

	// Journal listing is scoped under the owning period
	rg.GET("/periods/:id/journals", h.listJournalsByPeriod)
}

// createJournal godoc
// @Summary Create a new draft journal
// @Description Creates a draft journal with its lines; drafts may be unbalanced until posting
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Period, account, or pinned rate not found"
// @Failure 409 {object} map[string]string "Period is locked"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
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
	logger.Info("Received request to create journal",
		slog.String("reference", req.Reference),
		slog.Int64("period_id", req.PeriodID),
		slog.Int("line_count", len(req.Lines)),
	)

	createdJournal, err := h.journalService.CreateJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced entity not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPeriodLocked):
			logger.Warn("Journal targets a locked period", slog.Int64("period_id", req.PeriodID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrInactiveAccount),
			errors.Is(err, services.ErrCurrencyMismatch),
			errors.Is(err, services.ErrDateOutsidePeriod),
			errors.Is(err, services.ErrUnsupportedCurrency):
			logger.Warn("Validation error creating journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal"})
		}
		return
	}

	logger.Info("Journal created successfully", slog.String("journal_id", createdJournal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(createdJournal))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal with its lines by ID
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID (UUID)"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, services.ErrJournalNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else {
			logger.Error("Failed to get journal from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournalsByPeriod godoc
// @Summary List journals in a period
// @Description Retrieves paginated journal headers belonging to a period
// @Tags journals
// @Produce  json
// @Param   id     path  int true  "Period ID"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.JournalResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Router /periods/{id}/journals [get]
func (h *journalHandler) listJournalsByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period ID must be an integer"})
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination values: " + err.Error()})
		return
	}

	journals, err := h.journalService.ListJournalsByPeriod(c.Request.Context(), periodID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for journal listing", slog.Int64("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list journals from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalResponse(journals))
}

// updateJournal godoc
// @Summary Update a draft journal
// @Description Updates header details of a journal that is still in DRAFT status
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id      path string true "Journal ID (UUID)"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Router /journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor ID is required"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID))
	updatedJournal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, services.ErrJournalNotFound):
			logger.Warn("Journal not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		case errors.Is(err, services.ErrJournalNotDraft):
			logger.Warn("Journal is not a draft")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrDateOutsidePeriod):
			logger.Warn("Validation error updating journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal"})
		}
		return
	}

	logger.Info("Journal updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(updatedJournal))
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Transitions a journal from DRAFT to POSTED, recomputing and fixing its converted totals
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID (UUID)"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Journal fails posting validation"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal already posted or period locked"
// @Failure 422 {object} map[string]string "Journal does not balance"
// @Failure 500 {object} map[string]string "Failed to post journal"
// @Router /journals/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor ID is required"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to post journal")

	postedJournal, err := h.journalService.PostJournal(c.Request.Context(), journalID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, services.ErrJournalNotFound):
			logger.Warn("Journal not found for posting")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		case errors.Is(err, services.ErrAlreadyPosted), errors.Is(err, services.ErrPeriodLocked):
			logger.Warn("Posting blocked", slog.String("reason", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrJournalUnbalanced):
			logger.Warn("Journal does not balance", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInactiveAccount), errors.Is(err, services.ErrRateNotFound):
			logger.Warn("Journal fails posting validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal"})
		}
		return
	}

	logger.Info("Journal posted successfully",
		slog.Any("total_debit", postedJournal.TotalDebit),
		slog.Any("total_credit", postedJournal.TotalCredit),
	)
	c.JSON(http.StatusOK, dto.ToJournalResponse(postedJournal))
}
