package handlers

import (
	"log/slog"
	"net/http"

	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/void", h.voidEntry)
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.journalService.CreateEntry(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	dateFrom, err := parseDate(params.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFrom, expected YYYY-MM-DD"})
		return
	}
	dateTo, err := parseDate(params.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTo, expected YYYY-MM-DD"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	filter := portsrepo.ListEntriesFilter{
		Status:    domain.EntryStatus(params.Status),
		EntryType: domain.EntryType(params.EntryType),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Search:    params.Search,
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), tenantID, filter, params.Page, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(page.Entries, page.Page, page.Limit, page.Total, page.TotalPages))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entry, err := h.journalService.GetEntry(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.journalService.PostEntry(c.Request.Context(), tenantID, c.Param("id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VoidEntryRequest
	// Body is optional; a void without a reason is still a void.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for voidEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.journalService.VoidEntry(c.Request.Context(), tenantID, c.Param("id"), actorID, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
