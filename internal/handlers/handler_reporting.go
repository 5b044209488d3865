package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report and dashboard routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/general-ledger/:accountID", h.generalLedger)
	}
	rg.GET("/dashboard", h.dashboard)
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := parseDate(params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf, expected YYYY-MM-DD"})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	from, to, ok := bindDateRange(c)
	if !ok {
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	report, err := h.reportingService.IncomeStatement(c.Request.Context(), tenantID, from, to)
	if err != nil {
		respondError(c, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) generalLedger(c *gin.Context) {
	from, to, ok := bindDateRange(c)
	if !ok {
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	report, err := h.reportingService.GeneralLedger(c.Request.Context(), tenantID, c.Param("accountID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to build general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) dashboard(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// bindDateRange parses the shared dateFrom/dateTo query pair. On a parse
// failure it writes the 400 response and reports false.
func bindDateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	var params dto.ReportDateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return nil, nil, false
	}
	from, err := parseDate(params.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFrom, expected YYYY-MM-DD"})
		return nil, nil, false
	}
	to, err = parseDate(params.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTo, expected YYYY-MM-DD"})
		return nil, nil, false
	}
	return from, to, true
}
