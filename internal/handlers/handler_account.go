package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to the chart of accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedChart)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.POST("/:id/toggle-active", h.toggleActive)
	}
}

func (h *accountHandler) seedChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	created, err := h.accountService.SeedDefaultChart(c.Request.Context(), tenantID, actorID)
	if err != nil {
		respondError(c, err, "Failed to seed chart of accounts")
		return
	}

	logger.Info("Chart seed handled", slog.Int("created", created))
	status := http.StatusCreated
	if created == 0 {
		status = http.StatusOK
	}
	c.JSON(status, dto.SeedChartResponse{AccountsCreated: created})
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	list := h.accountService.ListActiveAccounts
	if c.Query("postable") == "true" {
		list = h.accountService.ListPostableAccounts
	}

	accounts, err := list(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToListAccountResponse(accounts)})
}

func (h *accountHandler) getAccountTree(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	roots, err := h.accountService.GetAccountTree(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountTreeResponse(roots)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) toggleActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetUserIDFromContext(c)

	account, err := h.accountService.ToggleAccountActive(c.Request.Context(), tenantID, c.Param("id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to toggle account")
		return
	}

	logger.Info("Account toggled", slog.String("account_id", account.AccountID), slog.Bool("is_active", account.IsActive))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
