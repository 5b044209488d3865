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

	"github.com/finbooks-app/finbooks_backend/internal/apperrors"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/handlers"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) SeedDefaultChart(ctx context.Context, tenantID, actorID string) (int, error) {
	args := m.Called(ctx, tenantID, actorID)
	return args.Int(0), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ToggleAccountActive(ctx context.Context, tenantID, accountID, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountTree(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListPostableAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) VoidEntry(ctx context.Context, tenantID, entryID, actorID, reason string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, filter portsrepo.ListEntriesFilter, page, limit int) (*portssvc.EntryPage, error) {
	args := m.Called(ctx, tenantID, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.EntryPage), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, tenantID string) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, tenantID string, from, to *time.Time) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) GeneralLedger(ctx context.Context, tenantID, accountID string, from, to *time.Time) (*domain.GeneralLedgerReport, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedgerReport), args.Error(1)
}
func (m *MockReportingService) DashboardSummary(ctx context.Context, tenantID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockJournalService   *MockJournalService
	mockReportingService *MockReportingService
	tenantID             string
	userID               string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockReportingService = new(MockReportingService)

	services := &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Journal:   suite.mockJournalService,
		Reporting: suite.mockReportingService,
	}
	// Pool only backs /healthz, which these tests never hit.
	handlers.RegisterRoutes(suite.router, services, nil)
}

// newRequest builds a request carrying the gateway identity headers.
func (suite *AccountHandlerTestSuite) newRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set(middleware.TenantIDHeader, suite.tenantID)
	req.Header.Set(middleware.UserIDHeader, suite.userID)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		Code:          "1115",
		Name:          "Petty Cash",
		AccountType:   domain.Asset,
		AllowsPosting: true,
	}
	created := &domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		Code:          reqBody.Code,
		Name:          reqBody.Name,
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		Level:         1,
		AllowsPosting: true,
		IsActive:      true,
		Balance:       decimal.Zero,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == reqBody.Code && r.AccountType == domain.Asset
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/accounts", reqBody))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("1115", resp.Code)
	suite.Equal(domain.DebitNormal, resp.NormalBalance)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingTenantHeader() {
	req := suite.newRequest(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "1115", Name: "Petty Cash", AccountType: domain.Asset,
	})
	req.Header.Del(middleware.TenantIDHeader)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	// Missing required name and an account type outside the allowed set.
	body := map[string]any{"code": "1115", "accountType": "GOODWILL"}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/accounts", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.tenantID, accountID).
		Return(nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_PostableFilter() {
	postable := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1110", Name: "Cash on Hand", AllowsPosting: true, IsActive: true},
	}
	suite.mockAccountService.On("ListPostableAccounts", mock.Anything, suite.tenantID).
		Return(postable, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodGet, "/api/v1/accounts?postable=true", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Accounts []dto.AccountResponse `json:"accounts"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
	suite.Equal("1110", resp.Accounts[0].Code)

	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListActiveAccounts")
}

func (suite *AccountHandlerTestSuite) TestToggleActive_WithPostings() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("ToggleAccountActive", mock.Anything, suite.tenantID, accountID, suite.userID).
		Return(nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrStateConflict)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/accounts/"+accountID+"/toggle-active", nil))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestSeedChart_AlreadySeeded() {
	suite.mockAccountService.On("SeedDefaultChart", mock.Anything, suite.tenantID, suite.userID).
		Return(0, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.newRequest(http.MethodPost, "/api/v1/accounts/seed", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SeedChartResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(0, resp.AccountsCreated)

	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
