package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockJournalRepo   *MockJournalRepository
	mockReportingRepo *MockReportingRepository
	service           *services.ReportingService

	tenantID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockReportingRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) account(code string, t domain.AccountType, balance int64) domain.Account {
	return domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		Code:          code,
		Name:          "Account " + code,
		AccountType:   t,
		NormalBalance: domain.NormalBalanceFor(t),
		AllowsPosting: true,
		IsActive:      true,
		Balance:       decimal.NewFromInt(balance),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ColumnsAndTotals() {
	ctx := context.Background()
	cash := suite.account("1110", domain.Asset, 700)
	payable := suite.account("2110", domain.Liability, 200)
	revenue := suite.account("4110", domain.Income, 500)
	zero := suite.account("1120", domain.Asset, 0)
	// A liability driven below zero shows up as a debit, as an absolute value.
	abnormal := suite.account("2120", domain.Liability, -50)

	suite.mockAccountRepo.On("ListPostableAccounts", ctx, suite.tenantID).
		Return([]domain.Account{cash, zero, payable, abnormal, revenue}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 4) // zero-balance account omitted

	rowsByCode := make(map[string]domain.TrialBalanceRow)
	for _, row := range report.Rows {
		rowsByCode[row.Code] = row
	}
	suite.True(rowsByCode["1110"].Debit.Equal(decimal.NewFromInt(700)))
	suite.True(rowsByCode["1110"].Credit.IsZero())
	suite.True(rowsByCode["2110"].Credit.Equal(decimal.NewFromInt(200)))
	suite.True(rowsByCode["2120"].Debit.Equal(decimal.NewFromInt(50)))
	suite.True(rowsByCode["4110"].Credit.Equal(decimal.NewFromInt(500)))

	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(750)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(700)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_AsOfUsesActivity() {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	cash := suite.account("1110", domain.Asset, 1200) // current balance is newer than asOf

	suite.mockAccountRepo.On("ListPostableAccounts", ctx, suite.tenantID).
		Return([]domain.Account{cash}, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.tenantID, []domain.AccountType(nil), (*time.Time)(nil), &asOf).
		Return([]portsrepo.AccountActivity{
			{
				AccountID:     cash.AccountID,
				Code:          cash.Code,
				Name:          cash.Name,
				AccountType:   domain.Asset,
				NormalBalance: domain.DebitNormal,
				DebitSum:      decimal.NewFromInt(900),
				CreditSum:     decimal.NewFromInt(100),
			},
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, &asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(800)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Sections() {
	ctx := context.Background()
	cash := suite.account("1110", domain.Asset, 1000)
	payable := suite.account("2110", domain.Liability, 400)
	capital := suite.account("3110", domain.Equity, 600)
	revenue := suite.account("4110", domain.Income, 500) // not a balance sheet account

	suite.mockAccountRepo.On("ListPostableAccounts", ctx, suite.tenantID).
		Return([]domain.Account{cash, payable, capital, revenue}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Sections, 3)
	suite.Equal("Assets", report.Sections[0].Label)
	suite.Equal("Liabilities", report.Sections[1].Label)
	suite.Equal("Equity", report.Sections[2].Label)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(600)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_CurrentBalances() {
	ctx := context.Background()
	revenue := suite.account("4110", domain.Income, 900)
	rent := suite.account("5130", domain.Expense, 300)

	suite.mockAccountRepo.On("ListPostableAccounts", ctx, suite.tenantID).
		Return([]domain.Account{revenue, rent}, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.tenantID, nil, nil)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(300)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(600)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_WindowUsesActivity() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	revenue := suite.account("4110", domain.Income, 9999) // stale current balance must be ignored

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.tenantID,
		[]domain.AccountType{domain.Income, domain.Expense}, &from, &to).
		Return([]portsrepo.AccountActivity{
			{
				AccountID:     revenue.AccountID,
				Code:          revenue.Code,
				Name:          revenue.Name,
				AccountType:   domain.Income,
				NormalBalance: domain.CreditNormal,
				DebitSum:      decimal.NewFromInt(50),
				CreditSum:     decimal.NewFromInt(450),
			},
		}, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.tenantID, &from, &to)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(400)))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListPostableAccounts", ctx, suite.tenantID)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalance() {
	ctx := context.Background()
	cash := suite.account("1110", domain.Asset, 0)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, cash.AccountID).
		Return(&cash, nil).Once()
	suite.mockReportingRepo.On("GetLedgerLines", ctx, suite.tenantID, cash.AccountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]portsrepo.LedgerLine{
			{EntryNumber: "JE-2026-000001", Debit: decimal.NewFromInt(500)},
			{EntryNumber: "JE-2026-000002", Credit: decimal.NewFromInt(200)},
			{EntryNumber: "JE-2026-000003", Debit: decimal.NewFromInt(100)},
		}, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, cash.AccountID, nil, nil)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.IsZero())
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(300)))
	suite.True(report.Rows[2].RunningBalance.Equal(decimal.NewFromInt(400)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(400)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_WindowOpeningBalance() {
	ctx := context.Background()
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cash := suite.account("1110", domain.Asset, 0)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, cash.AccountID).
		Return(&cash, nil).Once()
	suite.mockReportingRepo.On("SumLedgerLinesBefore", ctx, suite.tenantID, cash.AccountID, from).
		Return(decimal.NewFromInt(800), decimal.NewFromInt(300), nil).Once()
	suite.mockReportingRepo.On("GetLedgerLines", ctx, suite.tenantID, cash.AccountID, &from, (*time.Time)(nil)).
		Return([]portsrepo.LedgerLine{
			{EntryNumber: "JE-2026-000009", Debit: decimal.NewFromInt(100)},
		}, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, cash.AccountID, &from, nil)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(500)))
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(600)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(600)))
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary() {
	ctx := context.Background()
	accounts := []domain.Account{
		suite.account("1110", domain.Asset, 1000),
		suite.account("2110", domain.Liability, 400),
		suite.account("3110", domain.Equity, 200),
		suite.account("4110", domain.Income, 900),
		suite.account("5130", domain.Expense, 500),
	}

	suite.mockAccountRepo.On("ListPostableAccounts", ctx, suite.tenantID).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("CountPostedEntries", ctx, suite.tenantID).Return(int64(12), nil).Once()

	summary, err := suite.service.DashboardSummary(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.True(summary.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(summary.TotalEquity.Equal(decimal.NewFromInt(200)))
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(900)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(500)))
	suite.True(summary.NetIncome.Equal(decimal.NewFromInt(400)))
	suite.Equal(5, summary.AccountCount)
	suite.Equal(12, summary.PostedEntryCount)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
