package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/apperrors"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/finbooks-app/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// sectionLabels maps account types to their statement section headings.
var sectionLabels = map[domain.AccountType]string{
	domain.Asset:     "Assets",
	domain.Liability: "Liabilities",
	domain.Equity:    "Equity",
	domain.Income:    "Income",
	domain.Expense:   "Expenses",
}

// ReportingService derives read-only financial reports. It never writes;
// current balances come from the account rows the journal engine maintains,
// period figures are re-summed from posted lines.
type ReportingService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

func NewReportingService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, reportingRepo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
		reportingRepo: reportingRepo,
	}
}

// TrialBalance lists every active postable account with a non-zero balance,
// one column per account. A balance on the account's normal side lands in
// that side's column; an abnormal balance lands in the opposite column as an
// absolute value. Without an asOf date, current balances are used; with one,
// balances are re-summed from posted lines up to and including that date.
func (s *ReportingService) TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListPostableAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list postable accounts for trial balance", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	if asOf == nil {
		for _, acc := range accounts {
			balances[acc.AccountID] = acc.Balance
		}
	} else {
		activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, nil, nil, asOf)
		if err != nil {
			logger.Error("Failed to load account activity for trial balance", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("failed to load account activity: %w", err)
		}
		for _, a := range activity {
			balances[a.AccountID] = accounting.SignedDelta(a.NormalBalance, a.DebitSum, a.CreditSum)
		}
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		balance := balances[acc.AccountID]
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		debitSide := acc.NormalBalance == domain.DebitNormal
		if balance.IsNegative() {
			debitSide = !debitSide
			balance = balance.Abs()
		}
		if debitSide {
			row.Debit = balance
			report.TotalDebit = report.TotalDebit.Add(balance)
		} else {
			row.Credit = balance
			report.TotalCredit = report.TotalCredit.Add(balance)
		}
		report.Rows = append(report.Rows, row)
	}

	report.TotalDebit = report.TotalDebit.Round(2)
	report.TotalCredit = report.TotalCredit.Round(2)
	return report, nil
}

// BalanceSheet partitions current asset, liability, and equity balances into
// sections. Accounts with zero balances and empty sections are omitted.
func (s *ReportingService) BalanceSheet(ctx context.Context, tenantID string) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListPostableAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list postable accounts for balance sheet", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}

	sections := sectionsFromBalances(accounts, []domain.AccountType{domain.Asset, domain.Liability, domain.Equity})

	report := &domain.BalanceSheetReport{
		Sections:         []domain.ReportSection{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for t, section := range sections {
		if len(section.Lines) == 0 {
			continue
		}
		report.Sections = append(report.Sections, *section)
		switch t {
		case domain.Asset:
			report.TotalAssets = section.Total
		case domain.Liability:
			report.TotalLiabilities = section.Total
		case domain.Equity:
			report.TotalEquity = section.Total
		}
	}
	orderSections(report.Sections)
	return report, nil
}

// IncomeStatement partitions income and expense amounts and derives net
// income. Without a window, current balances are used; with one, amounts are
// re-summed from posted activity inside the window.
func (s *ReportingService) IncomeStatement(ctx context.Context, tenantID string, from, to *time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report := &domain.IncomeStatementReport{
		DateFrom:      from,
		DateTo:        to,
		Sections:      []domain.ReportSection{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	types := []domain.AccountType{domain.Income, domain.Expense}
	var sections map[domain.AccountType]*domain.ReportSection

	if from == nil && to == nil {
		accounts, err := s.accountRepo.ListPostableAccounts(ctx, tenantID)
		if err != nil {
			logger.Error("Failed to list postable accounts for income statement", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("failed to list postable accounts: %w", err)
		}
		sections = sectionsFromBalances(accounts, types)
	} else {
		activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, types, from, to)
		if err != nil {
			logger.Error("Failed to load account activity for income statement", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
			return nil, fmt.Errorf("failed to load account activity: %w", err)
		}
		sections = newSections(types)
		for _, a := range activity {
			amount := accounting.SignedDelta(a.NormalBalance, a.DebitSum, a.CreditSum)
			if amount.IsZero() {
				continue
			}
			section := sections[a.AccountType]
			section.Lines = append(section.Lines, domain.ReportLine{
				AccountID: a.AccountID,
				Code:      a.Code,
				Name:      a.Name,
				Amount:    amount,
			})
			section.Total = section.Total.Add(amount)
		}
	}

	for t, section := range sections {
		if len(section.Lines) == 0 {
			continue
		}
		report.Sections = append(report.Sections, *section)
		switch t {
		case domain.Income:
			report.TotalIncome = section.Total
		case domain.Expense:
			report.TotalExpenses = section.Total
		}
	}
	orderSections(report.Sections)
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)
	return report, nil
}

// GeneralLedger replays one account's posted lines into running-balance rows.
// When the window has a lower bound, earlier activity is folded into the
// opening balance so the closing value matches an unbounded replay.
func (s *ReportingService) GeneralLedger(ctx context.Context, tenantID, accountID string, from, to *time.Time) (*domain.GeneralLedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for general ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	opening := decimal.Zero
	if from != nil {
		debitSum, creditSum, err := s.reportingRepo.SumLedgerLinesBefore(ctx, tenantID, accountID, *from)
		if err != nil {
			logger.Error("Failed to sum pre-window lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
		opening = accounting.SignedDelta(account.NormalBalance, debitSum, creditSum)
	}

	lines, err := s.reportingRepo.GetLedgerLines(ctx, tenantID, accountID, from, to)
	if err != nil {
		logger.Error("Failed to load ledger lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger lines: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		AccountID:      account.AccountID,
		Code:           account.Code,
		Name:           account.Name,
		DateFrom:       from,
		DateTo:         to,
		OpeningBalance: opening,
		Rows:           []domain.GeneralLedgerRow{},
	}

	running := opening
	for _, line := range lines {
		running = running.Add(accounting.SignedDelta(account.NormalBalance, line.Debit, line.Credit))
		report.Rows = append(report.Rows, domain.GeneralLedgerRow{
			Date:           line.EntryDate,
			EntryNumber:    line.EntryNumber,
			Description:    line.Description,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: running,
		})
	}
	report.ClosingBalance = running
	return report, nil
}

// DashboardSummary aggregates current balances by account type.
func (s *ReportingService) DashboardSummary(ctx context.Context, tenantID string) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListPostableAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list postable accounts for dashboard", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}

	summary := &domain.DashboardSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		AccountCount:     len(accounts),
	}
	for _, acc := range accounts {
		switch acc.AccountType {
		case domain.Asset:
			summary.TotalAssets = summary.TotalAssets.Add(acc.Balance)
		case domain.Liability:
			summary.TotalLiabilities = summary.TotalLiabilities.Add(acc.Balance)
		case domain.Equity:
			summary.TotalEquity = summary.TotalEquity.Add(acc.Balance)
		case domain.Income:
			summary.TotalIncome = summary.TotalIncome.Add(acc.Balance)
		case domain.Expense:
			summary.TotalExpenses = summary.TotalExpenses.Add(acc.Balance)
		}
	}
	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)

	postedCount, err := s.journalRepo.CountPostedEntries(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to count posted entries for dashboard", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to count posted entries: %w", err)
	}
	summary.PostedEntryCount = int(postedCount)
	return summary, nil
}

// newSections builds an empty labeled section per account type.
func newSections(types []domain.AccountType) map[domain.AccountType]*domain.ReportSection {
	sections := make(map[domain.AccountType]*domain.ReportSection, len(types))
	for _, t := range types {
		sections[t] = &domain.ReportSection{
			Label: sectionLabels[t],
			Lines: []domain.ReportLine{},
			Total: decimal.Zero,
		}
	}
	return sections
}

// sectionsFromBalances folds non-zero current balances into per-type sections.
// Accounts are assumed ordered by code, so section lines come out ordered too.
func sectionsFromBalances(accounts []domain.Account, types []domain.AccountType) map[domain.AccountType]*domain.ReportSection {
	sections := newSections(types)
	for _, acc := range accounts {
		section, ok := sections[acc.AccountType]
		if !ok || acc.Balance.IsZero() {
			continue
		}
		section.Lines = append(section.Lines, domain.ReportLine{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Amount:    acc.Balance,
		})
		section.Total = section.Total.Add(acc.Balance)
	}
	return sections
}

// orderSections puts statement sections into conventional order.
func orderSections(sections []domain.ReportSection) {
	rank := map[string]int{"Assets": 0, "Liabilities": 1, "Equity": 2, "Income": 3, "Expenses": 4}
	for i := 1; i < len(sections); i++ {
		for j := i; j > 0 && rank[sections[j-1].Label] > rank[sections[j].Label]; j-- {
			sections[j-1], sections[j] = sections[j], sections[j-1]
		}
	}
}
