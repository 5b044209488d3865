package domain

// ChartEntry describes one node of the reference chart of accounts that is
// seeded for a new tenant. ParentCode refers to another entry's Code; parent
// ids are wired up in a second pass once all nodes exist.
type ChartEntry struct {
	Code          string
	Name          string
	AccountType   AccountType
	Level         int
	ParentCode    string
	AllowsPosting bool
}

// DefaultChart is the reference chart of accounts seeded for every new
// tenant. Levels: 1 = type root, 2 = group header, 3 = posting leaf.
// Only leaves allow posting; headers are pure aggregation nodes.
var DefaultChart = []ChartEntry{
	// Assets (1xxx)
	{Code: "1000", Name: "Assets", AccountType: Asset, Level: 1},
	{Code: "1100", Name: "Current Assets", AccountType: Asset, Level: 2, ParentCode: "1000"},
	{Code: "1110", Name: "Cash on Hand", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1120", Name: "Bank Accounts", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1130", Name: "Accounts Receivable", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1140", Name: "Inventory", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1150", Name: "Prepaid Expenses", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1160", Name: "VAT Receivable", AccountType: Asset, Level: 3, ParentCode: "1100", AllowsPosting: true},
	{Code: "1200", Name: "Fixed Assets", AccountType: Asset, Level: 2, ParentCode: "1000"},
	{Code: "1210", Name: "Property, Plant & Equipment", AccountType: Asset, Level: 3, ParentCode: "1200", AllowsPosting: true},
	{Code: "1220", Name: "Accumulated Depreciation", AccountType: Asset, Level: 3, ParentCode: "1200", AllowsPosting: true},

	// Liabilities (2xxx)
	{Code: "2000", Name: "Liabilities", AccountType: Liability, Level: 1},
	{Code: "2100", Name: "Current Liabilities", AccountType: Liability, Level: 2, ParentCode: "2000"},
	{Code: "2110", Name: "Accounts Payable", AccountType: Liability, Level: 3, ParentCode: "2100", AllowsPosting: true},
	{Code: "2120", Name: "VAT Payable", AccountType: Liability, Level: 3, ParentCode: "2100", AllowsPosting: true},
	{Code: "2130", Name: "Accrued Expenses", AccountType: Liability, Level: 3, ParentCode: "2100", AllowsPosting: true},
	{Code: "2140", Name: "Payroll Liabilities", AccountType: Liability, Level: 3, ParentCode: "2100", AllowsPosting: true},
	{Code: "2200", Name: "Long-term Liabilities", AccountType: Liability, Level: 2, ParentCode: "2000"},
	{Code: "2210", Name: "Loans Payable", AccountType: Liability, Level: 3, ParentCode: "2200", AllowsPosting: true},

	// Equity (3xxx)
	{Code: "3000", Name: "Equity", AccountType: Equity, Level: 1},
	{Code: "3100", Name: "Owner's Capital", AccountType: Equity, Level: 2, ParentCode: "3000"},
	{Code: "3110", Name: "Share Capital", AccountType: Equity, Level: 3, ParentCode: "3100", AllowsPosting: true},
	{Code: "3120", Name: "Retained Earnings", AccountType: Equity, Level: 3, ParentCode: "3100", AllowsPosting: true},
	{Code: "3130", Name: "Owner's Drawings", AccountType: Equity, Level: 3, ParentCode: "3100", AllowsPosting: true},

	// Income (4xxx)
	{Code: "4000", Name: "Income", AccountType: Income, Level: 1},
	{Code: "4100", Name: "Operating Income", AccountType: Income, Level: 2, ParentCode: "4000"},
	{Code: "4110", Name: "Sales Revenue", AccountType: Income, Level: 3, ParentCode: "4100", AllowsPosting: true},
	{Code: "4120", Name: "Service Revenue", AccountType: Income, Level: 3, ParentCode: "4100", AllowsPosting: true},
	{Code: "4200", Name: "Other Income", AccountType: Income, Level: 2, ParentCode: "4000"},
	{Code: "4210", Name: "Interest Income", AccountType: Income, Level: 3, ParentCode: "4200", AllowsPosting: true},

	// Expenses (5xxx)
	{Code: "5000", Name: "Expenses", AccountType: Expense, Level: 1},
	{Code: "5100", Name: "Operating Expenses", AccountType: Expense, Level: 2, ParentCode: "5000"},
	{Code: "5110", Name: "Cost of Goods Sold", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5120", Name: "Salaries and Wages", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5130", Name: "Rent Expense", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5140", Name: "Utilities Expense", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5150", Name: "Office Supplies", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5160", Name: "Depreciation Expense", AccountType: Expense, Level: 3, ParentCode: "5100", AllowsPosting: true},
	{Code: "5200", Name: "Other Expenses", AccountType: Expense, Level: 2, ParentCode: "5000"},
	{Code: "5210", Name: "Bank Charges", AccountType: Expense, Level: 3, ParentCode: "5200", AllowsPosting: true},
	{Code: "5220", Name: "Interest Expense", AccountType: Expense, Level: 3, ParentCode: "5200", AllowsPosting: true},
}
