package dto

// ReportDateRangeParams defines the optional date window for reports.
// Dates are RFC 3339 dates (2006-01-02); parsing happens in the handler.
type ReportDateRangeParams struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	AsOf string `form:"asOf"`
}

// Report responses serialize the domain report structs directly; they carry
// no transport-only fields worth a separate DTO layer.
