package services

import (
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.SequenceRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.ReportingRepo)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.AccountSvcFacade   = (*AccountService)(nil)
	_ portssvc.JournalSvcFacade   = (*JournalService)(nil)
	_ portssvc.ReportingSvcFacade = (*ReportingService)(nil)
)
