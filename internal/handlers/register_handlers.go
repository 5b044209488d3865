package handlers

import (
	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	dbPool *pgxpool.Pool,
) {
	registerHomeRoutes(r, dbPool)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
// Every v1 route requires the tenant and actor identity headers; authentication
// itself happens upstream of this service.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.TenantContextMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerReportingRoutes(v1, services.Reporting)
}
