package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. User routes sit outside the resolved-user group:
// creating a user is how a store gets its owner, so there is no user to name
// yet. Every other route runs with a resolved acting user.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	open := r.Group("/api/v1")
	registerUserRoutes(open, services.User)

	v1 := r.Group("/api/v1", middleware.ResolveUser())

	registerAccountRoutes(v1, services.Account, services.Transaction)
	registerCategoryRoutes(v1, services.Category)
	registerBudgetRoutes(v1, services.Budget)
	registerTransactionRoutes(v1, services.Transaction)
	registerCardRoutes(v1, services.Card)
	registerCardTransactionRoutes(v1, services.CardTransaction)
	registerReportingRoutes(v1, services.Reporting)
}
