package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if !bindJSONOrAbort(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "creating budget")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"budgetID":   budget.BudgetID,
		"categoryID": budget.CategoryID,
		"month":      budget.Month,
		"year":       budget.Year,
		"amount":     budget.Amount,
	})
}

func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "getting budget")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"budgetID":   budget.BudgetID,
		"categoryID": budget.CategoryID,
		"month":      budget.Month,
		"year":       budget.Year,
		"amount":     budget.Amount,
	})
}

// listBudgets returns the month's budgets with their spent amounts, the view
// the budget screen renders.
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListBudgetsParams
	if !bindQueryOrAbort(c, logger, &params) {
		return
	}

	usages, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "listing budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetResponse(usages))
}

func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBudgetRequest
	if !bindJSONOrAbort(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "updating budget")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"budgetID":   budget.BudgetID,
		"categoryID": budget.CategoryID,
		"month":      budget.Month,
		"year":       budget.Year,
		"amount":     budget.Amount,
	})
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "deleting budget")
		return
	}
	c.Status(http.StatusNoContent)
}
