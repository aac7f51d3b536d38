package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
)

// cardTransactionHandler handles HTTP requests related to card purchases.
type cardTransactionHandler struct {
	cardTransactionService portssvc.CardTransactionSvcFacade
}

// registerCardTransactionRoutes registers routes related to card purchases.
// Statement listings hang off the owning card; purchase rows and groups are
// addressed directly.
func registerCardTransactionRoutes(rg *gin.RouterGroup, cardTransactionService portssvc.CardTransactionSvcFacade) {
	h := &cardTransactionHandler{cardTransactionService: cardTransactionService}

	rg.GET("/cards/:id/transactions", h.listCardTransactions)

	cardTxns := rg.Group("/card-transactions")
	{
		cardTxns.POST("", h.createCardPurchase)
		cardTxns.GET("/:id", h.getCardTransaction)
		cardTxns.DELETE("/:id", h.deleteCardPurchase)
		cardTxns.DELETE("/groups/:groupID", h.deleteCardPurchaseGroup)
	}
}

func (h *cardTransactionHandler) createCardPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCardPurchaseRequest
	if !bindJSONOrAbort(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rows, err := h.cardTransactionService.CreateCardPurchase(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "creating card purchase")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListCardTransactionResponse(rows))
}

func (h *cardTransactionHandler) getCardTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.cardTransactionService.GetCardTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "getting card transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardTransactionResponse(txn))
}

func (h *cardTransactionHandler) listCardTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListCardTransactionsParams
	if !bindQueryOrAbort(c, logger, &params) {
		return
	}

	txns, err := h.cardTransactionService.ListCardTransactions(c.Request.Context(), userID, c.Param("id"), params)
	if err != nil {
		respondServiceError(c, logger, err, "listing card transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCardTransactionResponse(txns))
}

func (h *cardTransactionHandler) deleteCardPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.cardTransactionService.DeleteCardPurchase(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "deleting card purchase")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cardTransactionHandler) deleteCardPurchaseGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.cardTransactionService.DeleteCardPurchaseGroup(c.Request.Context(), userID, c.Param("groupID")); err != nil {
		respondServiceError(c, logger, err, "deleting card purchase group")
		return
	}
	c.Status(http.StatusNoContent)
}
