package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
)

// cardHandler handles HTTP requests related to cards.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

// registerCardRoutes registers routes related to cards.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := &cardHandler{cardService: cardService}

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:id", h.getCard)
		cards.PUT("/:id", h.updateCard)
		cards.DELETE("/:id", h.deleteCard)
		cards.POST("/:id/pay", h.markPaid)
		cards.POST("/:id/reopen", h.reopen)
	}
}

func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCardRequest
	if !bindJSONOrAbort(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "creating card")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardResponse(card, time.Now().UTC()))
}

func (h *cardHandler) getCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	card, err := h.cardService.GetCardByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "getting card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card, time.Now().UTC()))
}

func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "listing cards")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCardResponse(cards, time.Now().UTC()))
}

func (h *cardHandler) updateCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCardRequest
	if !bindJSONOrAbort(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "updating card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card, time.Now().UTC()))
}

func (h *cardHandler) deleteCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "deleting card")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cardHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	card, err := h.cardService.MarkPaid(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "marking card paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card, time.Now().UTC()))
}

func (h *cardHandler) reopen(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	card, err := h.cardService.Reopen(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "reopening card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card, time.Now().UTC()))
}
