package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/middleware"
)

// reportingHandler handles HTTP requests for read-only aggregations.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/dashboard", h.getDashboard)
	}
}

func parsePeriod(params dto.SummaryParams) (from *time.Time, to *time.Time, err error) {
	if params.DateFrom != nil {
		t, perr := dto.ParseDate(*params.DateFrom)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if params.DateTo != nil {
		t, perr := dto.ParseDate(*params.DateTo)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if !bindQueryOrAbort(c, logger, &params) {
		return
	}
	from, to, err := parsePeriod(params)
	if err != nil {
		respondServiceError(c, logger, err, "parsing summary period")
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "getting summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if !bindQueryOrAbort(c, logger, &params) {
		return
	}
	from, to, err := parsePeriod(params)
	if err != nil {
		respondServiceError(c, logger, err, "parsing dashboard period")
		return
	}

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "getting dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
