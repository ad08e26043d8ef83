package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tracepulse/internal/domain/dto"
	"github.com/guttosm/tracepulse/internal/service"
)

// Handler provides HTTP handlers for the clean-trade endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the service layer for data access
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.TradeQueryService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.TradeQueryService): Service dependency used for querying clean trades.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.TradeQueryService) *Handler {
	return &Handler{svc: svc}
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// parseDateParam reads an optional YYYY-MM-DD query parameter. A
// missing parameter yields a nil bound.
func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format, expected YYYY-MM-DD", name)
	}
	return &parsed, nil
}

// GetTrades handles GET /api/v1/trades requests.
//
// Query Parameters:
//   - cusip (string, required): Bond CUSIP identifier (e.g., "594918AB5").
//   - start_date (string, optional): Minimum execution date in YYYY-MM-DD format.
//   - end_date (string, optional): Maximum execution date in YYYY-MM-DD format.
//   - limit (int, optional): Maximum rows returned (default 100, max 1000).
//
// Responses:
//   - 200 OK: Returns the list of clean trades.
//   - 400 Bad Request: Missing or invalid query parameters.
//   - 404 Not Found: No clean trades for the given CUSIP/date window.
//   - 500 Internal Server Error: Failure in repository or database layer.
//
// GetTrades godoc
// @Summary      List clean trades by CUSIP
// @Description  Returns the reconciled as-executed trades for the given CUSIP and optional date window
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        cusip       query     string  true   "Bond CUSIP"                           example(594918AB5)
// @Param        start_date  query     string  false  "Start date in YYYY-MM-DD"             example(2013-03-01)
// @Param        end_date    query     string  false  "End date in YYYY-MM-DD"               example(2013-03-31)
// @Param        limit       query     int     false  "Maximum rows (default 100, max 1000)" example(100)
// @Success      200         {array}   dto.TradeResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404         {object}  dto.ErrorResponse  "Not Found"
// @Failure      500         {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/trades [get]
func (h *Handler) GetTrades(c *gin.Context) {
	// ─── Validate "cusip" param ───────────────────────────────
	cusip := strings.ToUpper(strings.TrimSpace(c.Query("cusip")))
	if cusip == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("cusip is required", nil))
		return
	}

	// ─── Parse optional date bounds ───────────────────────────
	startDate, err := parseDateParam(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), nil))
		return
	}
	endDate, err := parseDateParam(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), nil))
		return
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("end_date must not precede start_date", nil))
		return
	}

	// ─── Parse optional "limit" param ─────────────────────────
	limit := defaultListLimit
	if s := c.Query("limit"); s != "" {
		n, convErr := strconv.Atoi(s)
		if convErr != nil || n < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be a positive integer", convErr))
			return
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		limit = n
	}

	// ─── Query service (with request context) ─────────────────
	trades, err := h.svc.ListTrades(c.Request.Context(), cusip, startDate, endDate, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch clean trades", err))
		return
	}
	if len(trades) == 0 {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	// ─── Build and return response DTOs ───────────────────────
	resp := make([]dto.TradeResponse, 0, len(trades))
	for _, trade := range trades {
		resp = append(resp, dto.NewTradeResponse(trade))
	}

	c.JSON(http.StatusOK, resp)
}

// GetTradeSummary handles GET /api/v1/trades/summary requests.
//
// Query Parameters:
//   - cusip (string, required): Bond CUSIP identifier (e.g., "594918AB5").
//   - start_date (string, optional): Minimum execution date in YYYY-MM-DD format.
//   - end_date (string, optional): Maximum execution date in YYYY-MM-DD format.
//
// Responses:
//   - 200 OK: Returns TradeSummaryResponse with count, total volume, max price and max daily volume.
//   - 400 Bad Request: Missing or invalid query parameters.
//   - 404 Not Found: No clean trades for the given CUSIP/date window.
//   - 500 Internal Server Error: Failure in repository or database layer.
//
// GetTradeSummary godoc
// @Summary      Get trade summary by CUSIP
// @Description  Returns trade count, total volume, max price and max daily volume for the given CUSIP over an optional date window
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        cusip       query     string  true   "Bond CUSIP"               example(594918AB5)
// @Param        start_date  query     string  false  "Start date in YYYY-MM-DD" example(2013-03-01)
// @Param        end_date    query     string  false  "End date in YYYY-MM-DD"   example(2013-03-31)
// @Success      200         {object}  dto.TradeSummaryResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404         {object}  dto.ErrorResponse         "Not Found"
// @Failure      500         {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/trades/summary [get]
func (h *Handler) GetTradeSummary(c *gin.Context) {
	// ─── Validate "cusip" param ───────────────────────────────
	cusip := strings.ToUpper(strings.TrimSpace(c.Query("cusip")))
	if cusip == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("cusip is required", nil))
		return
	}

	// ─── Parse optional date bounds ───────────────────────────
	startDate, err := parseDateParam(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), nil))
		return
	}
	endDate, err := parseDateParam(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), nil))
		return
	}
	if startDate == nil && endDate == nil {
		// Default: last 7 days, ending yesterday
		today := time.Now().UTC()
		yday := today.AddDate(0, 0, -1)
		start := yday.AddDate(0, 0, -6)
		// normalize to date-only (strip time)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		yday = time.Date(yday.Year(), yday.Month(), yday.Day(), 0, 0, 0, 0, time.UTC)
		startDate = &start
		endDate = &yday
	}

	// ─── Query service (with request context) ─────────────────
	summary, err := h.svc.GetTradeSummary(c.Request.Context(), cusip, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch trade summary", err))
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	// ─── Build and return response DTO ────────────────────────
	c.JSON(http.StatusOK, dto.NewTradeSummaryResponse(*summary))
}
