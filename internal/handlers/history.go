package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solar_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; must be a positive integer"
	errRangeInvalid = "'from' must be <= 'to'"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseRange reads optional 'from'/'to' query params, writing a 400 on failure.
// A date-only 'to' is treated as end-of-day inclusive.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return time.Time{}, time.Time{}, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return time.Time{}, time.Time{}, false
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// @Summary      Prediction history
// @Description  Newest first. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is end-of-day inclusive.
// @Tags         efficiency
// @Produce      json
// @Param        from   query   string  false  "Start of range"  example(2025-08-01)
// @Param        to     query   string  false  "End of range"    example(2025-08-31)
// @Param        limit  query   int     false  "Max records (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, predictions"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/efficiency/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	var limit int
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = v
	}
	recs, err := h.services.History.List(c.Request.Context(), service.HistoryFilter{From: from, To: to, Limit: limit})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load history", "history_list_failed", err,
			"from", from, "to", to, "limit", limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(recs),
		"predictions": recs,
	})
}

// @Summary      List alerts
// @Description  Oldest first. Same date formats as the history endpoint.
// @Tags         alerts
// @Produce      json
// @Param        from      query   string  false  "Start of range"  example(2025-08-01)
// @Param        to        query   string  false  "End of range"    example(2025-08-31)
// @Param        severity  query   string  false  "Alert severity"  Enums(info,warning,critical)
// @Success      200       {object}  map[string]interface{}  "count, alerts"
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) getAlerts(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	severity := c.Query("severity")
	events, err := h.services.Alerts(c.Request.Context(), service.AlertFilter{From: from, To: to, Severity: severity})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSeverity) || errors.Is(err, service.ErrInvalidTimeRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load alerts", "alerts_list_failed", err,
			"from", from, "to", to, "severity", severity)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"alerts": events,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
