package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"maize_maturity"
	"maize_maturity/internal/repository"
	"maize_maturity/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRange       = "'from' must be <= 'to'"
	errLogsFailed  = "failed to load logs"
	errLogDisabled = "event log unavailable"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, maize_maturity.ErrorResponse{Error: msg, Status: maize_maturity.StatusError})
}

// @Summary      List recorded prediction requests
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range"    example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(PREDICTION,REJECTED,UNAVAILABLE,ERROR)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  maize_maturity.ErrorResponse
// @Failure      500   {object}  maize_maturity.ErrorResponse
// @Failure      503   {object}  maize_maturity.ErrorResponse
// @Router       /logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	var (
		from, to  time.Time
		eventType = strings.ToUpper(strings.TrimSpace(c.Query("type")))
		err       error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			badRequest(c, errFromInvalid)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			badRequest(c, errToInvalid)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		badRequest(c, errRange)
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), service.LogFilter{
		From: from,
		To:   to,
		Type: eventType,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEventLogDisabled) {
			c.JSON(http.StatusServiceUnavailable, maize_maturity.ErrorResponse{
				Error:  errLogDisabled,
				Status: maize_maturity.StatusUnavailable,
			})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, maize_maturity.ErrorResponse{
			Error:  errLogsFailed,
			Status: maize_maturity.StatusError,
		}, "logs_list_failed", err, "from", from, "to", to, "type", eventType)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD", normalized to UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
