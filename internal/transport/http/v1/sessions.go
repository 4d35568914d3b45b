package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetSessionContext returns the stored context for a session.
// GET /v1/sessions/:session_id/context
func (h *Handler) GetSessionContext(c echo.Context) error {
	sessionID := c.Param("session_id")
	actx := h.concierge.GetSessionContext(sessionID)
	if actx == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, actx)
}

// GetSessionAudit returns the safety audit records for the session's
// user, newest first.
// GET /v1/sessions/:session_id/audit
func (h *Handler) GetSessionAudit(c echo.Context) error {
	sessionID := c.Param("session_id")
	actx := h.concierge.GetSessionContext(sessionID)
	if actx == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	if h.audit == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"records": []struct{}{}})
	}

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	records, err := h.audit.ListSafetyAudit(c.Request().Context(), actx.UserID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"records": records})
}
