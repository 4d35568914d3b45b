package v1

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitracka/concierge/internal/domain"
)

// PostMessage processes one user turn.
// POST /v1/concierge/message
func (h *Handler) PostMessage(c echo.Context) error {
	var req domain.AgentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	// Availability over strict rejection: missing identifiers are
	// filled in so the user still gets a reply.
	if req.SessionID == "" {
		req.SessionID = "sess_" + uuid.New().String()[:8]
	}

	resp, err := h.concierge.ProcessRequest(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}
