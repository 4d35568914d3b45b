// Package v1 provides the HTTP handlers for the concierge API.
package v1

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitracka/concierge/internal/domain"
	"github.com/vitracka/concierge/internal/hub"
	"github.com/vitracka/concierge/internal/orchestrator"
)

// AuditReader lists safety audit records for introspection.
type AuditReader interface {
	ListSafetyAudit(ctx context.Context, userID string, limit int) ([]domain.SafetyAuditRecord, error)
}

// Handler handles HTTP requests.
type Handler struct {
	concierge *orchestrator.Concierge
	audit     AuditReader
	hub       *hub.Hub
}

// NewHandler creates a new handler. Audit and hub may be nil; the
// corresponding endpoints then degrade gracefully.
func NewHandler(concierge *orchestrator.Concierge, audit AuditReader, h *hub.Hub) *Handler {
	return &Handler{
		concierge: concierge,
		audit:     audit,
		hub:       h,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/concierge/message", h.PostMessage)
	e.GET("/v1/sessions/:session_id/context", h.GetSessionContext)
	e.GET("/v1/sessions/:session_id/audit", h.GetSessionAudit)
	e.GET("/v1/ws", h.ServeWS)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "concierge",
		"version": "1.0.0",
	})
}
