package v1

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitracka/concierge/internal/adapter/nutrition"
	"github.com/vitracka/concierge/internal/adapter/progress"
	"github.com/vitracka/concierge/internal/agents"
	"github.com/vitracka/concierge/internal/domain"
	"github.com/vitracka/concierge/internal/orchestrator"
	"github.com/vitracka/concierge/internal/safety"
	"github.com/vitracka/concierge/internal/session"
)

type allowAllPolicy struct{}

func (allowAllPolicy) Evaluate(_ context.Context, _ interface{}) (string, string, error) {
	return "allow", "", nil
}

type staticProfiles struct {
	profiles map[string]*domain.UserSupportProfile
}

func (s *staticProfiles) GetProfile(_ context.Context, userID string) (*domain.UserSupportProfile, error) {
	return s.profiles[userID], nil
}

type staticAudit struct {
	records []domain.SafetyAuditRecord
	err     error
}

func (s *staticAudit) ListSafetyAudit(_ context.Context, userID string, _ int) ([]domain.SafetyAuditRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.SafetyAuditRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// newTestHandler wires a handler around a real orchestrator with
// in-memory collaborators.
func newTestHandler(t *testing.T, audit AuditReader) (*Handler, *echo.Echo) {
	t.Helper()

	sentinel, err := safety.NewSentinel(nil, allowAllPolicy{})
	if err != nil {
		t.Fatalf("NewSentinel failed: %v", err)
	}
	profiles := &staticProfiles{profiles: map[string]*domain.UserSupportProfile{
		"u1": {UserID: "u1", GoalType: domain.GoalLoss, CoachingStyle: domain.StyleGentle},
	}}
	concierge, err := orchestrator.New(
		sentinel,
		agents.NewRegistry(nutrition.NewClient(0), progress.NewClient()),
		session.NewMemoryStore(time.Hour),
		profiles,
		nil,
		time.Second,
	)
	if err != nil {
		t.Fatalf("orchestrator.New failed: %v", err)
	}

	h := NewHandler(concierge, audit, nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}
