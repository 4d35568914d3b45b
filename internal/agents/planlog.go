package agents

import (
	"context"
	"strings"

	"github.com/vitracka/concierge/internal/domain"
)

// PlanLogging acknowledges meal and activity log intents with a recap.
type PlanLogging struct{}

// NewPlanLogging creates the plan-logging agent.
func NewPlanLogging() *PlanLogging { return &PlanLogging{} }

// Type identifies the agent.
func (a *PlanLogging) Type() domain.AgentType { return domain.AgentPlanLogging }

// Handle records the log intent and echoes a short recap line.
func (a *PlanLogging) Handle(_ context.Context, message string, _ *domain.UserSupportProfile, _ *domain.AgentContext) (Result, error) {
	lowered := strings.ToLower(message)
	kind := "entry"
	switch {
	case containsAny(lowered, []string{"i ate", "i had", "meal", "breakfast", "lunch", "dinner", "snack"}):
		kind = "meal"
	case containsAny(lowered, []string{"walk", "run", "gym", "workout", "exercise"}):
		kind = "activity"
	}
	return Result{
		Content:  "Logged that " + kind + " for today. Your record stays up to date.",
		Metadata: map[string]string{"log_kind": kind},
	}, nil
}
