package agents

import (
	"context"

	"github.com/vitracka/concierge/internal/domain"
)

// OnboardingBuilder collects the preferences a new user hasn't set yet.
// It is selected for every turn until a stored profile exists.
type OnboardingBuilder struct{}

// NewOnboardingBuilder creates the onboarding agent.
func NewOnboardingBuilder() *OnboardingBuilder { return &OnboardingBuilder{} }

// Type identifies the agent.
func (a *OnboardingBuilder) Type() domain.AgentType { return domain.AgentOnboardingBuilder }

// Handle asks for the missing profile basics.
func (a *OnboardingBuilder) Handle(_ context.Context, _ string, profile *domain.UserSupportProfile, _ *domain.AgentContext) (Result, error) {
	if profile != nil {
		return Result{
			Content:  "Your profile is set up. You can change your coaching style any time in settings.",
			Metadata: map[string]string{"profile_exists": "true"},
		}, nil
	}
	return Result{
		Content: "To tailor things for you, tell me two quick things: are you working toward losing, maintaining, or transitioning your weight, and would you like my coaching gentle, pragmatic, upbeat, or structured?",
		Metadata: map[string]string{"profile_exists": "false"},
	}, nil
}
