// Package agents implements the specialist agents invoked by the
// concierge orchestrator. Each specialist owns one narrow capability
// and never returns empty content when invoked.
package agents

import (
	"context"

	"github.com/vitracka/concierge/internal/domain"
)

// Result is one specialist's contribution to a turn.
type Result struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Specialist is the shared agent contract. Implementations tolerate
// malformed input (nil profile, nil context, empty message) without
// panicking, and must not emit text that would match a safety
// trigger-phrase set; the sentinel's veto is the enforcement backstop.
type Specialist interface {
	Type() domain.AgentType
	Handle(ctx context.Context, message string, profile *domain.UserSupportProfile, actx *domain.AgentContext) (Result, error)
}

// Registry maps agent types to their implementations.
type Registry map[domain.AgentType]Specialist

// NewRegistry builds the fixed specialist set.
func NewRegistry(nutritionSrc NutritionSource, progressSrc ProgressSource) Registry {
	specialists := []Specialist{
		NewCoachCompanion(),
		NewMedicalBoundaries(),
		NewNutritionScout(nutritionSrc),
		NewProgressAnalyst(progressSrc),
		NewGameMaster(),
		NewToneManager(),
		NewPlanLogging(),
		NewOnboardingBuilder(),
	}
	reg := make(Registry, len(specialists))
	for _, s := range specialists {
		reg[s.Type()] = s
	}
	return reg
}
