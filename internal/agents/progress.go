package agents

import (
	"context"
	"fmt"

	"github.com/vitracka/concierge/internal/adapter/progress"
	"github.com/vitracka/concierge/internal/domain"
)

// ProgressSource is the weight-trend collaborator the analyst queries.
type ProgressSource = progress.Source

// ProgressAnalyst summarizes recent trend data into reply content.
type ProgressAnalyst struct {
	source ProgressSource
}

// NewProgressAnalyst creates the progress analyst agent.
func NewProgressAnalyst(source ProgressSource) *ProgressAnalyst {
	return &ProgressAnalyst{source: source}
}

// Type identifies the agent.
func (a *ProgressAnalyst) Type() domain.AgentType { return domain.AgentProgressAnalyst }

// Handle composes a trend summary. Missing data degrades to an
// encouraging note rather than an error.
func (a *ProgressAnalyst) Handle(ctx context.Context, _ string, profile *domain.UserSupportProfile, actx *domain.AgentContext) (Result, error) {
	const fallback = "Once a few weigh-ins are logged I can show your trend; consistency beats any single number."
	if a.source == nil || actx == nil || actx.UserID == "" {
		return Result{Content: fallback}, nil
	}
	trend, err := a.source.RecentTrend(ctx, actx.UserID)
	if err != nil || trend.Entries == 0 {
		return Result{Content: fallback}, nil
	}

	content := fmt.Sprintf(
		"Your 7-day rolling average is %.1f kg over %d entries, and you've stuck with the plan %.0f%% of days.",
		trend.RollingAverageKg, trend.Entries, trend.AdherenceRate*100,
	)
	if trend.DeltaKg < 0 {
		content += fmt.Sprintf(" That's %.1f kg down overall. Steady work.", -trend.DeltaKg)
	}
	return Result{
		Content:  content,
		Metadata: map[string]string{"adherence": fmt.Sprintf("%.2f", trend.AdherenceRate)},
	}, nil
}
