package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitracka/concierge/internal/adapter/nutrition"
	"github.com/vitracka/concierge/internal/domain"
)

// NutritionSource is the lookup collaborator the scout queries.
type NutritionSource = nutrition.Source

// NutritionScout turns nutrition lookups into reply content.
type NutritionScout struct {
	source NutritionSource
}

// NewNutritionScout creates the nutrition scout agent.
func NewNutritionScout(source NutritionSource) *NutritionScout {
	return &NutritionScout{source: source}
}

// Type identifies the agent.
func (a *NutritionScout) Type() domain.AgentType { return domain.AgentNutritionScout }

// Handle looks up matching items and composes a short suggestion list.
// A collaborator failure degrades to a generic suggestion, never an error.
func (a *NutritionScout) Handle(ctx context.Context, message string, profile *domain.UserSupportProfile, _ *domain.AgentContext) (Result, error) {
	const fallback = "Some reliable picks: greek yogurt, fruit with nut butter, or veggies with hummus."
	if a.source == nil {
		return Result{Content: fallback}, nil
	}
	items, err := a.source.Search(ctx, message)
	if err != nil || len(items) == 0 {
		return Result{Content: fallback}, nil
	}

	var b strings.Builder
	b.WriteString("A few ideas that fit: ")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (%d cal, %dg protein)", item.Name, item.Calories, item.ProteinGrams)
		if i == 2 {
			break
		}
	}
	b.WriteString(".")
	if profile != nil && profile.OnGLP1 {
		b.WriteString(" With a smaller appetite, lead with the protein-dense option.")
	}
	return Result{
		Content:  b.String(),
		Metadata: map[string]string{"results": fmt.Sprintf("%d", len(items))},
	}, nil
}
