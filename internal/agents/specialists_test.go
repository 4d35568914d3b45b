package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vitracka/concierge/internal/adapter/nutrition"
	"github.com/vitracka/concierge/internal/adapter/progress"
	"github.com/vitracka/concierge/internal/domain"
)

type stubNutrition struct {
	items []nutrition.Item
	err   error
}

func (s *stubNutrition) Search(_ context.Context, _ string) ([]nutrition.Item, error) {
	return s.items, s.err
}

type stubProgress struct {
	trend progress.Trend
	err   error
}

func (s *stubProgress) RecentTrend(_ context.Context, _ string) (progress.Trend, error) {
	return s.trend, s.err
}

func TestNutritionScoutComposesResults(t *testing.T) {
	scout := NewNutritionScout(&stubNutrition{items: []nutrition.Item{
		{Name: "greek yogurt", Calories: 120, ProteinGrams: 15},
		{Name: "almonds", Calories: 160, ProteinGrams: 6},
	}})
	result, err := scout.Handle(context.Background(), "snack ideas with greek yogurt", nil, nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(result.Content, "greek yogurt (120 cal, 15g protein)") {
		t.Fatalf("expected item detail in %q", result.Content)
	}
	if result.Metadata["results"] != "2" {
		t.Fatalf("expected 2 results, got %s", result.Metadata["results"])
	}
}

func TestNutritionScoutDegradesOnFailure(t *testing.T) {
	cases := map[string]NutritionSource{
		"nil source":   nil,
		"source error": &stubNutrition{err: errors.New("lookup down")},
		"no results":   &stubNutrition{},
	}
	for name, source := range cases {
		scout := NewNutritionScout(source)
		result, err := scout.Handle(context.Background(), "snacks", nil, nil)
		if err != nil {
			t.Fatalf("%s: Handle failed: %v", name, err)
		}
		if result.Content == "" {
			t.Fatalf("%s: expected fallback content", name)
		}
	}
}

func TestNutritionScoutAddsGLP1Framing(t *testing.T) {
	scout := NewNutritionScout(&stubNutrition{items: []nutrition.Item{{Name: "greek yogurt", Calories: 120, ProteinGrams: 15}}})
	result, err := scout.Handle(context.Background(), "snacks", profileWith(domain.StyleGentle, true), nil)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(result.Content, "protein-dense") {
		t.Fatalf("expected appetite framing in %q", result.Content)
	}
}

func TestProgressAnalystSummarizesTrend(t *testing.T) {
	analyst := NewProgressAnalyst(&stubProgress{trend: progress.Trend{
		RollingAverageKg: 82.4,
		DeltaKg:          -1.5,
		Entries:          9,
		AdherenceRate:    1,
	}})
	actx := domain.NewAgentContext("sess_1", "u1")
	result, err := analyst.Handle(context.Background(), "how am I doing?", nil, actx)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(result.Content, "82.4 kg") || !strings.Contains(result.Content, "100%") {
		t.Fatalf("unexpected summary %q", result.Content)
	}
	if !strings.Contains(result.Content, "1.5 kg down") {
		t.Fatalf("expected downward delta in %q", result.Content)
	}
	if result.Metadata["adherence"] != "1.00" {
		t.Fatalf("expected adherence 1.00, got %s", result.Metadata["adherence"])
	}
}

func TestProgressAnalystFallsBackWithoutData(t *testing.T) {
	analyst := NewProgressAnalyst(&stubProgress{})
	actx := domain.NewAgentContext("sess_1", "u1")
	result, err := analyst.Handle(context.Background(), "how am I doing?", nil, actx)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(result.Content, "weigh-ins") {
		t.Fatalf("expected no-data fallback, got %q", result.Content)
	}
}

func TestGameMasterScalesToPreference(t *testing.T) {
	gm := NewGameMaster()
	high, _ := gm.Handle(context.Background(), "done", &domain.UserSupportProfile{GamificationPreference: domain.GamificationHigh}, nil)
	low, _ := gm.Handle(context.Background(), "done", &domain.UserSupportProfile{GamificationPreference: domain.GamificationLow}, nil)
	def, _ := gm.Handle(context.Background(), "done", nil, nil)

	if !strings.Contains(high.Content, "badge") {
		t.Fatalf("high preference should mention rewards, got %q", high.Content)
	}
	if strings.Contains(low.Content, "badge") || strings.Contains(low.Content, "points") {
		t.Fatalf("low preference should stay quiet, got %q", low.Content)
	}
	if def.Metadata["preference"] != string(domain.GamificationModerate) {
		t.Fatalf("missing profile should default to moderate, got %s", def.Metadata["preference"])
	}
}

func TestGameMasterCountsSessionTurns(t *testing.T) {
	gm := NewGameMaster()
	actx := domain.NewAgentContext("sess_1", "u1")
	actx.AppendTurn("hi", "hello", actx.LastInteractionTime)
	actx.AppendTurn("still here", "good", actx.LastInteractionTime)

	result, err := gm.Handle(context.Background(), "done", nil, actx)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.Metadata["session_turns"] != "2" {
		t.Fatalf("expected 2 turns, got %s", result.Metadata["session_turns"])
	}
}

func TestToneManagerDetectsStrain(t *testing.T) {
	tone := NewToneManager()
	strained, _ := tone.Handle(context.Background(), "I'm so frustrated and tired of this", nil, nil)
	calm, _ := tone.Handle(context.Background(), "what's for lunch", nil, nil)

	if strained.Metadata["strain_detected"] != "true" {
		t.Fatalf("expected strain detection, got %v", strained.Metadata)
	}
	if calm.Metadata["strain_detected"] != "false" {
		t.Fatalf("expected no strain, got %v", calm.Metadata)
	}
}

func TestPlanLoggingClassifiesLogKind(t *testing.T) {
	pl := NewPlanLogging()
	cases := map[string]string{
		"I ate a salad for lunch":  "meal",
		"went for a 30 minute run": "activity",
		"log this please":          "entry",
	}
	for message, want := range cases {
		result, err := pl.Handle(context.Background(), message, nil, nil)
		if err != nil {
			t.Fatalf("Handle(%q) failed: %v", message, err)
		}
		if result.Metadata["log_kind"] != want {
			t.Fatalf("message %q: expected kind %s, got %s", message, want, result.Metadata["log_kind"])
		}
	}
}

func TestOnboardingAsksUntilProfileExists(t *testing.T) {
	ob := NewOnboardingBuilder()

	fresh, _ := ob.Handle(context.Background(), "hi", nil, nil)
	if fresh.Metadata["profile_exists"] != "false" {
		t.Fatalf("expected onboarding questions for new user, got %v", fresh.Metadata)
	}
	if !strings.Contains(fresh.Content, "losing, maintaining, or transitioning") {
		t.Fatalf("expected goal question in %q", fresh.Content)
	}

	returning, _ := ob.Handle(context.Background(), "hi", profileWith(domain.StyleUpbeat, false), nil)
	if returning.Metadata["profile_exists"] != "true" {
		t.Fatalf("expected settled profile, got %v", returning.Metadata)
	}
}
