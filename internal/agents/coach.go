package agents

import (
	"context"
	"strings"

	"github.com/vitracka/concierge/internal/domain"
)

// BannedShameWords is the fixed list of shame-coded words the coach
// must never emit, regardless of style or adherence.
var BannedShameWords = []string{
	"failed", "failure", "cheated", "fell off track", "should have",
	"lazy", "weak", "blew it", "no excuses", "no willpower",
}

// setbackSignals mark a turn where the user reports slipping; the coach
// reframes instead of judging, and checks for under-eating on GLP-1.
var setbackSignals = []string{
	"slipped", "setback", "went over", "off plan", "off track",
	"didn't stick", "gave in", "bad day", "bad week", "missed my",
	"barely ate", "not hungry at all", "couldn't finish",
}

// CoachCompanion produces the adaptive wellness reply: tone follows the
// stored coaching style, setbacks are reframed shame-free, and GLP-1
// users get nutrient-quality framing with an under-eating check.
type CoachCompanion struct{}

// NewCoachCompanion creates the coach companion agent.
func NewCoachCompanion() *CoachCompanion { return &CoachCompanion{} }

// Type identifies the agent.
func (a *CoachCompanion) Type() domain.AgentType { return domain.AgentCoachCompanion }

// Handle builds the coaching content for one turn.
func (a *CoachCompanion) Handle(_ context.Context, message string, profile *domain.UserSupportProfile, actx *domain.AgentContext) (Result, error) {
	style := profile.Style()
	lowered := strings.ToLower(message)
	setback := containsAny(lowered, setbackSignals) || recentSetback(actx)

	var b strings.Builder
	switch {
	case setback:
		b.WriteString(setbackOpeners[style])
	default:
		b.WriteString(styleOpeners[style])
	}

	underEatingCheck := false
	if profile != nil && profile.OnGLP1 {
		b.WriteString(" Since appetite can run low on your medication, let's focus on nutrient-dense foods and protein first.")
		if setback || mentionsLowIntake(lowered) {
			underEatingCheck = true
			b.WriteString(" Quick check-in: have you been able to eat enough today? Very small intake over several days is worth mentioning to your care team.")
		}
	}

	switch style {
	case domain.StylePragmatic:
		b.WriteString(" Pick one concrete adjustment for the next 24 hours and we'll review how it lands.")
	case domain.StyleUpbeat:
		b.WriteString(" You've got this, and I'm cheering for every small win!")
	case domain.StyleStructured:
		b.WriteString(" Let's slot one small step into today's plan and keep the routine steady.")
	default:
		b.WriteString(" Small steps count, and you're allowed to go at your own pace.")
	}

	content := b.String()
	meta := map[string]string{"style": string(style)}
	if setback {
		meta["reframed_setback"] = "true"
	}
	if underEatingCheck {
		meta["under_eating_check"] = "true"
		meta["requires_follow_up"] = "true"
	}
	return Result{Content: content, Metadata: meta}, nil
}

var styleOpeners = map[domain.CoachingStyle]string{
	domain.StyleGentle:     "Thanks for checking in, it's good to hear from you.",
	domain.StylePragmatic:  "Good, let's look at where things stand.",
	domain.StyleUpbeat:     "Hey, great to see you back!",
	domain.StyleStructured: "Welcome back. Here's where we are in the plan.",
}

var setbackOpeners = map[domain.CoachingStyle]string{
	domain.StyleGentle:     "Thank you for being honest about a tough stretch. Progress isn't linear, and this is part of building new habits.",
	domain.StylePragmatic:  "Okay, a rough patch is data, not a verdict. Let's learn from it and adjust the plan.",
	domain.StyleUpbeat:     "Hey, one tough stretch doesn't undo your momentum. Let's find the next win!",
	domain.StyleStructured: "Noted. We'll fold this into the plan and try a different approach for the coming days.",
}

// recentSetback looks for setback language in the last few user entries.
func recentSetback(actx *domain.AgentContext) bool {
	if actx == nil {
		return false
	}
	history := actx.MessageHistory
	checked := 0
	for i := len(history) - 1; i >= 0 && checked < 3; i-- {
		if history[i].Sender != domain.SenderUser {
			continue
		}
		checked++
		if containsAny(strings.ToLower(history[i].Content), setbackSignals) {
			return true
		}
	}
	return false
}

func mentionsLowIntake(lowered string) bool {
	return containsAny(lowered, []string{"not hungry", "barely ate", "no appetite", "couldn't eat"})
}

func containsAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}
