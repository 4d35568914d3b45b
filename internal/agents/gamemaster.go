package agents

import (
	"context"
	"strconv"

	"github.com/vitracka/concierge/internal/domain"
)

// GameMaster scales streak and reward framing to the user's
// gamification preference.
type GameMaster struct{}

// NewGameMaster creates the game master agent.
func NewGameMaster() *GameMaster { return &GameMaster{} }

// Type identifies the agent.
func (a *GameMaster) Type() domain.AgentType { return domain.AgentGameMaster }

// Handle produces reward framing for the turn.
func (a *GameMaster) Handle(_ context.Context, _ string, profile *domain.UserSupportProfile, actx *domain.AgentContext) (Result, error) {
	pref := domain.GamificationModerate
	if profile != nil && profile.GamificationPreference != "" {
		pref = profile.GamificationPreference
	}

	turns := 0
	if actx != nil {
		turns = len(actx.MessageHistory) / 2
	}

	var content string
	switch pref {
	case domain.GamificationHigh:
		content = "Check-in logged. Your streak keeps climbing, and you're closing in on your next badge. Keep stacking those points!"
	case domain.GamificationLow:
		content = "Noted, another consistent day on the books."
	default:
		content = "Nice, that's another check-in toward your weekly streak."
	}

	return Result{
		Content:  content,
		Metadata: map[string]string{"preference": string(pref), "session_turns": strconv.Itoa(turns)},
	}, nil
}
