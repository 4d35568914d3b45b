package agents

import (
	"context"
	"strings"

	"github.com/vitracka/concierge/internal/domain"
)

var strainSignals = []string{
	"sad", "frustrated", "stressed", "anxious", "overwhelmed",
	"discouraged", "tired of", "giving up", "exhausted",
}

// ToneManager adds an emotional acknowledgement when the message shows
// strain, so the composed reply doesn't open with logistics.
type ToneManager struct{}

// NewToneManager creates the tone manager agent.
func NewToneManager() *ToneManager { return &ToneManager{} }

// Type identifies the agent.
func (a *ToneManager) Type() domain.AgentType { return domain.AgentToneManager }

// Handle produces the acknowledgement line for the turn.
func (a *ToneManager) Handle(_ context.Context, message string, _ *domain.UserSupportProfile, _ *domain.AgentContext) (Result, error) {
	lowered := strings.ToLower(message)
	if containsAny(lowered, strainSignals) {
		return Result{
			Content:  "That sounds like a lot to carry right now, and it makes sense you'd feel that way.",
			Metadata: map[string]string{"strain_detected": "true"},
		}, nil
	}
	return Result{
		Content:  "Glad you're keeping the conversation going.",
		Metadata: map[string]string{"strain_detected": "false"},
	}, nil
}
