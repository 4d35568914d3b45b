package domain

import "time"

// MessageEntry is one turn of conversation history.
type MessageEntry struct {
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentContext is the per-session conversation state. SessionID and
// UserID are immutable once the context is created; MessageHistory and
// SafetyFlags are append-only for the life of the session.
type AgentContext struct {
	SessionID           string              `json:"session_id"`
	UserID              string              `json:"user_id"`
	MessageHistory      []MessageEntry      `json:"message_history"`
	UserProfile         *UserSupportProfile `json:"user_profile,omitempty"`
	CurrentTopic        string              `json:"current_topic,omitempty"`
	LastInteractionTime time.Time           `json:"last_interaction_time"`
	SafetyFlags         []string            `json:"safety_flags"`
}

// NewAgentContext creates a fresh context for a first-turn session.
func NewAgentContext(sessionID, userID string) *AgentContext {
	return &AgentContext{
		SessionID:           sessionID,
		UserID:              userID,
		MessageHistory:      []MessageEntry{},
		SafetyFlags:         []string{},
		LastInteractionTime: time.Now(),
	}
}

// Clone returns a deep copy. The orchestrator mutates only copies so
// that snapshots handed to callers are never aliased by later turns.
func (c *AgentContext) Clone() *AgentContext {
	if c == nil {
		return nil
	}
	cp := *c
	cp.MessageHistory = make([]MessageEntry, len(c.MessageHistory))
	copy(cp.MessageHistory, c.MessageHistory)
	cp.SafetyFlags = make([]string, len(c.SafetyFlags))
	copy(cp.SafetyFlags, c.SafetyFlags)
	if c.UserProfile != nil {
		p := c.UserProfile.Clone()
		cp.UserProfile = p
	}
	return &cp
}

// AppendTurn records one user entry followed by one agent entry and
// bumps the interaction time.
func (c *AgentContext) AppendTurn(userText, agentText string, now time.Time) {
	c.MessageHistory = append(c.MessageHistory,
		MessageEntry{Sender: SenderUser, Content: userText, Timestamp: now},
		MessageEntry{Sender: SenderAgent, Content: agentText, Timestamp: now},
	)
	c.LastInteractionTime = now
}

// AddSafetyFlag appends a flag. Flags are never removed within a session.
func (c *AgentContext) AddSafetyFlag(flag string) {
	c.SafetyFlags = append(c.SafetyFlags, flag)
}
