package domain

// AgentRequest is the single input to the concierge orchestrator.
// Context is optional: when absent the orchestrator falls back to the
// session store, then to a fresh context.
type AgentRequest struct {
	UserID    string        `json:"user_id"`
	Message   string        `json:"message"`
	SessionID string        `json:"session_id"`
	Context   *AgentContext `json:"context,omitempty"`
}

// AgentResponse is the orchestrator's composed output for one turn.
type AgentResponse struct {
	SessionID        string        `json:"session_id"`
	InvolvedAgents   []AgentType   `json:"involved_agents"`
	FinalResponse    string        `json:"final_response"`
	SafetyOverride   bool          `json:"safety_override"`
	RequiresFollowUp bool          `json:"requires_follow_up"`
	Context          *AgentContext `json:"context"`
}
