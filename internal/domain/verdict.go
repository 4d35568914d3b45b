package domain

// TriggerMatch is one classified hit against a trigger-phrase set.
type TriggerMatch struct {
	Type   TriggerType
	Level  EscalationLevel
	Phrase string
}

// SentinelVerdict is the safety sentinel's evaluation of one message.
type SentinelVerdict struct {
	IsIntervention            bool            `json:"is_intervention"`
	TriggerType               TriggerType     `json:"trigger_type,omitempty"`
	EscalationLevel           EscalationLevel `json:"escalation_level,omitempty"`
	Response                  string          `json:"response"`
	AdminNotificationRequired bool            `json:"admin_notification_required"`
	RequiresFollowUp          bool            `json:"requires_follow_up"`
}

// VetoVerdict is the sentinel's judgement of a composed candidate reply.
type VetoVerdict struct {
	ShouldVeto          bool   `json:"should_veto"`
	VetoReason          string `json:"veto_reason,omitempty"`
	AlternativeResponse string `json:"alternative_response,omitempty"`
}
