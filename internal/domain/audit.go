package domain

import "time"

// DataClassification labels audit records for retention handling.
type DataClassification string

const (
	ClassificationRestricted DataClassification = "restricted"
	ClassificationInternal   DataClassification = "internal"
)

// Retention periods applied by the audit repository. Safety records are
// kept for multiple years; operational records are short-lived.
const (
	RetentionSafety      = 7 * 365 * 24 * time.Hour
	RetentionOperational = 90 * 24 * time.Hour
)

// SafetyAuditRecord is written once per sentinel intervention.
type SafetyAuditRecord struct {
	AuditID          string          `json:"audit_id"`
	UserID           string          `json:"user_id"`
	TriggerType      TriggerType     `json:"trigger_type"`
	TriggerContent   string          `json:"trigger_content"`
	AgentResponse    string          `json:"agent_response"`
	EscalationLevel  EscalationLevel `json:"escalation_level"`
	AdminNotified    bool            `json:"admin_notified"`
	FollowUpRequired bool            `json:"follow_up_required"`
	Timestamp        time.Time       `json:"timestamp"`
}

// OperationalAuditRecord covers non-safety audit events from other flows.
type OperationalAuditRecord struct {
	AuditID             string             `json:"audit_id"`
	EventType           string             `json:"event_type"`
	Severity            string             `json:"severity"`
	Action              string             `json:"action"`
	Description         string             `json:"description"`
	Metadata            map[string]string  `json:"metadata,omitempty"`
	IsSafetyRelated     bool               `json:"is_safety_related"`
	RequiresAdminReview bool               `json:"requires_admin_review"`
	DataClassification  DataClassification `json:"data_classification"`
	RetentionPeriod     time.Duration      `json:"retention_period"`
	Timestamp           time.Time          `json:"timestamp"`
}
