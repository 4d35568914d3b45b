package domain

import "time"

// SafetyProfile carries the per-user risk picture consulted by the
// safety sentinel and stored alongside the support profile.
type SafetyProfile struct {
	RiskFactors         []string   `json:"risk_factors,omitempty"`
	TriggerWords        []string   `json:"trigger_words,omitempty"`
	LastInterventionAt  *time.Time `json:"last_intervention_at,omitempty"`
	InterventionCount   int        `json:"intervention_count"`
	ClinicianEscalation bool       `json:"clinician_escalation"`
}

// UserSupportProfile is the read-only profile record keyed by user ID.
// The orchestrator never mutates it.
type UserSupportProfile struct {
	UserID                 string                 `json:"user_id"`
	GoalType               GoalType               `json:"goal_type"`
	CoachingStyle          CoachingStyle          `json:"coaching_style"`
	GamificationPreference GamificationPreference `json:"gamification_preference"`
	NotificationsEnabled   bool                   `json:"notifications_enabled"`
	OnGLP1                 bool                   `json:"on_glp1"`
	UnderClinicianGuidance bool                   `json:"under_clinician_guidance"`
	Safety                 SafetyProfile          `json:"safety"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// Clone returns a deep copy of the profile.
func (p *UserSupportProfile) Clone() *UserSupportProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Safety.RiskFactors = append([]string(nil), p.Safety.RiskFactors...)
	cp.Safety.TriggerWords = append([]string(nil), p.Safety.TriggerWords...)
	if p.Safety.LastInterventionAt != nil {
		t := *p.Safety.LastInterventionAt
		cp.Safety.LastInterventionAt = &t
	}
	return &cp
}

// Style returns the stored coaching style, defaulting to gentle when
// the profile is missing or unset.
func (p *UserSupportProfile) Style() CoachingStyle {
	if p == nil || p.CoachingStyle == "" {
		return StyleGentle
	}
	return p.CoachingStyle
}
