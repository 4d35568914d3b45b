// Package domain defines the core domain models for the concierge.
package domain

// AgentType identifies a specialist agent. The set is fixed at compile
// time; there is no dynamic registration.
type AgentType string

const (
	AgentSafetySentinel    AgentType = "safety_sentinel"
	AgentMedicalBoundaries AgentType = "medical_boundaries"
	AgentCoachCompanion    AgentType = "coach_companion"
	AgentProgressAnalyst   AgentType = "progress_analyst"
	AgentPlanLogging       AgentType = "plan_logging"
	AgentNutritionScout    AgentType = "nutrition_scout"
	AgentGameMaster        AgentType = "game_master"
	AgentToneManager       AgentType = "tone_manager"
	AgentOnboardingBuilder AgentType = "onboarding_builder"
)

// AllAgentTypes lists every specialist in composition order: boundary
// text first, then wellness content, then data agents, then onboarding.
var AllAgentTypes = []AgentType{
	AgentSafetySentinel,
	AgentMedicalBoundaries,
	AgentCoachCompanion,
	AgentToneManager,
	AgentNutritionScout,
	AgentProgressAnalyst,
	AgentGameMaster,
	AgentPlanLogging,
	AgentOnboardingBuilder,
}

// TriggerType classifies a safety trigger.
type TriggerType string

const (
	TriggerEatingDisorder   TriggerType = "eating_disorder"
	TriggerSelfHarm         TriggerType = "self_harm"
	TriggerDepression       TriggerType = "depression"
	TriggerMedicalEmergency TriggerType = "medical_emergency"
)

// EscalationLevel is the severity tier of a safety trigger.
type EscalationLevel string

const (
	EscalationLow      EscalationLevel = "low"
	EscalationMedium   EscalationLevel = "medium"
	EscalationHigh     EscalationLevel = "high"
	EscalationCritical EscalationLevel = "critical"
)

// escalationRank orders levels for tie-breaking; higher wins.
var escalationRank = map[EscalationLevel]int{
	EscalationLow:      1,
	EscalationMedium:   2,
	EscalationHigh:     3,
	EscalationCritical: 4,
}

// Outranks reports whether l is strictly more severe than other.
func (l EscalationLevel) Outranks(other EscalationLevel) bool {
	return escalationRank[l] > escalationRank[other]
}

// triggerRank orders trigger types for tie-breaking; higher wins.
var triggerRank = map[TriggerType]int{
	TriggerDepression:       1,
	TriggerEatingDisorder:   2,
	TriggerSelfHarm:         3,
	TriggerMedicalEmergency: 4,
}

// Outranks reports whether t takes priority over other.
func (t TriggerType) Outranks(other TriggerType) bool {
	return triggerRank[t] > triggerRank[other]
}

// CoachingStyle is the user's stored tone preference.
type CoachingStyle string

const (
	StyleGentle     CoachingStyle = "gentle"
	StylePragmatic  CoachingStyle = "pragmatic"
	StyleUpbeat     CoachingStyle = "upbeat"
	StyleStructured CoachingStyle = "structured"
)

// GoalType describes where the user is in their weight journey.
type GoalType string

const (
	GoalLoss        GoalType = "loss"
	GoalMaintenance GoalType = "maintenance"
	GoalTransition  GoalType = "transition"
)

// GamificationPreference scales competitive language in replies.
type GamificationPreference string

const (
	GamificationHigh     GamificationPreference = "high"
	GamificationModerate GamificationPreference = "moderate"
	GamificationLow      GamificationPreference = "low"
)

// Sender identifies who produced a history entry.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)
