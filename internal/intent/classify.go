// Package intent maps a user message to the specialist agents that
// should handle it. Classification is a pure function so the routing
// rules are testable apart from the orchestration loop.
package intent

import (
	"strings"

	"github.com/vitracka/concierge/internal/domain"
)

// keywordRules maps specialist agents to the phrases that select them.
// Matching is case-insensitive substring matching.
var keywordRules = map[domain.AgentType][]string{
	domain.AgentNutritionScout: {
		"snack", "recipe", "meal idea", "protein", "nutrition",
		"food", "eat healthy", "healthy eating", "grocery", "hungry",
	},
	domain.AgentProgressAnalyst: {
		"progress", "trend", "weigh", "weight", "plateau",
		"how am i doing", "stats", "average",
	},
	domain.AgentPlanLogging: {
		"log", "track", "record", "i ate", "i had", "i walked",
		"i exercised", "workout done",
	},
	domain.AgentGameMaster: {
		"streak", "points", "badge", "challenge", "level up",
		"achievement", "leaderboard",
	},
	domain.AgentMedicalBoundaries: {
		"doctor", "medication", "medicine", "diagnose", "diagnosis",
		"prescri", "dosage", "dose", "glp-1", "ozempic", "wegovy",
		"symptom", "side effect",
	},
	domain.AgentToneManager: {
		"sad", "frustrated", "stressed", "anxious", "overwhelmed",
		"discouraged", "tired of", "giving up",
	},
}

// Classify returns the ordered, non-empty set of specialists for a
// message. The coach companion is always included; users without a
// stored profile additionally get the onboarding builder. Order follows
// the fixed composition order in domain.AllAgentTypes.
func Classify(message string, hasProfile bool) []domain.AgentType {
	lowered := strings.ToLower(message)

	selected := map[domain.AgentType]bool{
		domain.AgentCoachCompanion: true,
	}
	for agent, phrases := range keywordRules {
		for _, phrase := range phrases {
			if strings.Contains(lowered, phrase) {
				selected[agent] = true
				break
			}
		}
	}
	if !hasProfile {
		selected[domain.AgentOnboardingBuilder] = true
	}

	ordered := make([]domain.AgentType, 0, len(selected))
	for _, agent := range domain.AllAgentTypes {
		if selected[agent] {
			ordered = append(ordered, agent)
		}
	}
	return ordered
}
