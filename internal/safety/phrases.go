package safety

import "github.com/vitracka/concierge/internal/domain"

// triggerPhrase is one pre-classified entry in a trigger-phrase set.
// Matching is case-insensitive substring matching against the message.
type triggerPhrase struct {
	phrase string
	level  domain.EscalationLevel
}

// Trigger-phrase sets, one per trigger type. Critical is reserved for
// explicit self-harm phrasing.
var triggerSets = map[domain.TriggerType][]triggerPhrase{
	domain.TriggerEatingDisorder: {
		{phrase: "purging after meals", level: domain.EscalationHigh},
		{phrase: "purge", level: domain.EscalationHigh},
		{phrase: "throwing up after eating", level: domain.EscalationHigh},
		{phrase: "make myself sick", level: domain.EscalationHigh},
		{phrase: "laxatives to lose", level: domain.EscalationHigh},
		{phrase: "binge and then", level: domain.EscalationHigh},
		{phrase: "haven't eaten in days", level: domain.EscalationHigh},
		{phrase: "starving myself", level: domain.EscalationHigh},
		{phrase: "skip all my meals", level: domain.EscalationMedium},
		{phrase: "afraid to eat", level: domain.EscalationMedium},
		{phrase: "terrified of food", level: domain.EscalationMedium},
		{phrase: "counting every single calorie obsessively", level: domain.EscalationLow},
	},
	domain.TriggerSelfHarm: {
		{phrase: "kill myself", level: domain.EscalationCritical},
		{phrase: "want to die", level: domain.EscalationCritical},
		{phrase: "end my life", level: domain.EscalationCritical},
		{phrase: "end it all", level: domain.EscalationCritical},
		{phrase: "suicidal", level: domain.EscalationCritical},
		{phrase: "don't want to be alive", level: domain.EscalationCritical},
		{phrase: "hurt myself", level: domain.EscalationHigh},
		{phrase: "harm myself", level: domain.EscalationHigh},
		{phrase: "cutting myself", level: domain.EscalationHigh},
		{phrase: "better off without me", level: domain.EscalationHigh},
	},
	domain.TriggerDepression: {
		{phrase: "no point anymore", level: domain.EscalationHigh},
		{phrase: "completely hopeless", level: domain.EscalationHigh},
		{phrase: "hopeless", level: domain.EscalationMedium},
		{phrase: "feel worthless", level: domain.EscalationMedium},
		{phrase: "can't get out of bed", level: domain.EscalationMedium},
		{phrase: "hate myself", level: domain.EscalationMedium},
		{phrase: "nothing matters", level: domain.EscalationMedium},
		{phrase: "so empty inside", level: domain.EscalationLow},
		{phrase: "crying every day", level: domain.EscalationLow},
	},
	domain.TriggerMedicalEmergency: {
		{phrase: "chest pain", level: domain.EscalationHigh},
		{phrase: "can't breathe", level: domain.EscalationHigh},
		{phrase: "cannot breathe", level: domain.EscalationHigh},
		{phrase: "heart is pounding and i feel faint", level: domain.EscalationHigh},
		{phrase: "passed out", level: domain.EscalationMedium},
		{phrase: "fainted", level: domain.EscalationMedium},
		{phrase: "severe dizziness", level: domain.EscalationMedium},
		{phrase: "numbness in my arm", level: domain.EscalationMedium},
	},
}

// crisisLine is the hotline reference required for self-harm and
// critical interventions. Worded to avoid every trigger phrase so the
// self-consistency check holds.
const crisisLine = "If you are in immediate danger, please call or text 988 (the 988 crisis line) or your local emergency number right now."

// interventionResponses are the per-type intervention texts. Every one
// references professional help and none may contain a trigger phrase;
// NewSentinel verifies this at construction.
var interventionResponses = map[domain.TriggerType]string{
	domain.TriggerEatingDisorder: "Thank you for trusting me with this. What you're describing is something a professional who specializes in eating concerns can help with far better than a coaching app, and reaching out to one is a strong step, not a setback. The NEDA helpline (1-800-931-2237) is a good place to start. I'm pausing the regular coaching for now so we can focus on what matters: you getting real support.",
	domain.TriggerSelfHarm:       "I'm really glad you told me. What you're carrying sounds heavy, and you deserve support from a trained professional right away. " + crisisLine + " You matter, and help is available.",
	domain.TriggerDepression:     "It sounds like things have been very hard lately. Talking with a mental health professional can make a real difference, and reaching out is a sign of strength. If you'd like somewhere to start, your doctor or a licensed therapist can help you find the right support. I'll keep the regular coaching on hold for now.",
	domain.TriggerMedicalEmergency: "What you're describing may need urgent medical attention. Please contact a medical professional or emergency services right away rather than waiting. " + crisisLine,
}

// safetyFallbackResponse is returned when an intervention fires but no
// per-type text exists. Kept generic and professional-help oriented.
const safetyFallbackResponse = "I want to make sure you get the right support. Please consider reaching out to a professional who can help with what you're going through. I'm here for coaching, and your wellbeing comes first."
