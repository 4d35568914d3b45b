package agents

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/vitracka/concierge/internal/domain"
)

// Safe-rate threshold: weekly loss goals above this are treated as a
// medical question, not a coaching one.
const maxSafeWeeklyLossLbs = 2.0

var diagnosisPatterns = []string{
	"do i have", "what's wrong with me", "whats wrong with me",
	"diagnose", "is this a symptom", "could this be",
}

var treatmentPatterns = []string{
	"what medication", "which medication", "should i take",
	"prescri", "dosage", "dose of", "how much ozempic",
	"increase my medication", "stop my medication", "adjust my",
}

var weeklyLossRe = regexp.MustCompile(`lose\s+(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)\s*(?:a|per|each)\s*week`)

// MedicalBoundaries detects requests for medical advice and redirects
// them to a clinician. It never issues a diagnosis, prescription, or
// dosage instruction.
type MedicalBoundaries struct{}

// NewMedicalBoundaries creates the medical-boundary agent.
func NewMedicalBoundaries() *MedicalBoundaries { return &MedicalBoundaries{} }

// Type identifies the agent.
func (a *MedicalBoundaries) Type() domain.AgentType { return domain.AgentMedicalBoundaries }

// IsMedicalAdviceRequest reports whether the message asks for a
// diagnosis, a treatment/medication decision, or an unsafe-rate goal.
func IsMedicalAdviceRequest(message string) (bool, string) {
	lowered := strings.ToLower(message)
	if containsAny(lowered, diagnosisPatterns) {
		return true, "diagnosis_request"
	}
	if containsAny(lowered, treatmentPatterns) {
		return true, "treatment_request"
	}
	if m := weeklyLossRe.FindStringSubmatch(lowered); m != nil {
		if rate, err := strconv.ParseFloat(m[1], 64); err == nil && rate > maxSafeWeeklyLossLbs {
			return true, "unsafe_rate_goal"
		}
	}
	return false, ""
}

// Handle produces either a clinician referral or a short boundary note.
func (a *MedicalBoundaries) Handle(_ context.Context, message string, profile *domain.UserSupportProfile, _ *domain.AgentContext) (Result, error) {
	isMedical, reason := IsMedicalAdviceRequest(message)
	meta := map[string]string{"is_medical_advice_request": strconv.FormatBool(isMedical)}
	if !isMedical {
		return Result{
			Content:  "For anything medical, your clinician is the right person to ask; I'll stick to the coaching side.",
			Metadata: meta,
		}, nil
	}

	meta["reason"] = reason
	var b strings.Builder
	switch reason {
	case "unsafe_rate_goal":
		b.WriteString("A goal that aggressive falls outside what's considered a safe pace. ")
	case "treatment_request":
		b.WriteString("Medication decisions are between you and your prescriber. I can't advise on what or how much to take. ")
	default:
		b.WriteString("That sounds like a question for a medical professional rather than a coach. ")
	}
	b.WriteString("Please bring it to your doctor or care team; they can look at your full picture.")
	if profile != nil && profile.UnderClinicianGuidance {
		b.WriteString(" Since you're already working with a clinician, they're the best next stop.")
	}
	return Result{Content: b.String(), Metadata: meta}, nil
}
