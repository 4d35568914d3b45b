// Package safety implements the safety sentinel: trigger classification,
// intervention responses, and the veto over composed replies.
package safety

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitracka/concierge/internal/domain"
)

// AuditSink receives one record per intervention. Writes are
// fire-and-forget relative to the safety decision.
type AuditSink interface {
	RecordIntervention(ctx context.Context, rec *domain.SafetyAuditRecord) error
}

// ReplyPolicy decides whether a candidate reply contains restricted
// coaching advice. Implemented by the rego engine in policy.
type ReplyPolicy interface {
	Evaluate(ctx context.Context, input interface{}) (decision string, reason string, err error)
}

// Sentinel detects crisis language and holds veto authority over every
// other agent's output.
type Sentinel struct {
	audit       AuditSink
	replyPolicy ReplyPolicy
}

// NewSentinel builds a sentinel and verifies the intervention catalog is
// self-consistent: no intervention text may itself match a trigger
// phrase, and every text must point at professional help.
func NewSentinel(audit AuditSink, replyPolicy ReplyPolicy) (*Sentinel, error) {
	for triggerType, text := range interventionResponses {
		if text == "" {
			return nil, fmt.Errorf("empty intervention response for %s", triggerType)
		}
		if !strings.Contains(strings.ToLower(text), "professional") {
			return nil, fmt.Errorf("intervention response for %s does not reference professional help", triggerType)
		}
		if matches := Classify(text); len(matches) > 0 {
			return nil, fmt.Errorf("intervention response for %s matches trigger phrase %q", triggerType, matches[0].Phrase)
		}
	}
	if matches := Classify(safetyFallbackResponse); len(matches) > 0 {
		return nil, fmt.Errorf("fallback response matches trigger phrase %q", matches[0].Phrase)
	}
	return &Sentinel{audit: audit, replyPolicy: replyPolicy}, nil
}

// Classify returns every trigger-phrase hit in the message, ranked most
// severe first: trigger-type priority, then escalation level.
func Classify(message string) []domain.TriggerMatch {
	lowered := strings.ToLower(message)
	var matches []domain.TriggerMatch
	for triggerType, phrases := range triggerSets {
		for _, p := range phrases {
			if strings.Contains(lowered, p.phrase) {
				matches = append(matches, domain.TriggerMatch{
					Type:   triggerType,
					Level:  p.level,
					Phrase: p.phrase,
				})
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Type != matches[j].Type {
			return matches[i].Type.Outranks(matches[j].Type)
		}
		if matches[i].Level != matches[j].Level {
			return matches[i].Level.Outranks(matches[j].Level)
		}
		return matches[i].Phrase < matches[j].Phrase
	})
	return matches
}

// Evaluate inspects one message for crisis language. When an
// intervention fires, one audit record is written for the user; an
// audit failure never withholds the verdict, and an absent userID skips
// the record entirely.
func (s *Sentinel) Evaluate(ctx context.Context, message, userID string) domain.SentinelVerdict {
	matches := Classify(message)
	if len(matches) == 0 {
		return domain.SentinelVerdict{}
	}

	primary := matches[0]
	response, ok := interventionResponses[primary.Type]
	if !ok {
		response = safetyFallbackResponse
	}

	verdict := domain.SentinelVerdict{
		IsIntervention:  true,
		TriggerType:     primary.Type,
		EscalationLevel: primary.Level,
		Response:        response,
		AdminNotificationRequired: primary.Level == domain.EscalationCritical ||
			primary.Type == domain.TriggerMedicalEmergency,
		RequiresFollowUp: primary.Level != domain.EscalationLow,
	}

	if userID != "" && s.audit != nil {
		rec := &domain.SafetyAuditRecord{
			AuditID:          "aud_" + uuid.New().String()[:8],
			UserID:           userID,
			TriggerType:      verdict.TriggerType,
			TriggerContent:   message,
			AgentResponse:    verdict.Response,
			EscalationLevel:  verdict.EscalationLevel,
			AdminNotified:    verdict.AdminNotificationRequired,
			FollowUpRequired: verdict.RequiresFollowUp,
			Timestamp:        time.Now(),
		}
		if err := s.audit.RecordIntervention(ctx, rec); err != nil {
			log.Printf("ERROR: failed to record safety audit for user %s: %v", userID, err)
		}
	}

	return verdict
}

// Veto judges a composed candidate reply. It triggers when the original
// message matches a trigger-phrase set, or when the candidate itself
// contains restricted coaching advice; the message condition takes
// precedence in the reason. A reply-policy failure is treated as a
// block, never as a silent pass.
func (s *Sentinel) Veto(ctx context.Context, candidateResponse, originalMessage, userID string) domain.VetoVerdict {
	if matches := Classify(originalMessage); len(matches) > 0 {
		verdict := s.Evaluate(ctx, originalMessage, userID)
		return domain.VetoVerdict{
			ShouldVeto:          true,
			VetoReason:          fmt.Sprintf("message matched %s trigger phrase %q", matches[0].Type, matches[0].Phrase),
			AlternativeResponse: verdict.Response,
		}
	}

	if s.replyPolicy != nil {
		decision, reason, err := s.replyPolicy.Evaluate(ctx, map[string]interface{}{
			"reply":   candidateResponse,
			"user_id": userID,
		})
		if err != nil {
			log.Printf("ERROR: reply policy evaluation failed: %v", err)
			return domain.VetoVerdict{
				ShouldVeto:          true,
				VetoReason:          "reply policy unavailable",
				AlternativeResponse: safetyFallbackResponse,
			}
		}
		if decision == "block" {
			if reason == "" {
				reason = "restricted coaching advice"
			}
			return domain.VetoVerdict{
				ShouldVeto:          true,
				VetoReason:          reason,
				AlternativeResponse: safetyFallbackResponse,
			}
		}
	}

	return domain.VetoVerdict{}
}

// FallbackResponse is the generic safe reply substituted when a veto
// fires on reply content or a specialist turn cannot complete.
func FallbackResponse() string {
	return safetyFallbackResponse
}
