// Package policy evaluates composed replies against the restricted
// coaching-advice policy.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine for reply gating.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.reply_policy"),
		rego.Module("reply_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks a candidate reply. Input is a map with at least a
// "reply" key. Returns decision ("allow" or "block") plus the first
// matched phrase when blocked.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means the
		// module is missing; the caller fails closed.
		return "", "", fmt.Errorf("policy returned no result")
	}

	doc, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return "", "", fmt.Errorf("unexpected policy document type %T", results[0].Expressions[0].Value)
	}

	decision, _ := doc["decision"].(string)
	if decision == "" {
		return "", "", fmt.Errorf("policy document missing decision")
	}

	reason := ""
	if reasons, ok := doc["reasons"].([]interface{}); ok && len(reasons) > 0 {
		if r, ok := reasons[0].(string); ok {
			reason = fmt.Sprintf("restricted coaching phrase %q", r)
		}
	}

	return decision, reason, nil
}

// DefaultReplyPolicy blocks replies that contain coaching advice the
// product must never give: encouraging starvation, meal skipping, or
// shame-driven framing.
const DefaultReplyPolicy = `
package reply_policy

restricted_phrases := {
	"stop eating",
	"skip meals",
	"skip a few meals",
	"just don't eat",
	"starve",
	"as few calories as possible",
	"punish yourself",
	"no excuses",
	"push through the pain",
	"you have only yourself to blame",
}

default decision := "allow"

decision := "block" if {
	some phrase in restricted_phrases
	contains(lower(input.reply), phrase)
}

reasons contains phrase if {
	some phrase in restricted_phrases
	contains(lower(input.reply), phrase)
}
`
