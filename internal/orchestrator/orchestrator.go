// Package orchestrator composes specialist agents into one reply per
// user turn, with the safety sentinel holding veto authority.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/vitracka/concierge/internal/agents"
	"github.com/vitracka/concierge/internal/domain"
	"github.com/vitracka/concierge/internal/intent"
	"github.com/vitracka/concierge/internal/safety"
	"github.com/vitracka/concierge/internal/session"
)

// fallbackContent is what a failed or timed-out specialist contributes;
// the user never sees a raw error or an empty reply.
const fallbackContent = "I'm here with you. Let's keep going one small step at a time. What would feel most helpful right now?"

// ProfileSource reads user support profiles. The orchestrator never
// writes through it.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserSupportProfile, error)
}

// Publisher pushes per-turn reply events to connected clients.
type Publisher interface {
	PublishReply(sessionID string, event map[string]interface{})
}

// Concierge is the single entry point for processing user turns.
type Concierge struct {
	sentinel     *safety.Sentinel
	specialists  agents.Registry
	sessions     session.Store
	profiles     ProfileSource
	publisher    Publisher
	agentTimeout time.Duration

	// Per-session write serialization: concurrent turns on one session
	// would race on the history append otherwise. Entries are refcounted
	// and removed when the last holder releases, so the map is bounded
	// by in-flight requests rather than sessions ever seen.
	lockMu sync.Mutex
	locks  map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// New wires the concierge. Sentinel, registry, and store are required;
// profiles and publisher may be nil.
func New(sentinel *safety.Sentinel, specialists agents.Registry, sessions session.Store, profiles ProfileSource, publisher Publisher, agentTimeout time.Duration) (*Concierge, error) {
	if sentinel == nil {
		return nil, fmt.Errorf("sentinel is required")
	}
	if len(specialists) == 0 {
		return nil, fmt.Errorf("specialist registry is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if agentTimeout <= 0 {
		agentTimeout = 10 * time.Second
	}
	return &Concierge{
		sentinel:     sentinel,
		specialists:  specialists,
		sessions:     sessions,
		profiles:     profiles,
		publisher:    publisher,
		agentTimeout: agentTimeout,
		locks:        make(map[string]*sessionLock),
	}, nil
}

// acquireSession blocks until this caller is the session's sole writer.
func (c *Concierge) acquireSession(sessionID string) *sessionLock {
	c.lockMu.Lock()
	l, ok := c.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		c.locks[sessionID] = l
	}
	l.refs++
	c.lockMu.Unlock()

	l.mu.Lock()
	return l
}

// releaseSession unlocks and drops the map entry when no other turn is
// waiting on it.
func (c *Concierge) releaseSession(sessionID string, l *sessionLock) {
	l.mu.Unlock()
	c.lockMu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, sessionID)
	}
	c.lockMu.Unlock()
}

// ProcessRequest routes one user message through the sentinel and the
// relevant specialists and returns the composed response. The returned
// context is a fresh snapshot; the store holds its own copy.
func (c *Concierge) ProcessRequest(ctx context.Context, req domain.AgentRequest) (*domain.AgentResponse, error) {
	l := c.acquireSession(req.SessionID)
	response := c.processLocked(ctx, req)
	c.releaseSession(req.SessionID, l)

	// Publishing can park on a full broadcast buffer; it happens outside
	// the session lock so a slow hub never stalls the next turn.
	c.publishReply(req.SessionID, response)
	return response, nil
}

func (c *Concierge) processLocked(ctx context.Context, req domain.AgentRequest) *domain.AgentResponse {
	actx := c.resolveContext(ctx, req)

	verdict := c.sentinel.Evaluate(ctx, req.Message, req.UserID)
	if verdict.IsIntervention {
		// Short-circuit: no other specialist runs during a crisis turn.
		actx.AddSafetyFlag(fmt.Sprintf("intervention:%s:%s", verdict.TriggerType, verdict.EscalationLevel))
		return c.finalize(req, actx, &domain.AgentResponse{
			SessionID:        req.SessionID,
			InvolvedAgents:   []domain.AgentType{domain.AgentSafetySentinel},
			FinalResponse:    verdict.Response,
			SafetyOverride:   true,
			RequiresFollowUp: verdict.RequiresFollowUp,
		})
	}

	selected := intent.Classify(req.Message, actx.UserProfile != nil)
	var (
		parts    []string
		involved []domain.AgentType
		followUp bool
	)
	for _, agentType := range selected {
		specialist, ok := c.specialists[agentType]
		if !ok {
			continue
		}
		result := c.invokeSpecialist(ctx, specialist, req.Message, actx)
		parts = append(parts, result.Content)
		involved = append(involved, agentType)
		if result.Metadata["requires_follow_up"] == "true" {
			followUp = true
		}
	}
	if len(involved) == 0 {
		// Every specialist failed out of the registry; still reply.
		parts = []string{fallbackContent}
		involved = []domain.AgentType{domain.AgentCoachCompanion}
	}

	finalResponse := strings.Join(parts, " ")
	response := &domain.AgentResponse{
		SessionID:        req.SessionID,
		InvolvedAgents:   involved,
		FinalResponse:    finalResponse,
		RequiresFollowUp: followUp,
	}

	if veto := c.sentinel.Veto(ctx, finalResponse, req.Message, req.UserID); veto.ShouldVeto {
		actx.AddSafetyFlag("veto:" + veto.VetoReason)
		response.FinalResponse = veto.AlternativeResponse
		response.SafetyOverride = true
		response.InvolvedAgents = []domain.AgentType{domain.AgentSafetySentinel}
		if response.FinalResponse == "" {
			response.FinalResponse = safety.FallbackResponse()
		}
	}

	return c.finalize(req, actx, response)
}

// resolveContext picks the request's context, then the stored one, then
// a fresh one, and attaches the user profile when missing.
func (c *Concierge) resolveContext(ctx context.Context, req domain.AgentRequest) *domain.AgentContext {
	actx := req.Context.Clone()
	if actx == nil {
		actx = c.sessions.Get(req.SessionID)
	}
	if actx == nil {
		actx = domain.NewAgentContext(req.SessionID, req.UserID)
	}
	if actx.UserProfile == nil && c.profiles != nil && req.UserID != "" {
		profile, err := c.profiles.GetProfile(ctx, req.UserID)
		if err != nil {
			log.Printf("WARN: failed to load profile for user %s: %v", req.UserID, err)
		} else if profile != nil {
			actx.UserProfile = profile
		}
	}
	return actx
}

// invokeSpecialist runs one agent bounded by the agent timeout. A
// panic, error, or empty result degrades to the generic fallback.
func (c *Concierge) invokeSpecialist(ctx context.Context, specialist agents.Specialist, message string, actx *domain.AgentContext) (result agents.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: specialist %s panicked: %v", specialist.Type(), r)
			result = agents.Result{Content: fallbackContent}
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, c.agentTimeout)
	defer cancel()

	res, err := specialist.Handle(callCtx, message, actx.UserProfile, actx)
	if err != nil || res.Content == "" {
		if err != nil {
			log.Printf("WARN: specialist %s failed: %v", specialist.Type(), err)
		}
		return agents.Result{Content: fallbackContent}
	}
	return res
}

// finalize appends the turn to history and persists the snapshot.
func (c *Concierge) finalize(req domain.AgentRequest, actx *domain.AgentContext, response *domain.AgentResponse) *domain.AgentResponse {
	now := time.Now()
	actx.AppendTurn(req.Message, response.FinalResponse, now)
	c.sessions.Put(actx)
	response.Context = actx
	return response
}

// publishReply pushes the turn's reply event to subscribers.
func (c *Concierge) publishReply(sessionID string, response *domain.AgentResponse) {
	if c.publisher == nil {
		return
	}
	involved := make([]string, len(response.InvolvedAgents))
	for i, a := range response.InvolvedAgents {
		involved[i] = string(a)
	}
	c.publisher.PublishReply(sessionID, map[string]interface{}{
		"type":            "reply",
		"ts":              time.Now().UnixMilli(),
		"session_id":      sessionID,
		"final_response":  response.FinalResponse,
		"safety_override": response.SafetyOverride,
		"involved_agents": involved,
	})
}

// GetSessionContext is a read accessor into the session store, used for
// introspection and tests.
func (c *Concierge) GetSessionContext(sessionID string) *domain.AgentContext {
	return c.sessions.Get(sessionID)
}
