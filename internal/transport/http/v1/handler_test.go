package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vitracka/concierge/internal/domain"
)

func TestHealth(t *testing.T) {
	_, e := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "concierge", body["service"])
}

func TestPostMessage(t *testing.T) {
	_, e := newTestHandler(t, nil)

	payload := `{"user_id":"u1","session_id":"sess_1","message":"What healthy snacks do you recommend?"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.AgentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.Equal(t, "sess_1", resp.SessionID)
	assert.NotEmpty(t, resp.FinalResponse)
	assert.False(t, resp.SafetyOverride)
	assert.Contains(t, resp.InvolvedAgents, domain.AgentNutritionScout)
}

func TestPostMessageGeneratesSessionID(t *testing.T) {
	_, e := newTestHandler(t, nil)

	payload := `{"user_id":"u1","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.AgentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.True(t, strings.HasPrefix(resp.SessionID, "sess_"))
}

func TestPostMessageEmptyMessageStillReplies(t *testing.T) {
	_, e := newTestHandler(t, nil)

	payload := `{"user_id":"u1","session_id":"sess_empty","message":""}`
	req := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.AgentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.NotEmpty(t, resp.FinalResponse)
	assert.NotEmpty(t, resp.InvolvedAgents)
}

func TestPostMessageRejectsMalformedBody(t *testing.T) {
	_, e := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageCrisisTurn(t *testing.T) {
	_, e := newTestHandler(t, nil)

	payload := `{"user_id":"u1","session_id":"sess_c","message":"I want to kill myself"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.AgentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.True(t, resp.SafetyOverride)
	assert.Equal(t, []domain.AgentType{domain.AgentSafetySentinel}, resp.InvolvedAgents)
	assert.Contains(t, resp.FinalResponse, "988")
}

func TestGetSessionContext(t *testing.T) {
	_, e := newTestHandler(t, nil)

	// Unknown session.
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess_missing/context", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Create the session with one turn, then read it back.
	payload := `{"user_id":"u1","session_id":"sess_ctx","message":"hello"}`
	post := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	post.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(httptest.NewRecorder(), post)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/sess_ctx/context", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var actx domain.AgentContext
	if err := json.Unmarshal(rec.Body.Bytes(), &actx); err != nil {
		t.Fatalf("failed to decode context: %v", err)
	}
	assert.Equal(t, "sess_ctx", actx.SessionID)
	assert.Len(t, actx.MessageHistory, 2)
}

func TestGetSessionAudit(t *testing.T) {
	audit := &staticAudit{records: []domain.SafetyAuditRecord{
		{
			AuditID:         "aud_1",
			UserID:          "u1",
			TriggerType:     domain.TriggerDepression,
			EscalationLevel: domain.EscalationMedium,
			Timestamp:       time.Now(),
		},
	}}
	_, e := newTestHandler(t, audit)

	payload := `{"user_id":"u1","session_id":"sess_aud","message":"hello"}`
	post := httptest.NewRequest(http.MethodPost, "/v1/concierge/message", strings.NewReader(payload))
	post.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(httptest.NewRecorder(), post)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess_aud/audit", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Records []domain.SafetyAuditRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(body.Records))
	}
	assert.Equal(t, "aud_1", body.Records[0].AuditID)
}
