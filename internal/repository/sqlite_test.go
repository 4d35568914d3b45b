package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitracka/concierge/internal/domain"
	"github.com/vitracka/concierge/tests/helpers"
)

func TestRecordAndListSafetyAudit(t *testing.T) {
	repo := helpers.NewTestRepository(t)
	ctx := context.Background()

	first := &domain.SafetyAuditRecord{
		UserID:           "u1",
		TriggerType:      domain.TriggerSelfHarm,
		TriggerContent:   "trigger content",
		AgentResponse:    "intervention text",
		EscalationLevel:  domain.EscalationCritical,
		AdminNotified:    true,
		FollowUpRequired: true,
		Timestamp:        time.Now().Add(-time.Hour),
	}
	second := &domain.SafetyAuditRecord{
		UserID:          "u1",
		TriggerType:     domain.TriggerDepression,
		TriggerContent:  "later content",
		AgentResponse:   "supportive text",
		EscalationLevel: domain.EscalationMedium,
		Timestamp:       time.Now(),
	}

	if err := repo.RecordIntervention(ctx, first); err != nil {
		t.Fatalf("RecordIntervention failed: %v", err)
	}
	if err := repo.RecordIntervention(ctx, second); err != nil {
		t.Fatalf("RecordIntervention failed: %v", err)
	}
	assert.NotEmpty(t, first.AuditID)

	records, err := repo.ListSafetyAudit(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ListSafetyAudit failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	assert.Equal(t, domain.TriggerDepression, records[0].TriggerType)
	assert.Equal(t, domain.TriggerSelfHarm, records[1].TriggerType)
	assert.True(t, records[1].AdminNotified)
	assert.True(t, records[1].FollowUpRequired)

	none, err := repo.ListSafetyAudit(ctx, "nobody", 10)
	if err != nil {
		t.Fatalf("ListSafetyAudit for unknown user failed: %v", err)
	}
	assert.Empty(t, none)
}

func TestUpsertAndGetProfile(t *testing.T) {
	repo := helpers.NewTestRepository(t)
	ctx := context.Background()

	missing, err := repo.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	assert.Nil(t, missing)

	profile := &domain.UserSupportProfile{
		UserID:                 "u1",
		GoalType:               domain.GoalLoss,
		CoachingStyle:          domain.StyleUpbeat,
		GamificationPreference: domain.GamificationHigh,
		NotificationsEnabled:   true,
		OnGLP1:                 true,
		Safety: domain.SafetyProfile{
			RiskFactors:       []string{"history_of_ed"},
			InterventionCount: 2,
		},
	}
	if err := repo.UpsertProfile(ctx, profile); err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored profile")
	}
	assert.Equal(t, domain.StyleUpbeat, got.CoachingStyle)
	assert.True(t, got.OnGLP1)
	assert.Equal(t, 2, got.Safety.InterventionCount)
	assert.Equal(t, []string{"history_of_ed"}, got.Safety.RiskFactors)

	// Upsert replaces in place.
	profile.CoachingStyle = domain.StylePragmatic
	if err := repo.UpsertProfile(ctx, profile); err != nil {
		t.Fatalf("second UpsertProfile failed: %v", err)
	}
	updated, err := repo.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	assert.Equal(t, domain.StylePragmatic, updated.CoachingStyle)

	assert.Error(t, repo.UpsertProfile(ctx, &domain.UserSupportProfile{}))
}

func TestConcurrentInterventionsShareOneDatabase(t *testing.T) {
	repo := helpers.NewTestRepository(t)
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec := &domain.SafetyAuditRecord{
				UserID:          "u1",
				TriggerType:     domain.TriggerSelfHarm,
				TriggerContent:  fmt.Sprintf("content %d", n),
				AgentResponse:   "intervention text",
				EscalationLevel: domain.EscalationCritical,
			}
			if err := repo.RecordIntervention(ctx, rec); err != nil {
				errs <- err
				return
			}
			if _, err := repo.ListSafetyAudit(ctx, "u1", writers); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent audit access failed: %v", err)
	}

	records, err := repo.ListSafetyAudit(ctx, "u1", writers)
	if err != nil {
		t.Fatalf("ListSafetyAudit failed: %v", err)
	}
	if len(records) != writers {
		t.Fatalf("expected %d records, got %d", writers, len(records))
	}
}

func TestRecordOperationalDefaults(t *testing.T) {
	repo := helpers.NewTestRepository(t)

	rec := &domain.OperationalAuditRecord{
		EventType: "session_evicted",
		Severity:  "info",
		Action:    "evict",
		Metadata:  map[string]string{"session_id": "sess_1"},
	}
	if err := repo.RecordOperational(context.Background(), rec); err != nil {
		t.Fatalf("RecordOperational failed: %v", err)
	}
	assert.NotEmpty(t, rec.AuditID)
	assert.Equal(t, domain.ClassificationInternal, rec.DataClassification)
	assert.Equal(t, domain.RetentionOperational, rec.RetentionPeriod)
	assert.False(t, rec.Timestamp.IsZero())
}
