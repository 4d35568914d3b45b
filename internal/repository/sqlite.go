// Package repository provides sqlite-backed persistence for audit
// records and user support profiles.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vitracka/concierge/internal/domain"
)

// SQLiteRepository implements the audit sink and profile source.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database and runs migrations.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// migrate runs database migrations.
func (r *SQLiteRepository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS safety_audit (
			audit_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			trigger_type TEXT NOT NULL,
			trigger_content TEXT NOT NULL,
			agent_response TEXT NOT NULL,
			escalation_level TEXT NOT NULL,
			admin_notified INTEGER NOT NULL DEFAULT 0,
			follow_up_required INTEGER NOT NULL DEFAULT 0,
			data_classification TEXT NOT NULL DEFAULT 'restricted',
			retention_seconds INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_safety_audit_user ON safety_audit(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS operational_audit (
			audit_id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			action TEXT NOT NULL,
			description TEXT,
			metadata TEXT,
			is_safety_related INTEGER NOT NULL DEFAULT 0,
			requires_admin_review INTEGER NOT NULL DEFAULT 0,
			data_classification TEXT NOT NULL,
			retention_seconds INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operational_audit_type ON operational_audit(event_type, created_at)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			goal_type TEXT NOT NULL,
			coaching_style TEXT NOT NULL,
			gamification_preference TEXT NOT NULL,
			notifications_enabled INTEGER NOT NULL DEFAULT 1,
			on_glp1 INTEGER NOT NULL DEFAULT 0,
			under_clinician_guidance INTEGER NOT NULL DEFAULT 0,
			safety_profile TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := r.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// RecordIntervention writes one safety audit record. Safety records
// always carry restricted classification and the multi-year retention.
func (r *SQLiteRepository) RecordIntervention(ctx context.Context, rec *domain.SafetyAuditRecord) error {
	if rec.AuditID == "" {
		rec.AuditID = "aud_" + uuid.New().String()[:8]
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO safety_audit
			(audit_id, user_id, trigger_type, trigger_content, agent_response,
			 escalation_level, admin_notified, follow_up_required,
			 data_classification, retention_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AuditID, rec.UserID, rec.TriggerType, rec.TriggerContent, rec.AgentResponse,
		rec.EscalationLevel, rec.AdminNotified, rec.FollowUpRequired,
		domain.ClassificationRestricted, int64(domain.RetentionSafety.Seconds()), rec.Timestamp)
	return err
}

// RecordOperational writes one non-safety audit record.
func (r *SQLiteRepository) RecordOperational(ctx context.Context, rec *domain.OperationalAuditRecord) error {
	if rec.AuditID == "" {
		rec.AuditID = "aud_" + uuid.New().String()[:8]
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.DataClassification == "" {
		rec.DataClassification = domain.ClassificationInternal
	}
	if rec.RetentionPeriod == 0 {
		rec.RetentionPeriod = domain.RetentionOperational
	}
	metadata, _ := json.Marshal(rec.Metadata)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operational_audit
			(audit_id, event_type, severity, action, description, metadata,
			 is_safety_related, requires_admin_review, data_classification,
			 retention_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AuditID, rec.EventType, rec.Severity, rec.Action, rec.Description, string(metadata),
		rec.IsSafetyRelated, rec.RequiresAdminReview, rec.DataClassification,
		int64(rec.RetentionPeriod.Seconds()), rec.Timestamp)
	return err
}

// ListSafetyAudit returns the user's safety audit records, newest first.
func (r *SQLiteRepository) ListSafetyAudit(ctx context.Context, userID string, limit int) ([]domain.SafetyAuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT audit_id, user_id, trigger_type, trigger_content, agent_response,
			escalation_level, admin_notified, follow_up_required, created_at
		 FROM safety_audit WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SafetyAuditRecord
	for rows.Next() {
		var rec domain.SafetyAuditRecord
		if err := rows.Scan(&rec.AuditID, &rec.UserID, &rec.TriggerType, &rec.TriggerContent,
			&rec.AgentResponse, &rec.EscalationLevel, &rec.AdminNotified,
			&rec.FollowUpRequired, &rec.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetProfile returns the user's support profile, or nil when unknown.
func (r *SQLiteRepository) GetProfile(ctx context.Context, userID string) (*domain.UserSupportProfile, error) {
	var p domain.UserSupportProfile
	var safetyJSON sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, goal_type, coaching_style, gamification_preference,
			notifications_enabled, on_glp1, under_clinician_guidance,
			safety_profile, created_at, updated_at
		 FROM profiles WHERE user_id = ?`, userID).Scan(
		&p.UserID, &p.GoalType, &p.CoachingStyle, &p.GamificationPreference,
		&p.NotificationsEnabled, &p.OnGLP1, &p.UnderClinicianGuidance,
		&safetyJSON, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if safetyJSON.Valid && safetyJSON.String != "" {
		if err := json.Unmarshal([]byte(safetyJSON.String), &p.Safety); err != nil {
			return nil, fmt.Errorf("failed to decode safety profile: %w", err)
		}
	}
	return &p, nil
}

// UpsertProfile inserts or replaces a support profile.
func (r *SQLiteRepository) UpsertProfile(ctx context.Context, p *domain.UserSupportProfile) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	safetyJSON, _ := json.Marshal(p.Safety)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles
			(user_id, goal_type, coaching_style, gamification_preference,
			 notifications_enabled, on_glp1, under_clinician_guidance,
			 safety_profile, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			goal_type = excluded.goal_type,
			coaching_style = excluded.coaching_style,
			gamification_preference = excluded.gamification_preference,
			notifications_enabled = excluded.notifications_enabled,
			on_glp1 = excluded.on_glp1,
			under_clinician_guidance = excluded.under_clinician_guidance,
			safety_profile = excluded.safety_profile,
			updated_at = excluded.updated_at`,
		p.UserID, p.GoalType, p.CoachingStyle, p.GamificationPreference,
		p.NotificationsEnabled, p.OnGLP1, p.UnderClinicianGuidance,
		string(safetyJSON), p.CreatedAt, p.UpdatedAt)
	return err
}
