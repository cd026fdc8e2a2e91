// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// logAudit records an admin action in the audit trail. Failures are
// logged but never fail the action itself.
func logAudit(db *sql.DB, actor, action, target string, details interface{}) {
	var detailsJSON sql.NullString
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			slog.Error("failed to encode audit details", "error", err, "action", action)
		} else {
			detailsJSON = sql.NullString{String: string(b), Valid: true}
		}
	}

	_, err := db.Exec(`
		INSERT INTO audit_logs (id, actor_email, action_type, target_entity, details_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), actor, action, target, detailsJSON, time.Now())
	if err != nil {
		slog.Error("failed to write audit log", "error", err, "action", action, "actor", actor)
	}
}
