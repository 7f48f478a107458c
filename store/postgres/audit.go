package postgres

import (
	"context"

	"SmartCare360/apperrors"
	"SmartCare360/models"

	"github.com/doug-martin/goqu/v9"
)

func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLogEntry) error {
	entry.ID = newID(entry.ID)
	record := goqu.Record{
		"id":         entry.ID,
		"action":     entry.Action,
		"details":    entry.Details,
		"ip_address": entry.IPAddress,
		"created_at": entry.CreatedAt,
	}
	// user_id stays NULL for anonymous actions.
	if entry.UserID != "" {
		record["user_id"] = entry.UserID
	}

	query, args, err := s.goqu.Insert("system_logs").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return buildErr("insert audit entry", err)
	}
	if _, err := s.exec(ctx, query, args); err != nil {
		return apperrors.NewInternalError("failed to append audit entry", err)
	}
	return nil
}
