package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/staybook/internal/models"
	"github.com/samber/oops"
)

// AuditRepo persists audit log entries.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Log records an audit entry. action is create|update; resourceType is listing|booking.
func (r *AuditRepo) Log(ctx context.Context, userID int, action, resourceType string, resourceID int, details string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (user_id, action, resource_type, resource_id, details) VALUES ($1, $2, $3, $4, $5)`,
		userID, action, resourceType, resourceID, details,
	)
	if err != nil {
		return oops.With("operation", "write audit").With("resource_type", resourceType).With("resource_id", resourceID).Wrap(err)
	}
	return nil
}

// ActivityFilter selects one user's audit entries. An empty ResourceType matches every resource.
type ActivityFilter struct {
	UserID       int
	ResourceType string
	Limit        int
	Offset       int
}

// ListByUser returns the entries matching f, newest first.
func (r *AuditRepo) ListByUser(ctx context.Context, f ActivityFilter) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, COALESCE(details,''), created_at
		FROM audit_log
		WHERE user_id = $1 AND ($2 = '' OR resource_type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		f.UserID, f.ResourceType, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, oops.With("operation", "list audit").With("user_id", f.UserID).Wrap(err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ResourceType, &e.ResourceID, &e.Details, &e.CreatedAt); err != nil {
			return nil, oops.With("operation", "scan audit").Wrap(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate audit").Wrap(err)
	}
	return entries, nil
}
