package models

import "time"

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Action       string    `json:"action"`        // create, update
	ResourceType string    `json:"resource_type"` // listing, booking
	ResourceID   int       `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"

	ResourceListing = "listing"
	ResourceBooking = "booking"
)
