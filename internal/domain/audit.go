package domain

import "time"

type AuditAction string

const (
	AuditActionBookAdd      AuditAction = "BOOK_ADD"
	AuditActionBookEdit     AuditAction = "BOOK_EDIT"
	AuditActionBookDelete   AuditAction = "BOOK_DELETE"
	AuditActionBookIssue    AuditAction = "BOOK_ISSUE"
	AuditActionBookReturn   AuditAction = "BOOK_RETURN"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
)

// AuditRecord captures who did what to which entity. Records are append-only:
// the store never updates or deletes them, and the orchestrator writes exactly
// one per state-changing operation, inside the same database transaction as
// the mutation it describes.
type AuditRecord struct {
	ID         int64          `json:"id"`
	ActorID    *int64         `json:"actor_id,omitempty"` // nil for system actions
	Action     AuditAction    `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	OldValues  map[string]any `json:"old_values,omitempty"`
	NewValues  map[string]any `json:"new_values,omitempty"`
	Remarks    string         `json:"remarks"`
	Source     string         `json:"source"`
	CreatedOn  time.Time      `json:"created_on"`
}
