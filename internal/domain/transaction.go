package domain

import "time"

type TxnType string

const (
	TxnTypeIssue       TxnType = "ISSUE"
	TxnTypeReturn      TxnType = "RETURN"
	TxnTypeLost        TxnType = "LOST"
	TxnTypeDamaged     TxnType = "DAMAGED"
	TxnTypeMaintenance TxnType = "MAINTENANCE"
	TxnTypeRemoved     TxnType = "REMOVED"
)

// IsValid reports whether t is one of the known transaction types.
func (t TxnType) IsValid() bool {
	switch t {
	case TxnTypeIssue, TxnTypeReturn, TxnTypeLost,
		TxnTypeDamaged, TxnTypeMaintenance, TxnTypeRemoved:
		return true
	}
	return false
}

// IncidentStatus maps an incident transaction type to the book status it
// produces. The second return is false for ISSUE and RETURN, which are not
// incidents.
func (t TxnType) IncidentStatus() (BookStatus, bool) {
	switch t {
	case TxnTypeLost:
		return BookStatusLost, true
	case TxnTypeDamaged:
		return BookStatusDamaged, true
	case TxnTypeMaintenance:
		return BookStatusMaintenance, true
	case TxnTypeRemoved:
		return BookStatusRemoved, true
	default:
		return "", false
	}
}

// BookTransaction is one row in the loan ledger. Only an unreturned ISSUE
// entry is active; every other type is created inactive and never updated.
type BookTransaction struct {
	ID              int64      `json:"id"`
	BookID          int64      `json:"book_id"`
	MemberID        *int64     `json:"member_id,omitempty"`
	ActorID         *int64     `json:"actor_id,omitempty"`
	TxnType         TxnType    `json:"txn_type"`
	IssueDate       *time.Time `json:"issue_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ReturnDate      *time.Time `json:"return_date,omitempty"`
	FineAmountCents int64      `json:"fine_amount_cents"`
	IsActive        bool       `json:"is_active"`
	Remarks         string     `json:"remarks"`
	CreatedOn       time.Time  `json:"created_on"`
}

// Overdue reports whether the entry is an active issue past its due date at
// the given instant. Entries without a due date are never overdue.
func (t *BookTransaction) Overdue(asOf time.Time) bool {
	if t.TxnType != TxnTypeIssue || !t.IsActive || t.DueDate == nil {
		return false
	}
	return asOf.After(*t.DueDate)
}
