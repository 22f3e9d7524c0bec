package domain

import "time"

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "AVAILABLE"
	BookStatusIssued      BookStatus = "ISSUED"
	BookStatusLost        BookStatus = "LOST"
	BookStatusDamaged     BookStatus = "DAMAGED"
	BookStatusMaintenance BookStatus = "MAINTENANCE"
	BookStatusRemoved     BookStatus = "REMOVED"
)

// IsValid reports whether s is one of the known book statuses.
func (s BookStatus) IsValid() bool {
	switch s {
	case BookStatusAvailable, BookStatusIssued, BookStatusLost,
		BookStatusDamaged, BookStatusMaintenance, BookStatusRemoved:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transitions are permitted.
// REMOVED books stay removed.
func (s BookStatus) IsTerminal() bool {
	return s == BookStatusRemoved
}

type Book struct {
	ID            int64      `json:"id"`
	UID           string     `json:"uid"`       // immutable, assigned at creation
	BookCode      string     `json:"book_code"` // ILAS-ET-0001 style, assigned once
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Publisher     string     `json:"publisher"`
	ISBN          string     `json:"isbn"`
	Category      string     `json:"category"`
	ShelfLocation string     `json:"shelf_location"`
	Status        BookStatus `json:"status"`
	IssuedTo      *int64     `json:"issued_to,omitempty"`
	LastModified  *int64     `json:"last_modified_by,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
}

// CanBeIssued reports whether the book is eligible for a new loan.
// Callers still have to re-check under the row lock before writing.
func (b *Book) CanBeIssued() bool {
	return b.Status == BookStatusAvailable && b.IsActive
}
