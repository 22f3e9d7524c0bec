package domain

import "errors"

// Validation errors. Each rejection names the specific rule that failed;
// the HTTP layer maps them to status codes with errors.Is.
var (
	ErrItemUnavailable     = errors.New("book is not available for issue")
	ErrBorrowerInactive    = errors.New("member account is not active")
	ErrAlreadyIssued       = errors.New("book already issued")
	ErrLoanLimitExceeded   = errors.New("member has reached the active loan limit")
	ErrNoActiveIssue       = errors.New("no active issue for this book")
	ErrReturnMismatch      = errors.New("book was not issued to this member")
	ErrTerminalState       = errors.New("book is removed and cannot change status")
	ErrReturnRequiredFirst = errors.New("book has an active issue and must be returned first")
	ErrNotAuthorized       = errors.New("operator is not authorized for this operation")
	ErrInvalidStatusType   = errors.New("invalid status type")
	ErrBookNotFound        = errors.New("book not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// ErrFineImmutable signals an attempt to close a loan entry that was already
// closed, which would overwrite a persisted fine. This is a programming
// contract violation, not a user-facing validation failure.
var ErrFineImmutable = errors.New("fine amount is immutable once set")

// ErrLockWaitTimeout is surfaced when the row lock on a book could not be
// acquired within the configured window. Safe for the caller to retry.
var ErrLockWaitTimeout = errors.New("timed out waiting for book lock")
