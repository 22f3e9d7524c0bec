package repository

import (
	"context"
	"time"

	"ilas-backend/internal/domain"
)

type BookQuery struct {
	Search   string // matches title, author or book code
	Status   string
	Page     int32
	PageSize int32
}

type TransactionQuery struct {
	BookID   int64
	MemberID int64
	Active   *bool
	Page     int32
	PageSize int32
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByCode(ctx context.Context, code string) (*domain.Book, error)
	// GetForUpdate loads the book under an exclusive row lock. Must be
	// called inside a transaction; blocks until the lock is granted or the
	// lock timeout elapses.
	GetForUpdate(ctx context.Context, id int64) (*domain.Book, error)
	UpdateDetails(ctx context.Context, book *domain.Book) error
	// UpdateStatus applies a status write without re-validating business
	// rules; callers hold the row lock and have checked invariants already.
	UpdateStatus(ctx context.Context, id int64, status domain.BookStatus, issuedTo, modifiedBy *int64) error
	SoftDelete(ctx context.Context, id int64, actorID int64) error
	List(ctx context.Context, q BookQuery) ([]domain.Book, int64, error)
	CountByStatus(ctx context.Context) (map[domain.BookStatus]int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.BookTransaction) error
	// GetActiveIssue returns the single active ISSUE entry for the book, or
	// nil when the book is not out on loan.
	GetActiveIssue(ctx context.Context, bookID int64) (*domain.BookTransaction, error)
	CountActiveByMember(ctx context.Context, memberID int64) (int64, error)
	// CloseActiveIssue flips the active entry to returned and sets its fine.
	// The fine is written exactly once: closing an entry that is no longer
	// active fails with domain.ErrFineImmutable.
	CloseActiveIssue(ctx context.Context, txnID int64, returnDate time.Time, fineCents int64) error
	List(ctx context.Context, q TransactionQuery) ([]domain.BookTransaction, int64, error)
	ListOverdueActive(ctx context.Context, asOf time.Time) ([]domain.BookTransaction, error)
	SumFines(ctx context.Context) (int64, error)
}

type AuditRepository interface {
	Create(ctx context.Context, rec *domain.AuditRecord) error
	List(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	// GetForUpdate loads the member under an exclusive row lock, serializing
	// concurrent loan-limit checks for the same borrower. Must be called
	// inside a transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Member, error)
	GetByUsername(ctx context.Context, username string) (*domain.Member, error)
}

// Repositories bundles the repository set handed to a transactional closure.
// Inside Transactor.WithinTx every repository runs on the same database
// transaction.
type Repositories struct {
	Books        BookRepository
	Transactions TransactionRepository
	Audit        AuditRepository
	Members      MemberRepository
}

// Transactor runs fn inside one atomic unit of work. If fn returns an error
// the transaction rolls back and nothing it wrote survives, the audit record
// included.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
