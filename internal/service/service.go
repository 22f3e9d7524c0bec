package service

import (
	"context"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

// LendingService is the orchestrator for every loan-state mutation. Each
// operation runs as one atomic unit of work: lock the book row, re-validate,
// mutate, append the ledger entry, write exactly one audit record.
type LendingService interface {
	Issue(ctx context.Context, bookID, memberID, actorID int64, remarks string) (*domain.BookTransaction, error)
	Return(ctx context.Context, bookID int64, memberID *int64, actorID int64, remarks string) (*domain.BookTransaction, error)
	MarkStatus(ctx context.Context, bookID int64, incident domain.TxnType, actorID int64, remarks string) (*domain.Book, error)
	Reactivate(ctx context.Context, bookID, actorID int64, remarks string) (*domain.Book, error)
	ListTransactions(ctx context.Context, q repository.TransactionQuery) ([]domain.BookTransaction, int64, error)
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book, actorID int64) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book, actorID int64) error
	DeleteBook(ctx context.Context, id, actorID int64) error
	ListBooks(ctx context.Context, q repository.BookQuery) ([]domain.Book, int64, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Member, error)
	// Register creates a member account. Only admins may register members.
	Register(ctx context.Context, member *domain.Member, password string, actorID int64) error
}

type AuditService interface {
	ListRecords(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error)
}

type ReportService interface {
	Summary(ctx context.Context) (*domain.LibrarySummary, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name, bookTitle string, daysOverdue int) error
}
