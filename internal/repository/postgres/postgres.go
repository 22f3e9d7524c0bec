package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"

	"github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository code
// serves plain calls and transactional units of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db            *sql.DB
	lockTimeoutMS int
	repository.BookRepository
	repository.TransactionRepository
	repository.AuditRepository
	repository.MemberRepository
}

func NewStore(db *sql.DB, lockTimeoutMS int) *Store {
	return &Store{
		db:                    db,
		lockTimeoutMS:         lockTimeoutMS,
		BookRepository:        NewBookRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		AuditRepository:       NewAuditRepository(db),
		MemberRepository:      NewMemberRepository(db),
	}
}

// WithinTx implements repository.Transactor. The lock timeout is set per
// transaction so a blocked SELECT ... FOR UPDATE fails instead of queueing
// indefinitely behind a concurrent writer.
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if s.lockTimeoutMS > 0 {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeoutMS)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	repos := repository.Repositories{
		Books:        NewBookRepository(tx),
		Transactions: NewTransactionRepository(tx),
		Audit:        NewAuditRepository(tx),
		Members:      NewMemberRepository(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// uniqueActiveIssueIndex is the partial unique index backing the
// one-active-issue-per-book invariant at the storage layer.
const uniqueActiveIssueIndex = "txn_one_active_issue_idx"

// mapError translates driver errors into domain errors. A violation of the
// active-issue index means a concurrent writer issued the book first; a lock
// timeout is a retryable fault.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == uniqueActiveIssueIndex {
				return domain.ErrAlreadyIssued
			}
		case "55P03": // lock_not_available
			return domain.ErrLockWaitTimeout
		}
	}
	return err
}
