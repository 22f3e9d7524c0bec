package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

const txnColumns = `id, book_id, member_id, actor_id, txn_type, issue_date, due_date,
	return_date, fine_amount_cents, is_active, remarks, created_on`

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.BookTransaction) error {
	// Non-ISSUE entries are never active, whatever the caller set.
	if t.TxnType != domain.TxnTypeIssue {
		t.IsActive = false
	}
	query := `INSERT INTO book_transactions (book_id, member_id, actor_id, txn_type, issue_date, due_date, return_date, fine_amount_cents, is_active, remarks, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		t.BookID, t.MemberID, t.ActorID, t.TxnType, t.IssueDate, t.DueDate,
		t.ReturnDate, t.FineAmountCents, t.IsActive, t.Remarks,
	).Scan(&t.ID, &t.CreatedOn)
	return mapError(err)
}

func (r *transactionRepository) GetActiveIssue(ctx context.Context, bookID int64) (*domain.BookTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM book_transactions
	          WHERE book_id = $1 AND txn_type = 'ISSUE' AND is_active`
	t := &domain.BookTransaction{}
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&t.ID, &t.BookID, &t.MemberID, &t.ActorID, &t.TxnType, &t.IssueDate, &t.DueDate,
		&t.ReturnDate, &t.FineAmountCents, &t.IsActive, &t.Remarks, &t.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *transactionRepository) CountActiveByMember(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM book_transactions WHERE member_id = $1 AND txn_type = 'ISSUE' AND is_active`
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	return count, mapError(err)
}

// CloseActiveIssue is the only mutation any ledger row ever sees. The WHERE
// clause restricts it to the in-flight active-to-returned transition, so a
// fine that has been persisted can never be overwritten through this path.
func (r *transactionRepository) CloseActiveIssue(ctx context.Context, txnID int64, returnDate time.Time, fineCents int64) error {
	query := `UPDATE book_transactions SET is_active = false, return_date = $1, fine_amount_cents = $2
	          WHERE id = $3 AND txn_type = 'ISSUE' AND is_active`
	res, err := r.db.ExecContext(ctx, query, returnDate, fineCents, txnID)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrFineImmutable
	}
	return nil
}

func (r *transactionRepository) List(ctx context.Context, q repository.TransactionQuery) ([]domain.BookTransaction, int64, error) {
	base := `FROM book_transactions WHERE true`
	args := []any{}
	if q.BookID != 0 {
		args = append(args, q.BookID)
		base += fmt.Sprintf(" AND book_id = $%d", len(args))
	}
	if q.MemberID != 0 {
		args = append(args, q.MemberID)
		base += fmt.Sprintf(" AND member_id = $%d", len(args))
	}
	if q.Active != nil {
		args = append(args, *q.Active)
		base += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d",
		txnColumns, base, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()
	return scanTransactions(rows, count)
}

func (r *transactionRepository) ListOverdueActive(ctx context.Context, asOf time.Time) ([]domain.BookTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM book_transactions
	          WHERE txn_type = 'ISSUE' AND is_active AND due_date IS NOT NULL AND due_date < $1
	          ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	txns, _, err := scanTransactions(rows, 0)
	return txns, err
}

func (r *transactionRepository) SumFines(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(sum(fine_amount_cents), 0) FROM book_transactions WHERE txn_type = 'RETURN'`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, mapError(err)
}

func scanTransactions(rows *sql.Rows, count int64) ([]domain.BookTransaction, int64, error) {
	var txns []domain.BookTransaction
	for rows.Next() {
		var t domain.BookTransaction
		if err := rows.Scan(
			&t.ID, &t.BookID, &t.MemberID, &t.ActorID, &t.TxnType, &t.IssueDate, &t.DueDate,
			&t.ReturnDate, &t.FineAmountCents, &t.IsActive, &t.Remarks, &t.CreatedOn,
		); err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	return txns, count, rows.Err()
}
