package service

import (
	"context"
	"fmt"
	"time"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/logger"
	"ilas-backend/internal/repository"
)

type lendingService struct {
	transactor repository.Transactor
	members    repository.MemberRepository
	txns       repository.TransactionRepository
	policy     *LendingPolicy
	now        func() time.Time
}

func NewLendingService(
	transactor repository.Transactor,
	members repository.MemberRepository,
	txns repository.TransactionRepository,
	policy *LendingPolicy,
) LendingService {
	return &lendingService{
		transactor: transactor,
		members:    members,
		txns:       txns,
		policy:     policy,
		now:        time.Now,
	}
}

// Issue lends a book to a member. Preconditions are re-validated under the
// exclusive row lock, and the ledger entry, status write and audit record
// commit atomically or not at all.
func (s *lendingService) Issue(ctx context.Context, bookID, memberID, actorID int64, remarks string) (*domain.BookTransaction, error) {
	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, OpIssue); err != nil {
		return nil, err
	}

	var txn *domain.BookTransaction
	err = s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		book, err := r.Books.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if !book.CanBeIssued() {
			if book.Status == domain.BookStatusIssued {
				return domain.ErrAlreadyIssued
			}
			return domain.ErrItemUnavailable
		}

		// The status check above should make this redundant, but the ledger
		// is the source of truth for the single-active-issue invariant.
		active, err := r.Transactions.GetActiveIssue(ctx, bookID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrAlreadyIssued
		}

		// Locking the member row serializes concurrent issues to the same
		// borrower, so the loan-limit count below cannot race.
		member, err := r.Members.GetForUpdate(ctx, memberID)
		if err != nil {
			return err
		}
		if !member.IsActive {
			return domain.ErrBorrowerInactive
		}

		activeCount, err := r.Transactions.CountActiveByMember(ctx, memberID)
		if err != nil {
			return err
		}
		if activeCount >= int64(s.policy.MaxActiveLoans()) {
			return domain.ErrLoanLimitExceeded
		}

		now := s.now()
		due := now.AddDate(0, 0, s.policy.LoanDurationDays(member))
		txn = &domain.BookTransaction{
			BookID:    bookID,
			MemberID:  &memberID,
			ActorID:   &actorID,
			TxnType:   domain.TxnTypeIssue,
			IssueDate: &now,
			DueDate:   &due,
			IsActive:  true,
			Remarks:   remarks,
		}
		if err := r.Transactions.Create(ctx, txn); err != nil {
			return err
		}

		if err := r.Books.UpdateStatus(ctx, bookID, domain.BookStatusIssued, &memberID, &actorID); err != nil {
			return err
		}

		return r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionBookIssue,
			TargetType: "Book",
			TargetID:   book.BookCode,
			NewValues: map[string]any{
				"issued_to": member.Username,
				"due_date":  due.Format(time.RFC3339),
			},
			Remarks: remarks,
			Source:  "api",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("book issued", "book_id", bookID, "member_id", memberID, "due_date", txn.DueDate)
	return txn, nil
}

// Return closes the active loan. memberID is the borrower handing the book
// back; elevated operators may pass nil to accept whoever holds it, while a
// non-elevated actor can only return their own loan.
func (s *lendingService) Return(ctx context.Context, bookID int64, memberID *int64, actorID int64, remarks string) (*domain.BookTransaction, error) {
	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, OpReturn); err != nil {
		return nil, err
	}

	var returnTxn *domain.BookTransaction
	err = s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		book, err := r.Books.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		active, err := r.Transactions.GetActiveIssue(ctx, bookID)
		if err != nil {
			return err
		}
		if active == nil {
			return domain.ErrNoActiveIssue
		}

		holder := active.MemberID
		if !actor.Elevated() {
			if holder == nil || *holder != actor.ID {
				return domain.ErrReturnMismatch
			}
		} else if memberID != nil && (holder == nil || *holder != *memberID) {
			return domain.ErrReturnMismatch
		}

		now := s.now()
		fine := ComputeFine(active.DueDate, now, s.policy.FineGraceDays(), int64(s.policy.FinePerDayCents()))

		// Sets return_date and the fine exactly once; the ledger rejects a
		// second close rather than let the fine change.
		if err := r.Transactions.CloseActiveIssue(ctx, active.ID, now, fine); err != nil {
			return err
		}

		returnTxn = &domain.BookTransaction{
			BookID:          bookID,
			MemberID:        holder,
			ActorID:         &actorID,
			TxnType:         domain.TxnTypeReturn,
			IssueDate:       active.IssueDate,
			DueDate:         active.DueDate,
			ReturnDate:      &now,
			FineAmountCents: fine,
			Remarks:         remarks,
		}
		if err := r.Transactions.Create(ctx, returnTxn); err != nil {
			return err
		}

		if err := r.Books.UpdateStatus(ctx, bookID, domain.BookStatusAvailable, nil, &actorID); err != nil {
			return err
		}

		return r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionBookReturn,
			TargetType: "Book",
			TargetID:   book.BookCode,
			NewValues: map[string]any{
				"fine_amount_cents": fine,
				"return_date":       now.Format(time.RFC3339),
			},
			Remarks: remarks,
			Source:  "api",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("book returned", "book_id", bookID, "fine_cents", returnTxn.FineAmountCents)
	return returnTxn, nil
}

// MarkStatus records an incident (lost, damaged, maintenance, removed). An
// issued book must come back through Return first, and a removed book is
// terminal.
func (s *lendingService) MarkStatus(ctx context.Context, bookID int64, incident domain.TxnType, actorID int64, remarks string) (*domain.Book, error) {
	newStatus, ok := incident.IncidentStatus()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatusType, incident)
	}

	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, OpMarkStatus); err != nil {
		return nil, err
	}

	var book *domain.Book
	err = s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		book, err = r.Books.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book.Status.IsTerminal() {
			return domain.ErrTerminalState
		}

		active, err := r.Transactions.GetActiveIssue(ctx, bookID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrReturnRequiredFirst
		}

		if err := r.Books.UpdateStatus(ctx, bookID, newStatus, nil, &actorID); err != nil {
			return err
		}

		if err := r.Transactions.Create(ctx, &domain.BookTransaction{
			BookID:  bookID,
			ActorID: &actorID,
			TxnType: incident,
			Remarks: remarks,
		}); err != nil {
			return err
		}

		if err := r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionStatusChange,
			TargetType: "Book",
			TargetID:   book.BookCode,
			OldValues:  map[string]any{"status": string(book.Status)},
			NewValues:  map[string]any{"status": string(newStatus)},
			Remarks:    remarks,
			Source:     "api",
		}); err != nil {
			return err
		}

		book.Status = newStatus
		book.IssuedTo = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("book status changed", "book_id", bookID, "status", newStatus)
	return book, nil
}

// Reactivate brings a lost, damaged or under-maintenance book back to
// AVAILABLE. Removed stays removed.
func (s *lendingService) Reactivate(ctx context.Context, bookID, actorID int64, remarks string) (*domain.Book, error) {
	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, OpMarkStatus); err != nil {
		return nil, err
	}

	var book *domain.Book
	err = s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		book, err = r.Books.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book.Status.IsTerminal() {
			return domain.ErrTerminalState
		}
		switch book.Status {
		case domain.BookStatusLost, domain.BookStatusDamaged, domain.BookStatusMaintenance:
		case domain.BookStatusIssued:
			return domain.ErrReturnRequiredFirst
		default:
			return fmt.Errorf("%w: book is already available", domain.ErrInvalidStatusType)
		}

		if err := r.Books.UpdateStatus(ctx, bookID, domain.BookStatusAvailable, nil, &actorID); err != nil {
			return err
		}

		if err := r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionStatusChange,
			TargetType: "Book",
			TargetID:   book.BookCode,
			OldValues:  map[string]any{"status": string(book.Status)},
			NewValues:  map[string]any{"status": string(domain.BookStatusAvailable)},
			Remarks:    remarks,
			Source:     "api",
		}); err != nil {
			return err
		}

		book.Status = domain.BookStatusAvailable
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("book reactivated", "book_id", bookID)
	return book, nil
}

func (s *lendingService) ListTransactions(ctx context.Context, q repository.TransactionQuery) ([]domain.BookTransaction, int64, error) {
	return s.txns.List(ctx, q)
}
