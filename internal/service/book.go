package service

import (
	"context"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

type bookService struct {
	transactor repository.Transactor
	books      repository.BookRepository
	members    repository.MemberRepository
	policy     *LendingPolicy
}

func NewBookService(
	transactor repository.Transactor,
	books repository.BookRepository,
	members repository.MemberRepository,
	policy *LendingPolicy,
) BookService {
	return &bookService{transactor: transactor, books: books, members: members, policy: policy}
}

// authorize loads the acting member and checks catalog-management rights.
func (s *bookService) authorize(ctx context.Context, actorID int64) error {
	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	return s.policy.Authorize(actor, OpManageBooks)
}

func (s *bookService) AddBook(ctx context.Context, book *domain.Book, actorID int64) error {
	if err := s.authorize(ctx, actorID); err != nil {
		return err
	}
	book.LastModified = &actorID
	return s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Books.Create(ctx, book); err != nil {
			return err
		}
		return r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionBookAdd,
			TargetType: "Book",
			TargetID:   book.BookCode,
			NewValues:  map[string]any{"title": book.Title, "author": book.Author},
			Source:     "api",
		})
	})
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// UpdateBook edits catalog metadata. The status, holder and code fields are
// owned by the lending orchestrator and are not touched here.
func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book, actorID int64) error {
	if err := s.authorize(ctx, actorID); err != nil {
		return err
	}
	book.LastModified = &actorID
	return s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		current, err := r.Books.GetForUpdate(ctx, book.ID)
		if err != nil {
			return err
		}
		if err := r.Books.UpdateDetails(ctx, book); err != nil {
			return err
		}
		return r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionBookEdit,
			TargetType: "Book",
			TargetID:   current.BookCode,
			OldValues:  map[string]any{"title": current.Title, "author": current.Author},
			NewValues:  map[string]any{"title": book.Title, "author": book.Author},
			Source:     "api",
		})
	})
}

// DeleteBook soft-deletes; the row and its ledger history stay. A book with
// an active issue cannot be deleted.
func (s *bookService) DeleteBook(ctx context.Context, id, actorID int64) error {
	if err := s.authorize(ctx, actorID); err != nil {
		return err
	}
	return s.transactor.WithinTx(ctx, func(r repository.Repositories) error {
		book, err := r.Books.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		active, err := r.Transactions.GetActiveIssue(ctx, id)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrReturnRequiredFirst
		}
		if err := r.Books.SoftDelete(ctx, id, actorID); err != nil {
			return err
		}
		return r.Audit.Create(ctx, &domain.AuditRecord{
			ActorID:    &actorID,
			Action:     domain.AuditActionBookDelete,
			TargetType: "Book",
			TargetID:   book.BookCode,
			OldValues:  map[string]any{"title": book.Title, "status": string(book.Status)},
			Source:     "api",
		})
	})
}

func (s *bookService) ListBooks(ctx context.Context, q repository.BookQuery) ([]domain.Book, int64, error) {
	return s.books.List(ctx, q)
}
