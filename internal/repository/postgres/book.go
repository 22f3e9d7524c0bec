package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"

	"github.com/google/uuid"
)

const bookCodeFormat = "ILAS-ET-%04d"

const bookColumns = `id, uid, book_code, title, author, publisher, isbn, category,
	shelf_location, status, issued_to, last_modified_by, is_active, created_on, updated_on`

type bookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if b.UID == "" {
		b.UID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookStatusAvailable
	}
	query := `INSERT INTO books (uid, book_code, title, author, publisher, isbn, category, shelf_location, status, last_modified_by, is_active, created_on, updated_on)
	          VALUES ($1, '', $2, $3, $4, $5, $6, $7, $8, $9, true, now(), now()) RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		b.UID, b.Title, b.Author, b.Publisher, b.ISBN, b.Category, b.ShelfLocation, b.Status, b.LastModified,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return mapError(err)
	}

	// The code derives from the row id, so it can only be assigned after the
	// first insert. The guard keeps an existing code from ever being
	// regenerated.
	code := fmt.Sprintf(bookCodeFormat, b.ID)
	if _, err := r.db.ExecContext(ctx,
		`UPDATE books SET book_code = $1 WHERE id = $2 AND book_code = ''`, code, b.ID); err != nil {
		return mapError(err)
	}
	b.BookCode = code
	b.IsActive = true
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return r.getOne(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
}

func (r *bookRepository) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	return r.getOne(ctx, `SELECT `+bookColumns+` FROM books WHERE book_code = $1`, code)
}

func (r *bookRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	return r.getOne(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookRepository) getOne(ctx context.Context, query string, arg any) (*domain.Book, error) {
	b := &domain.Book{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&b.ID, &b.UID, &b.BookCode, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.Category,
		&b.ShelfLocation, &b.Status, &b.IssuedTo, &b.LastModified, &b.IsActive, &b.CreatedOn, &b.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *bookRepository) UpdateDetails(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, author=$2, publisher=$3, isbn=$4, category=$5,
	          shelf_location=$6, last_modified_by=$7, updated_on=now() WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		b.Title, b.Author, b.Publisher, b.ISBN, b.Category, b.ShelfLocation, b.LastModified, b.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res, domain.ErrBookNotFound)
}

func (r *bookRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookStatus, issuedTo, modifiedBy *int64) error {
	query := `UPDATE books SET status=$1, issued_to=$2, last_modified_by=$3, updated_on=now() WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, status, issuedTo, modifiedBy, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res, domain.ErrBookNotFound)
}

func (r *bookRepository) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	query := `UPDATE books SET is_active=false, last_modified_by=$1, updated_on=now() WHERE id=$2 AND is_active`
	res, err := r.db.ExecContext(ctx, query, actorID, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res, domain.ErrBookNotFound)
}

func (r *bookRepository) List(ctx context.Context, q repository.BookQuery) ([]domain.Book, int64, error) {
	base := `FROM books WHERE is_active`
	args := []any{}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		base += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR book_code ILIKE $%d)", len(args), len(args), len(args))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		base += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d",
		bookColumns, base, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID, &b.UID, &b.BookCode, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.Category,
			&b.ShelfLocation, &b.Status, &b.IssuedTo, &b.LastModified, &b.IsActive, &b.CreatedOn, &b.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}

func (r *bookRepository) CountByStatus(ctx context.Context) (map[domain.BookStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM books WHERE is_active GROUP BY status`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	counts := make(map[domain.BookStatus]int64)
	for rows.Next() {
		var status domain.BookStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
