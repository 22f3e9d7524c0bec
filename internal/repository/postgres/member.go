package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

const memberColumns = `id, username, email, password_hash, role, loan_class, is_active, created_on`

type memberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	if m.Role == "" {
		m.Role = domain.MemberRoleMember
	}
	if m.LoanClass == "" {
		m.LoanClass = domain.LoanClassStandard
	}
	query := `INSERT INTO members (username, email, password_hash, role, loan_class, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, true, now()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		m.Username, m.Email, m.PasswordHash, m.Role, m.LoanClass,
	).Scan(&m.ID, &m.CreatedOn)
	if err != nil {
		return mapError(err)
	}
	m.IsActive = true
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

func (r *memberRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1 FOR UPDATE`, id)
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE username = $1`, username)
}

func (r *memberRepository) getOne(ctx context.Context, query string, arg any) (*domain.Member, error) {
	m := &domain.Member{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&m.ID, &m.Username, &m.Email, &m.PasswordHash, &m.Role, &m.LoanClass, &m.IsActive, &m.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}
