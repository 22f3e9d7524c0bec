package service

import (
	"context"
	"time"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// stubTransactor runs the closure against the supplied repositories without a
// real database transaction.
type stubTransactor struct {
	repos repository.Repositories
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	return fn(s.repos)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) UpdateDetails(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookStatus, issuedTo, modifiedBy *int64) error {
	args := m.Called(ctx, id, status, issuedTo, modifiedBy)
	return args.Error(0)
}
func (m *MockBookRepo) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}
func (m *MockBookRepo) List(ctx context.Context, q repository.BookQuery) ([]domain.Book, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Book), args.Get(1).(int64), args.Error(2)
}
func (m *MockBookRepo) CountByStatus(ctx context.Context) (map[domain.BookStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.BookStatus]int64), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *domain.BookTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetActiveIssue(ctx context.Context, bookID int64) (*domain.BookTransaction, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookTransaction), args.Error(1)
}
func (m *MockTransactionRepo) CountActiveByMember(ctx context.Context, memberID int64) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTransactionRepo) CloseActiveIssue(ctx context.Context, txnID int64, returnDate time.Time, fineCents int64) error {
	args := m.Called(ctx, txnID, returnDate, fineCents)
	return args.Error(0)
}
func (m *MockTransactionRepo) List(ctx context.Context, q repository.TransactionQuery) ([]domain.BookTransaction, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.BookTransaction), args.Get(1).(int64), args.Error(2)
}
func (m *MockTransactionRepo) ListOverdueActive(ctx context.Context, asOf time.Time) ([]domain.BookTransaction, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.BookTransaction), args.Error(1)
}
func (m *MockTransactionRepo) SumFines(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, rec *domain.AuditRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockAuditRepo) List(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.AuditRecord), args.Get(1).(int64), args.Error(2)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
