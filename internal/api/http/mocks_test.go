package http

import (
	"context"
	"net/http"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
	"ilas-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockLendingService
type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) Issue(ctx context.Context, bookID, memberID, actorID int64, remarks string) (*domain.BookTransaction, error) {
	args := m.Called(ctx, bookID, memberID, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookTransaction), args.Error(1)
}
func (m *MockLendingService) Return(ctx context.Context, bookID int64, memberID *int64, actorID int64, remarks string) (*domain.BookTransaction, error) {
	args := m.Called(ctx, bookID, memberID, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookTransaction), args.Error(1)
}
func (m *MockLendingService) MarkStatus(ctx context.Context, bookID int64, incident domain.TxnType, actorID int64, remarks string) (*domain.Book, error) {
	args := m.Called(ctx, bookID, incident, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockLendingService) Reactivate(ctx context.Context, bookID, actorID int64, remarks string) (*domain.Book, error) {
	args := m.Called(ctx, bookID, actorID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockLendingService) ListTransactions(ctx context.Context, q repository.TransactionQuery) ([]domain.BookTransaction, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.BookTransaction), args.Get(1).(int64), args.Error(2)
}

// MockBookService
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) AddBook(ctx context.Context, book *domain.Book, actorID int64) error {
	args := m.Called(ctx, book, actorID)
	return args.Error(0)
}
func (m *MockBookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) UpdateBook(ctx context.Context, book *domain.Book, actorID int64) error {
	args := m.Called(ctx, book, actorID)
	return args.Error(0)
}
func (m *MockBookService) DeleteBook(ctx context.Context, id, actorID int64) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}
func (m *MockBookService) ListBooks(ctx context.Context, q repository.BookQuery) ([]domain.Book, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Book), args.Get(1).(int64), args.Error(2)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.Member, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Member), args.Error(2)
}
func (m *MockAuthService) Register(ctx context.Context, member *domain.Member, password string, actorID int64) error {
	args := m.Called(ctx, member, password, actorID)
	return args.Error(0)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context) (*domain.LibrarySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LibrarySummary), args.Error(1)
}

// MockAuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ListRecords(ctx context.Context, page, pageSize int32) ([]domain.AuditRecord, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.AuditRecord), args.Get(1).(int64), args.Error(2)
}

// withActor injects authenticated claims the way the middleware would.
func withActor(r *http.Request, memberID int64, role domain.MemberRole) *http.Request {
	claims := &security.Claims{MemberID: memberID, Username: "tester", Role: string(role)}
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}
