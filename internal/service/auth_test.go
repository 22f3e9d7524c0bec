package service

import (
	"context"
	"testing"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	policy := NewLendingPolicy(testLendingConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	alice := &domain.Member{
		ID:           2,
		Username:     "alice",
		PasswordHash: string(hash),
		Role:         domain.MemberRoleMember,
		IsActive:     true,
	}

	t.Run("success", func(t *testing.T) {
		members := new(MockMemberRepo)
		members.On("GetByUsername", ctx, "alice").Return(alice, nil)
		svc := NewAuthService(members, tokens, policy)

		token, member, err := svc.Login(ctx, "alice", "secret-pass")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, alice.ID, member.ID)

		claims, err := tokens.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, alice.ID, claims.MemberID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		members := new(MockMemberRepo)
		members.On("GetByUsername", ctx, "alice").Return(alice, nil)
		svc := NewAuthService(members, tokens, policy)

		_, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		members := new(MockMemberRepo)
		members.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrMemberNotFound)
		svc := NewAuthService(members, tokens, policy)

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive member", func(t *testing.T) {
		suspended := *alice
		suspended.IsActive = false
		members := new(MockMemberRepo)
		members.On("GetByUsername", ctx, "alice").Return(&suspended, nil)
		svc := NewAuthService(members, tokens, policy)

		_, _, err := svc.Login(ctx, "alice", "secret-pass")
		assert.ErrorIs(t, err, domain.ErrBorrowerInactive)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	policy := NewLendingPolicy(testLendingConfig())

	admin := &domain.Member{ID: 1, Username: "root", Role: domain.MemberRoleAdmin, IsActive: true}
	librarian := &domain.Member{ID: 3, Username: "lib", Role: domain.MemberRoleLibrarian, IsActive: true}

	t.Run("admin creates a member with a hashed password", func(t *testing.T) {
		members := new(MockMemberRepo)
		members.On("GetByID", ctx, int64(1)).Return(admin, nil)
		members.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)
		svc := NewAuthService(members, tokens, policy)

		member := &domain.Member{Username: "bob", Email: "bob@example.com"}
		err := svc.Register(ctx, member, "hunter2hunter2", 1)
		assert.NoError(t, err)
		assert.NotEqual(t, "hunter2hunter2", member.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("librarian cannot register members", func(t *testing.T) {
		members := new(MockMemberRepo)
		members.On("GetByID", ctx, int64(3)).Return(librarian, nil)
		svc := NewAuthService(members, tokens, policy)

		err := svc.Register(ctx, &domain.Member{Username: "bob"}, "hunter2hunter2", 3)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
