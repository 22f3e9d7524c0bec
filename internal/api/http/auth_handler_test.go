package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ilas-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice", "secret-pass").
			Return("a.jwt.token", &domain.Member{ID: 2, Username: "alice", Role: domain.MemberRoleMember}, nil)
		h := NewAuthHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"username": "alice", "password": "secret-pass"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Token  string        `json:"token"`
			Member domain.Member `json:"member"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "a.jwt.token", resp.Token)
		assert.Equal(t, "alice", resp.Member.Username)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice", "wrong").
			Return("", nil, domain.ErrInvalidCredentials)
		h := NewAuthHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"username": "alice", "password": "wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"username": "alice"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	body := `{"username": "bob", "email": "bob@example.com", "password": "hunter2hunter2", "role": "member"}`

	t.Run("created", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, mock.AnythingOfType("*domain.Member"), "hunter2hunter2", int64(1)).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Member).ID = 5
			}).Return(nil)
		h := NewAuthHandler(svc)

		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/members",
			bytes.NewBufferString(body)), 1, domain.MemberRoleAdmin)
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var member domain.Member
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &member))
		assert.Equal(t, int64(5), member.ID)
		assert.Equal(t, "bob", member.Username)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, mock.Anything, "hunter2hunter2", int64(3)).
			Return(domain.ErrNotAuthorized)
		h := NewAuthHandler(svc)

		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/members",
			bytes.NewBufferString(body)), 3, domain.MemberRoleLibrarian)
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService))
		req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/members",
			bytes.NewBufferString(`{"username": "bob"}`)), 1, domain.MemberRoleAdmin)
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
