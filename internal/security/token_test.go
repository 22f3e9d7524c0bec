package security

import (
	"testing"
	"time"

	"ilas-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	member := &domain.Member{ID: 2, Username: "alice", Role: domain.MemberRoleMember}

	token, err := manager.Generate(member)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), claims.MemberID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "ilas-backend", claims.Issuer)
}

func TestTokenManager_Validate(t *testing.T) {
	manager := NewTokenManager("0123456789abcdef0123456789abcdef", 60)

	t.Run("garbage", func(t *testing.T) {
		_, err := manager.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", 60)
		token, err := other.Generate(&domain.Member{ID: 1, Username: "lib"})
		assert.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := &tokenManager{secret: []byte("0123456789abcdef0123456789abcdef"), expiry: -time.Minute}
		token, err := expired.Generate(&domain.Member{ID: 1, Username: "lib"})
		assert.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
