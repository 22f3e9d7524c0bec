package service

import (
	"context"
	"errors"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
	"ilas-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	members repository.MemberRepository
	tokens  security.TokenManager
	policy  *LendingPolicy
}

func NewAuthService(members repository.MemberRepository, tokens security.TokenManager, policy *LendingPolicy) AuthService {
	return &authService{members: members, tokens: tokens, policy: policy}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Member, error) {
	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !member.IsActive {
		return "", nil, domain.ErrBorrowerInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(member)
	if err != nil {
		return "", nil, err
	}
	return token, member, nil
}

func (s *authService) Register(ctx context.Context, member *domain.Member, password string, actorID int64) error {
	actor, err := s.members.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(actor, OpManageMembers); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	member.PasswordHash = string(hash)
	return s.members.Create(ctx, member)
}
