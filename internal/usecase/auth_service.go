package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/user"
)

type AuthService struct {
	userRepo user.Repository
}

func NewAuthService(userRepo user.Repository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// VerifyToken resolves a bearer token to a principal. Any unknown or
// blank token is ErrUnauthorized; the caller never learns which.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	item, found, err := s.userRepo.GetByAPIToken(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("verify token: %w", err)
	}
	if !found {
		return user.Principal{}, fmt.Errorf("%w: unknown bearer token", ErrUnauthorized)
	}

	return user.Principal{
		UserID: item.ID,
		Email:  item.Email,
		Role:   item.Role,
	}, nil
}
