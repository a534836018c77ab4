package service

import (
	"context"
	"errors"
	"fmt"

	"kodask_bank/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// BalanceService reads account balances for authenticated identities
type BalanceService interface {
	GetBalance(ctx context.Context, username string) (string, error)
}

type balanceService struct {
	userRepo repository.UserRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(userRepo repository.UserRepository) BalanceService {
	return &balanceService{userRepo: userRepo}
}

// GetBalance returns the current balance for the given username. The user may
// have been deleted after the token was issued, hence the not-found path.
func (s *balanceService) GetBalance(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user for balance: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Balance, nil
}
