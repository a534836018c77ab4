package service

import (
	"context"
	"testing"
	"time"

	"kodask_bank/internal/model"
	"kodask_bank/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceService_FreshUserGetsDefaultBalance(t *testing.T) {
	userRepo := newFakeUserRepo()
	authSvc := NewAuthService(userRepo, newFakeTokenRepo(), utils.NewJWTUtil("secret", time.Hour), false)
	balanceSvc := NewBalanceService(userRepo)

	_, err := authSvc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	balance, err := balanceSvc.GetBalance(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, model.DefaultBalance, balance)
}

func TestBalanceService_UserGone(t *testing.T) {
	balanceSvc := NewBalanceService(newFakeUserRepo())

	// Identity resolved from a token whose user row no longer exists
	_, err := balanceSvc.GetBalance(context.Background(), "deleted-user")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
