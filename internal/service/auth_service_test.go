package service

import (
	"context"
	"testing"
	"time"

	"player-wallet-service/internal/core/ports/mocks"
	"player-wallet-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_IssueToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashSvc := mocks.NewMockHashService(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	svc := NewAuthService(map[string]string{"game-engine": "stored-hash"}, hashSvc, tokenSvc)

	expiry := time.Now().Add(time.Hour)
	hashSvc.EXPECT().Verify("plain-secret", "stored-hash").Return(true, nil)
	tokenSvc.EXPECT().Generate("game-engine").Return("jwt-token", expiry, nil)

	token, exp, err := svc.IssueToken(context.Background(), "game-engine", "plain-secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, expiry, exp)
}

func TestAuthService_IssueToken_UnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(map[string]string{}, mocks.NewMockHashService(ctrl), mocks.NewMockTokenService(ctrl))

	_, _, err := svc.IssueToken(context.Background(), "nobody", "secret")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_IssueToken_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashSvc := mocks.NewMockHashService(ctrl)
	svc := NewAuthService(map[string]string{"game-engine": "stored-hash"}, hashSvc, mocks.NewMockTokenService(ctrl))

	hashSvc.EXPECT().Verify("wrong", "stored-hash").Return(false, nil)

	_, _, err := svc.IssueToken(context.Background(), "game-engine", "wrong")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_001", appErr.Code)
}
