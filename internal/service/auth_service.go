package service

import (
	"context"
	"fmt"
	"time"

	"player-wallet-service/internal/core/ports"
	"player-wallet-service/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService for a fixed set of
// service clients. Clients are provisioned via configuration as
// client_id plus Argon2id secret hash; there is no self-registration.
type AuthServiceImpl struct {
	clients  map[string]string // client_id -> secret hash
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(clients map[string]string, hashSvc ports.HashService, tokenSvc ports.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		clients:  clients,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
	}
}

// IssueToken validates client credentials and returns a JWT.
func (s *AuthServiceImpl) IssueToken(_ context.Context, clientID, clientSecret string) (string, time.Time, error) {
	secretHash, ok := s.clients[clientID]
	if !ok {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(clientSecret, secretHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify secret: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(clientID)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
