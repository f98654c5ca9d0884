package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/shopgrid/catalog-api/internal/utils"
	"github.com/shopgrid/catalog-api/pkg/keycloak"
)

// identityProvider is the token-exchange surface of the external IdP.
type identityProvider interface {
	Login(ctx context.Context, username, password string) (*keycloak.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthService proxies authentication to the external identity provider.
// No token inspection or caching happens here.
type AuthService struct {
	idp identityProvider
}

// NewAuthService constructs an AuthService.
func NewAuthService(idp identityProvider) *AuthService {
	return &AuthService{idp: idp}
}

// TokenPair is the token payload returned to API clients.
type TokenPair struct {
	AccessToken      string `json:"accessToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshToken     string `json:"refreshToken"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
	TokenType        string `json:"tokenType"`
}

// Login exchanges username/password for a token pair. Any upstream
// rejection maps to invalid credentials; callers get no detail beyond that.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	token, err := s.idp.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, keycloak.ErrUpstreamRejected) {
			log.Warn().Str("username", username).Msg("login rejected by identity provider")
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}
	return fromToken(token), nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.idp.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, keycloak.ErrUpstreamRejected) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}
	return fromToken(token), nil
}

// Logout revokes the refresh token upstream.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.idp.Logout(ctx, refreshToken); err != nil {
		if errors.Is(err, keycloak.ErrUpstreamRejected) {
			return utils.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

func fromToken(t *keycloak.TokenResponse) *TokenPair {
	return &TokenPair{
		AccessToken:      t.AccessToken,
		ExpiresIn:        t.ExpiresIn,
		RefreshToken:     t.RefreshToken,
		RefreshExpiresIn: t.RefreshExpiresIn,
		TokenType:        t.TokenType,
	}
}
