package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/catalog-api/internal/utils"
	"github.com/shopgrid/catalog-api/pkg/keycloak"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Login(ctx context.Context, username, password string) (*keycloak.TokenResponse, error) {
	args := m.Called(ctx, username, password)
	if t := args.Get(0); t != nil {
		return t.(*keycloak.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if t := args.Get(0); t != nil {
		return t.(*keycloak.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func TestAuthLogin(t *testing.T) {
	idp := new(MockIdentityProvider)
	svc := NewAuthService(idp)

	idp.On("Login", mock.Anything, "admin", "secret").Return(&keycloak.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    300,
		TokenType:    "Bearer",
	}, nil)

	pair, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	assert.Equal(t, 300, pair.ExpiresIn)
	assert.Equal(t, "Bearer", pair.TokenType)
}

func TestAuthLoginRejected(t *testing.T) {
	idp := new(MockIdentityProvider)
	svc := NewAuthService(idp)

	idp.On("Login", mock.Anything, "admin", "wrong").
		Return(nil, fmt.Errorf("status 401: %w", keycloak.ErrUpstreamRejected))

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthLoginUpstreamDown(t *testing.T) {
	idp := new(MockIdentityProvider)
	svc := NewAuthService(idp)

	upstreamErr := fmt.Errorf("connection refused")
	idp.On("Login", mock.Anything, "admin", "secret").Return(nil, upstreamErr)

	_, err := svc.Login(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthRefreshRejected(t *testing.T) {
	idp := new(MockIdentityProvider)
	svc := NewAuthService(idp)

	idp.On("Refresh", mock.Anything, "stale").
		Return(nil, keycloak.ErrUpstreamRejected)

	_, err := svc.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthLogout(t *testing.T) {
	idp := new(MockIdentityProvider)
	svc := NewAuthService(idp)

	idp.On("Logout", mock.Anything, "refresh").Return(nil)
	require.NoError(t, svc.Logout(context.Background(), "refresh"))
}
