package database

import (
	"context"
	"errors"
	"testing"

	"relief-coordination-api/config"
	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryAccounts struct {
	users   map[string]*models.User
	findErr error
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user %q", email)
}

func (m *memoryAccounts) CreateAccount(_ context.Context, u *models.User) error {
	m.users[u.Email] = u
	return nil
}

func TestSeedSuperAdmin(t *testing.T) {
	store := &memoryAccounts{users: map[string]*models.User{}}
	cfg := config.SeedConfig{SuperAdminEmail: "root@relief.org", SuperAdminPassword: "s3cret-pass"}

	require.NoError(t, SeedSuperAdmin(context.Background(), store, cfg, zap.NewNop()))
	u := store.users["root@relief.org"]
	require.NotNil(t, u)
	assert.Equal(t, models.RoleSuperAdmin, u.Role)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.True(t, auth.CheckPasswordHash("s3cret-pass", u.Password))

	// Second run leaves the existing account alone.
	u.Name = "renamed"
	require.NoError(t, SeedSuperAdmin(context.Background(), store, cfg, zap.NewNop()))
	assert.Equal(t, "renamed", store.users["root@relief.org"].Name)
}

func TestSeedSuperAdminRequiresPassword(t *testing.T) {
	store := &memoryAccounts{users: map[string]*models.User{}}
	err := SeedSuperAdmin(context.Background(), store, config.SeedConfig{SuperAdminEmail: "a@b.c"}, zap.NewNop())
	assert.Error(t, err)
	assert.Empty(t, store.users)
}

func TestSeedSuperAdminLookupFailure(t *testing.T) {
	store := &memoryAccounts{users: map[string]*models.User{}, findErr: errors.New("no reachable servers")}
	err := SeedSuperAdmin(context.Background(), store, config.SeedConfig{SuperAdminEmail: "a@b.c", SuperAdminPassword: "x"}, zap.NewNop())
	assert.ErrorContains(t, err, "no reachable servers")
}
