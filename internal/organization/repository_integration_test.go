//go:build integration

package organization

import (
	"context"
	"os"
	"testing"
	"time"

	"relief-coordination-api/config"
	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/database"
	"relief-coordination-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	client, db, err := database.Connect(context.Background(), config.MongoConfig{URI: uri, DBName: "relief_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepository(newTestDB(t))
	require.NoError(t, repo.EnsureIndexes(ctx))

	org := &models.Organization{RegistrationNumber: "HOSP-001", Name: "City Hospital", Status: models.OrgStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, org))
	assert.False(t, org.ID.IsZero())

	dup := &models.Organization{RegistrationNumber: "HOSP-001"}
	assert.ErrorIs(t, repo.Create(ctx, dup), apperr.ErrConflict)

	n, err := repo.Count(ctx, "HOSP-001")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	approved, err := repo.UpdateStatus(ctx, "HOSP-001", models.OrgStatusApproved, "root@relief.org", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, models.OrgStatusApproved, approved.Status)

	pending, err := repo.List(ctx, models.OrgStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = repo.UpdateStatus(ctx, "HOSP-404", models.OrgStatusApproved, "x", time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "HOSP-001"))
	_, err = repo.Get(ctx, "HOSP-001")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := auth.NewUserRepository(newTestDB(t))
	require.NoError(t, users.EnsureIndexes(ctx))

	u := &models.User{Email: "ops@hospital.org", Role: models.RoleOrganization, RegistrationNumber: "HOSP-001", Status: models.UserStatusPending}
	require.NoError(t, users.CreateAccount(ctx, u))
	assert.ErrorIs(t, users.CreateAccount(ctx, &models.User{Email: "ops@hospital.org"}), apperr.ErrConflict)

	require.NoError(t, users.SetAccountStatus(ctx, "HOSP-001", models.UserStatusActive))
	got, err := users.FindByEmail(ctx, "ops@hospital.org")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, got.Status)
}
