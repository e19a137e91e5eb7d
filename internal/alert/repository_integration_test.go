//go:build integration

package alert

import (
	"context"
	"os"
	"testing"
	"time"

	"relief-coordination-api/config"
	"relief-coordination-api/internal/database"
	"relief-coordination-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoRepositoryListByCity(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := database.Connect(ctx, config.MongoConfig{URI: uri, DBName: "relief_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := NewMongoRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, city := range []string{"pune", "delhi", "pune"} {
		a := &models.Alert{AlertID: uuid.NewString(), City: city, Message: city, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Insert(ctx, a))
		assert.False(t, a.ID.IsZero())
	}

	pune, err := repo.ListByCity(ctx, "pune", 10)
	require.NoError(t, err)
	require.Len(t, pune, 2)
	assert.True(t, pune[0].CreatedAt.After(pune[1].CreatedAt))

	all, err := repo.ListByCity(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
