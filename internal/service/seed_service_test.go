package service_test

import (
	"context"
	"testing"

	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSeedService(t *testing.T) (*service.SeedService, *service.QuoteService, *repository.QuoteRepository) {
	t.Helper()
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	settingsRepo := repository.NewSettingsRepository(store, zap.NewNop())
	return service.NewSeedService(store, quoteRepo, zap.NewNop()),
		service.NewQuoteService(quoteRepo, settingsRepo, zap.NewNop()),
		quoteRepo
}

func TestSeedService_RestoreIsIdempotent(t *testing.T) {
	seed, _, repo := setupSeedService(t)
	ctx := context.Background()

	added, err := seed.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = seed.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	assert.Equal(t, 3, repo.Count(ctx))
}

func TestSeedService_RemoveTestDataKeepsRealQuotes(t *testing.T) {
	seed, quotes, repo := setupSeedService(t)
	ctx := context.Background()

	_, err := seed.Restore(ctx)
	require.NoError(t, err)

	real, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	removed, err := seed.RemoveTestData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, real.ID, remaining[0].ID)
}

func TestSeedService_ResetAllWipesEverything(t *testing.T) {
	seed, quotes, repo := setupSeedService(t)
	ctx := context.Background()

	_, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	require.NoError(t, seed.ResetAll(ctx))
	assert.Equal(t, 0, repo.Count(ctx))
}
