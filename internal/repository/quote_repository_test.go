package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupQuoteRepo(t *testing.T) *repository.QuoteRepository {
	t.Helper()
	store, err := recordstore.OpenSQLite(filepath.Join(t.TempDir(), "store.db"), zap.NewNop())
	require.NoError(t, err)
	return repository.NewQuoteRepository(store, nil, zap.NewNop())
}

func testQuote(id string) domain.Quote {
	return domain.Quote{
		ID: id,
		CustomerInfo: domain.CustomerInfo{
			Name:  "홍길동",
			Email: "hong@x.com",
			Phone: "010-1234-5678",
		},
		Package:     domain.PackageSelection{ID: "basic", Name: "스파크 1P", Price: 99000},
		TotalAmount: 108900,
		Status:      domain.QuoteStatusPending,
		CreatedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestQuoteRepository_AppendAndList(t *testing.T) {
	repo := setupQuoteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testQuote("q1")))
	require.NoError(t, repo.Append(ctx, testQuote("q2")))

	quotes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "q1", quotes[0].ID)
	assert.Equal(t, "q2", quotes[1].ID)
}

func TestQuoteRepository_ListEmptyStore(t *testing.T) {
	repo := setupQuoteRepo(t)

	quotes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuoteRepository_SetStatus(t *testing.T) {
	repo := setupQuoteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testQuote("q1")))
	require.NoError(t, repo.SetStatus(ctx, "q1", domain.QuoteStatusAccepted))

	quote, err := repo.GetByID(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, quote.Status)
}

func TestQuoteRepository_SetStatusUnknownID(t *testing.T) {
	repo := setupQuoteRepo(t)
	err := repo.SetStatus(context.Background(), "missing", domain.QuoteStatusAccepted)
	assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
}

func TestQuoteRepository_Remove(t *testing.T) {
	repo := setupQuoteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testQuote("q1")))
	require.NoError(t, repo.Append(ctx, testQuote("q2")))
	require.NoError(t, repo.Remove(ctx, "q1"))

	quotes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "q2", quotes[0].ID)

	_, err = repo.GetByID(ctx, "q1")
	assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
}

func TestQuoteRepository_RemoveUnknownID(t *testing.T) {
	repo := setupQuoteRepo(t)
	err := repo.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
}

func TestQuoteRepository_Count(t *testing.T) {
	repo := setupQuoteRepo(t)
	ctx := context.Background()

	assert.Equal(t, 0, repo.Count(ctx))
	require.NoError(t, repo.Append(ctx, testQuote("q1")))
	assert.Equal(t, 1, repo.Count(ctx))
}
