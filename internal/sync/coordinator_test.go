package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	coordinator *Coordinator
	quotes      *repository.QuoteRepository
	customers   *repository.CustomerRepository
	projects    *repository.ProjectRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := recordstore.OpenSQLite(filepath.Join(t.TempDir(), "store.db"), zap.NewNop())
	require.NoError(t, err)

	quotes := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customers := repository.NewCustomerRepository(store, zap.NewNop())
	projects := repository.NewProjectRepository(store, zap.NewNop())

	return &fixture{
		coordinator: NewCoordinator(store, quotes, customers, projects, &config.SyncConfig{PollInterval: 1}, zap.NewNop()),
		quotes:      quotes,
		customers:   customers,
		projects:    projects,
	}
}

func quote(id, name, email string, status domain.QuoteStatus, amount int64, createdAt time.Time) domain.Quote {
	return domain.Quote{
		ID:           id,
		CustomerInfo: domain.CustomerInfo{Name: name, Email: email},
		TotalAmount:  amount,
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func TestCoordinator_RefreshDerivesCustomers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.quotes.Append(ctx, quote("q1", "홍길동", "hong@x.com", domain.QuoteStatusNew, 99000, base)))
	require.NoError(t, f.quotes.Append(ctx, quote("q2", "홍길동", "HONG@x.com", domain.QuoteStatusNew, 50000, base.Add(time.Hour))))

	require.NoError(t, f.coordinator.Refresh(ctx))

	customers := f.customers.List(ctx)
	require.Len(t, customers, 1)
	assert.Equal(t, 2, customers[0].TotalQuotes)
	assert.Equal(t, int64(149000), customers[0].TotalAmount)
}

func TestCoordinator_RefreshFollowsDeletion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.quotes.Append(ctx, quote("q1", "홍길동", "hong@x.com", domain.QuoteStatusNew, 99000, base)))
	require.NoError(t, f.quotes.Append(ctx, quote("q2", "김철수", "kim@x.com", domain.QuoteStatusNew, 390000, base)))
	require.NoError(t, f.coordinator.Refresh(ctx))
	require.Len(t, f.customers.List(ctx), 2)

	require.NoError(t, f.quotes.Remove(ctx, "q2"))
	require.NoError(t, f.coordinator.Refresh(ctx))

	customers := f.customers.List(ctx)
	require.Len(t, customers, 1)
	assert.Equal(t, "홍길동", customers[0].Name)
}

func TestCoordinator_SeedsProjectsOnceThenPreserves(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.quotes.Append(ctx, quote("q1", "홍길동", "hong@x.com", domain.QuoteStatusAccepted, 429000, base)))
	require.NoError(t, f.coordinator.Refresh(ctx))

	seeded := f.projects.List(ctx)
	require.Len(t, seeded, 1)
	assert.Equal(t, "q1", seeded[0].QuoteID)

	// a second refresh leaves the seeded collection untouched
	require.NoError(t, f.coordinator.Refresh(ctx))
	assert.Equal(t, seeded, f.projects.List(ctx))
}

func TestCoordinator_BusTriggersRefresh(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	f.coordinator.Start(ctx)
	defer f.coordinator.Stop()

	require.NoError(t, f.quotes.Append(ctx, quote("q1", "홍길동", "hong@x.com", domain.QuoteStatusNew, 99000, base)))

	assert.Eventually(t, func() bool {
		return len(f.customers.List(context.Background())) == 1
	}, 3*time.Second, 20*time.Millisecond)
}
