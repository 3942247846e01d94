package service_test

import (
	"context"
	"testing"

	"github.com/abtweb/studio-api/internal/aggregate"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCustomerService(t *testing.T) (*service.CustomerService, *service.QuoteService, *repository.CustomerRepository) {
	t.Helper()
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customerRepo := repository.NewCustomerRepository(store, zap.NewNop())
	settingsRepo := repository.NewSettingsRepository(store, zap.NewNop())
	return service.NewCustomerService(customerRepo, quoteRepo, zap.NewNop()),
		service.NewQuoteService(quoteRepo, settingsRepo, zap.NewNop()),
		customerRepo
}

func TestCustomerService_QuotesFor(t *testing.T) {
	customers, quotes, customerRepo := setupCustomerService(t)
	ctx := context.Background()

	q1, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	req2 := createReq()
	req2.Email = "other@x.com"
	_, _, err = quotes.Create(ctx, req2)
	require.NoError(t, err)

	// derive the collection the way the coordinator does
	all, err := quotes.List(ctx)
	require.NoError(t, err)
	require.NoError(t, customerRepo.Replace(ctx, aggregate.DeriveCustomers(all)))

	derived := customers.List(ctx)
	require.Len(t, derived, 2)

	var hongID int
	for _, c := range derived {
		if c.Email == "hong@x.com" {
			hongID = c.ID
		}
	}
	require.NotZero(t, hongID)

	attributed, err := customers.QuotesFor(ctx, hongID)
	require.NoError(t, err)
	require.Len(t, attributed, 1)
	assert.Equal(t, q1.ID, attributed[0].ID)
}

func TestCustomerService_GetUnknownID(t *testing.T) {
	customers, _, _ := setupCustomerService(t)
	_, err := customers.Get(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestCustomerService_StatsEmpty(t *testing.T) {
	customers, _, _ := setupCustomerService(t)
	stats := customers.Stats(context.Background())
	assert.Zero(t, stats.NewThisMonth)
	assert.Zero(t, stats.RepeatCustomers)
	assert.Zero(t, stats.AvgOrderValue)
}
