package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_Metrics(t *testing.T) {
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customerRepo := repository.NewCustomerRepository(store, zap.NewNop())
	projectRepo := repository.NewProjectRepository(store, zap.NewNop())
	settingsRepo := repository.NewSettingsRepository(store, zap.NewNop())

	quoteSvc := service.NewQuoteService(quoteRepo, settingsRepo, zap.NewNop())
	customerSvc := service.NewCustomerService(customerRepo, quoteRepo, zap.NewNop())
	projectSvc := service.NewProjectService(projectRepo, quoteRepo, zap.NewNop())
	dashboard := service.NewDashboardService(quoteRepo, customerSvc, projectSvc, zap.NewNop())
	ctx := context.Background()

	_, _, err := quoteSvc.Create(ctx, createReq())
	require.NoError(t, err)

	req2 := createReq()
	req2.Email = "other@x.com"
	req2.PackageID = "premium"
	_, _, err = quoteSvc.Create(ctx, req2)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, projectRepo.Append(ctx, domain.Project{
		ID:        "p1",
		Name:      "진행 중 프로젝트",
		Status:    domain.ProjectStatusDevelopment,
		Price:     500000,
		UpdatedAt: now,
	}))
	require.NoError(t, projectRepo.Append(ctx, domain.Project{
		ID:        "p2",
		Name:      "완료 프로젝트",
		Status:    domain.ProjectStatusCompleted,
		Price:     700000,
		UpdatedAt: now,
	}))

	m, err := dashboard.Metrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, m.TotalQuotes)
	assert.Equal(t, 1, m.ActiveProjects)
	assert.Equal(t, int64(700000), m.MonthlyRevenue)

	require.Len(t, m.QuotesLast7Days, 7)
	assert.Equal(t, 2, m.QuotesLast7Days[6].Count)

	assert.Equal(t, 1, m.PackageDistribution["basic"])
	assert.Equal(t, 1, m.PackageDistribution["premium"])
	assert.Equal(t, 0, m.PackageDistribution["standard"])

	require.Len(t, m.RevenueLast6Months, 6)
	assert.Equal(t, int64(700000), m.RevenueLast6Months[5].Amount)

	assert.Equal(t, 1, m.ProjectStatusCounts["development"])
	assert.Equal(t, 1, m.ProjectStatusCounts["completed"])
	assert.NotEmpty(t, m.RecentActivity)
}
