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

func setupProjectService(t *testing.T) (*service.ProjectService, *service.QuoteService) {
	t.Helper()
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	projectRepo := repository.NewProjectRepository(store, zap.NewNop())
	settingsRepo := repository.NewSettingsRepository(store, zap.NewNop())
	return service.NewProjectService(projectRepo, quoteRepo, zap.NewNop()),
		service.NewQuoteService(quoteRepo, settingsRepo, zap.NewNop())
}

func projectReq(quoteID string) *domain.CreateProjectRequest {
	return &domain.CreateProjectRequest{
		QuoteID:   quoteID,
		Name:      "홍길동 홈페이지",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectStatusPlanning,
		Progress:  0,
	}
}

func TestProjectService_CreateLinksQuote(t *testing.T) {
	projects, quotes := setupProjectService(t)
	ctx := context.Background()

	quote, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	project, err := projects.Create(ctx, projectReq(quote.ID))
	require.NoError(t, err)

	assert.Equal(t, quote.ID, project.QuoteID)
	assert.Equal(t, "홍길동", project.CustomerName)
	assert.Equal(t, quote.TotalAmount, project.Price)
	assert.NotEmpty(t, project.ID)
}

func TestProjectService_CreateRejectsSecondLink(t *testing.T) {
	projects, quotes := setupProjectService(t)
	ctx := context.Background()

	quote, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	_, err = projects.Create(ctx, projectReq(quote.ID))
	require.NoError(t, err)

	_, err = projects.Create(ctx, projectReq(quote.ID))
	assert.ErrorIs(t, err, service.ErrQuoteAlreadyLinked)
}

func TestProjectService_CreateUnknownQuote(t *testing.T) {
	projects, _ := setupProjectService(t)
	_, err := projects.Create(context.Background(), projectReq("missing"))
	assert.ErrorIs(t, err, repository.ErrQuoteNotFound)
}

func TestProjectService_CreateInvalidStatus(t *testing.T) {
	projects, quotes := setupProjectService(t)
	ctx := context.Background()

	quote, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	req := projectReq(quote.ID)
	req.Status = "paused"
	_, err = projects.Create(ctx, req)
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestProjectService_CandidatesShrinkAfterCreate(t *testing.T) {
	projects, quotes := setupProjectService(t)
	ctx := context.Background()

	q1, _, err := quotes.Create(ctx, createReq())
	require.NoError(t, err)

	req2 := createReq()
	req2.Email = "other@x.com"
	q2, _, err := quotes.Create(ctx, req2)
	require.NoError(t, err)

	candidates, err := projects.Candidates(ctx)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	_, err = projects.Create(ctx, projectReq(q1.ID))
	require.NoError(t, err)

	candidates, err = projects.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, q2.ID, candidates[0].ID)
}
