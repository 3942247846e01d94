package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abtweb/studio-api/internal/aggregate"
	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectService owns explicit project creation and the project views. Each
// explicitly created project is linked 1:1 to a quote; a quote already linked
// anywhere in the collection may not receive a second project.
type ProjectService struct {
	projects *repository.ProjectRepository
	quotes   *repository.QuoteRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewProjectService(projects *repository.ProjectRepository, quotes *repository.QuoteRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, quotes: quotes, logger: logger, now: time.Now}
}

// List returns the persisted project collection.
func (s *ProjectService) List(ctx context.Context) []domain.Project {
	return s.projects.List(ctx)
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// Candidates returns the quotes eligible for explicit project creation:
// those not yet linked to any project.
func (s *ProjectService) Candidates(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.UnlinkedQuotes(quotes, s.projects.List(ctx)), nil
}

// Create makes a project explicitly from a quote. The link is exclusive: a
// second project for the same quote is rejected.
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	quote, err := s.quotes.GetByID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	existing := s.projects.List(ctx)
	if aggregate.LinkedQuoteIDs(existing)[req.QuoteID] {
		return nil, ErrQuoteAlreadyLinked
	}

	project := domain.Project{
		ID:              uuid.New().String(),
		Name:            req.Name,
		CustomerName:    quote.CustomerInfo.Name,
		Package:         quote.Package.Name,
		StartDate:       req.StartDate,
		ExpectedEndDate: req.EndDate,
		Progress:        req.Progress,
		Status:          req.Status,
		Price:           quote.Amount(),
		QuoteID:         quote.ID,
		UpdatedAt:       s.now(),
	}

	if err := s.projects.Append(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID),
		zap.String("quote_id", quote.ID),
		zap.String("status", string(project.Status)),
	)
	return &project, nil
}

// StatusCounts tallies projects per delivery phase.
func (s *ProjectService) StatusCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int, len(domain.ProjectStatuses))
	for _, status := range domain.ProjectStatuses {
		counts[string(status)] = 0
	}
	for _, p := range s.projects.List(ctx) {
		counts[string(p.Status)]++
	}
	return counts
}
