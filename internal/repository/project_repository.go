package repository

import (
	"context"
	"errors"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"go.uber.org/zap"
)

// ProjectRepository persists the project collection. Unlike customers,
// projects carry one piece of non-derivable state (explicit quote links),
// so the collection supports appends as well as wholesale replacement.
type ProjectRepository struct {
	store  *recordstore.Store
	logger *zap.Logger
}

func NewProjectRepository(store *recordstore.Store, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{store: store, logger: logger}
}

// List returns the persisted project collection. Missing or malformed data
// loads as empty.
func (r *ProjectRepository) List(ctx context.Context) []domain.Project {
	var projects []domain.Project
	err := r.store.Get(ctx, recordstore.KeyProjects, &projects)
	switch {
	case err == nil:
	case errors.Is(err, recordstore.ErrKeyNotFound):
	default:
		r.logger.Warn("Failed to load project collection, treating as empty", zap.Error(err))
	}
	return projects
}

// GetByID returns one project.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProjectNotFound
}

// Append adds one project to the collection.
func (r *ProjectRepository) Append(ctx context.Context, project domain.Project) error {
	projects := r.List(ctx)
	projects = append(projects, project)
	return r.store.Set(ctx, recordstore.KeyProjects, projects)
}

// Replace overwrites the whole project collection.
func (r *ProjectRepository) Replace(ctx context.Context, projects []domain.Project) error {
	if projects == nil {
		projects = []domain.Project{}
	}
	return r.store.Set(ctx, recordstore.KeyProjects, projects)
}
