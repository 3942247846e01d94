package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

// List returns the project collection.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects := h.projectService.List(r.Context())
	if projects == nil {
		projects = []domain.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// Get returns one project.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to get project", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get project")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Candidates returns the quotes still eligible for project creation.
func (h *ProjectHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.projectService.Candidates(r.Context())
	if err != nil {
		h.logger.Error("failed to list project candidates", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	respondJSON(w, http.StatusOK, quotes)
}

// Create makes a project explicitly from a quote.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuoteAlreadyLinked):
			respondWithError(w, http.StatusConflict, "Quote already linked to a project")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrQuoteNotFound):
			respondWithError(w, http.StatusNotFound, "Quote not found")
		default:
			h.logger.Error("failed to create project", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create project")
		}
		return
	}
	respondJSON(w, http.StatusCreated, project)
}
