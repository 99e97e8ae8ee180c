package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ankitpatil/director/internal/api/middleware"
	"github.com/ankitpatil/director/internal/api/response"
	"github.com/ankitpatil/director/internal/director"
	"github.com/ankitpatil/director/internal/store"
	"github.com/ankitpatil/director/pkg/models"
	"github.com/go-chi/chi/v5"
)

const (
	maxDurationSeconds = 600
	maxTopicLen        = 500
)

var validResolutions = map[string]bool{
	"720p":  true,
	"1080p": true,
}

// MovieService defines the interface the movie handlers depend on.
type MovieService interface {
	CreateMovie(ctx context.Context, ownerID string, req models.MovieRequest) (*models.MovieJob, error)
	ApproveScript(ctx context.Context, ownerID, jobID string, req models.ApprovalRequest) (*models.MovieJob, error)
	GetMovie(ctx context.Context, ownerID, jobID string) (*models.MovieJob, error)
	ListMovies(ctx context.Context, ownerID string) ([]*models.MovieJob, error)
}

// NewCreateMovieHandler returns an http.HandlerFunc for POST /api/v1/movies.
func NewCreateMovieHandler(svc MovieService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := middleware.GetOwnerID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing owner", nil)
			return
		}

		var req models.MovieRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Topic == "" && len(req.Scenes) == 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "topic is required", nil)
			return
		}
		if len(req.Topic) > maxTopicLen {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "topic is too long", nil)
			return
		}
		if req.DurationSeconds < 0 || req.DurationSeconds > maxDurationSeconds {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"duration_seconds must be between 0 and 600 (0 means the default)", nil)
			return
		}
		if req.Resolution != "" && !validResolutions[req.Resolution] {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"resolution must be 720p or 1080p", nil)
			return
		}

		job, err := svc.CreateMovie(r.Context(), owner, req)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to create movie job", nil)
			return
		}

		response.Accepted(w, job)
	}
}

// NewApproveScriptHandler returns an http.HandlerFunc for
// POST /api/v1/movies/{jobID}/approve.
func NewApproveScriptHandler(svc MovieService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := middleware.GetOwnerID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing owner", nil)
			return
		}

		jobID := chi.URLParam(r, "jobID")

		var req models.ApprovalRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
				return
			}
		}

		job, err := svc.ApproveScript(r.Context(), owner, jobID, req)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Movie job not found", nil)
			case errors.Is(err, director.ErrNotAwaitingApproval):
				response.Error(w, http.StatusConflict, "NOT_AWAITING_APPROVAL",
					"The job is not waiting for approval", nil)
			case errors.Is(err, director.ErrScriptMismatch):
				response.Error(w, http.StatusBadRequest, "SCRIPT_MISMATCH",
					"Approved scenes must match the drafted script's count and ids", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.Accepted(w, job)
	}
}

// NewGetMovieHandler returns an http.HandlerFunc for GET /api/v1/movies/{jobID}.
func NewGetMovieHandler(svc MovieService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := middleware.GetOwnerID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing owner", nil)
			return
		}

		jobID := chi.URLParam(r, "jobID")

		job, err := svc.GetMovie(r.Context(), owner, jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Movie job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, job)
	}
}

// NewListMoviesHandler returns an http.HandlerFunc for GET /api/v1/movies.
func NewListMoviesHandler(svc MovieService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := middleware.GetOwnerID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing owner", nil)
			return
		}

		jobs, err := svc.ListMovies(r.Context(), owner)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}
		if jobs == nil {
			jobs = []*models.MovieJob{}
		}

		response.Collection(w, jobs, len(jobs))
	}
}

var _ MovieService = (*director.Service)(nil)
