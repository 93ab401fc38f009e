package http

import (
	"encoding/json"
	"net/http"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/http/middleware"
	"github.com/boardstack/boardstack/pkg/logger"
)

type ProjectHandler struct {
	service   domain.ProjectServiceInterface
	analytics domain.AnalyticsServiceInterface
	logger    logger.Logger
	secure    *middleware.AuthMiddleware
}

func NewProjectHandler(
	service domain.ProjectServiceInterface,
	analytics domain.AnalyticsServiceInterface,
	secure *middleware.AuthMiddleware,
	logger logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		service:   service,
		analytics: analytics,
		logger:    logger,
		secure:    secure,
	}
}

type createProjectRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
}

type updateProjectRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type projectIDRequest struct {
	ID string `json:"id"`
}

func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/projects.list", h.secure.RequireAuth(h.handleList))
	mux.HandleFunc("/api/projects.get", h.secure.RequireAuth(h.handleGet))
	mux.HandleFunc("/api/projects.create", h.secure.RequireAuth(h.handleCreate))
	mux.HandleFunc("/api/projects.update", h.secure.RequireAuth(h.handleUpdate))
	mux.HandleFunc("/api/projects.delete", h.secure.RequireAuth(h.handleDelete))
	mux.HandleFunc("/api/projects.analytics", h.secure.RequireAuth(h.handleAnalytics))
}

func (h *ProjectHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	workspaceID := r.URL.Query().Get("workspace_id")
	if workspaceID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	projects, err := h.service.ListProjects(r.Context(), workspaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
	})
}

func (h *ProjectHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing project ID", http.StatusBadRequest)
		return
	}

	project, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": project,
	})
}

func (h *ProjectHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.WorkspaceID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	project, err := h.service.CreateProject(r.Context(), req.WorkspaceID, req.Name, req.ImageURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"project": project,
	})
}

func (h *ProjectHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing project ID", http.StatusBadRequest)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), req.ID, req.Name, req.ImageURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": project,
	})
}

func (h *ProjectHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req projectIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing project ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteProject(r.Context(), req.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
	})
}

func (h *ProjectHandler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing project ID", http.StatusBadRequest)
		return
	}

	analytics, err := h.analytics.ProjectAnalytics(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analytics": analytics,
	})
}
