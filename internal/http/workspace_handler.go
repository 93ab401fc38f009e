package http

import (
	"encoding/json"
	"net/http"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/http/middleware"
	"github.com/boardstack/boardstack/pkg/logger"
)

// WorkspaceHandler exposes workspace lifecycle, membership administration
// and the workspace-level analytics endpoint.
type WorkspaceHandler struct {
	service   domain.WorkspaceServiceInterface
	analytics domain.AnalyticsServiceInterface
	logger    logger.Logger
	secure    *middleware.AuthMiddleware
}

func NewWorkspaceHandler(
	service domain.WorkspaceServiceInterface,
	analytics domain.AnalyticsServiceInterface,
	secure *middleware.AuthMiddleware,
	logger logger.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		service:   service,
		analytics: analytics,
		logger:    logger,
		secure:    secure,
	}
}

type createWorkspaceRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type updateWorkspaceRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type workspaceIDRequest struct {
	ID string `json:"id"`
}

type joinWorkspaceRequest struct {
	ID         string `json:"id"`
	InviteCode string `json:"invite_code"`
}

type removeMemberRequest struct {
	MemberID string `json:"member_id"`
}

type updateMemberRoleRequest struct {
	MemberID string            `json:"member_id"`
	Role     domain.MemberRole `json:"role"`
}

func (h *WorkspaceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/workspaces.list", h.secure.RequireAuth(h.handleList))
	mux.HandleFunc("/api/workspaces.get", h.secure.RequireAuth(h.handleGet))
	mux.HandleFunc("/api/workspaces.info", h.secure.RequireAuth(h.handleInfo))
	mux.HandleFunc("/api/workspaces.create", h.secure.RequireAuth(h.handleCreate))
	mux.HandleFunc("/api/workspaces.update", h.secure.RequireAuth(h.handleUpdate))
	mux.HandleFunc("/api/workspaces.delete", h.secure.RequireAuth(h.handleDelete))
	mux.HandleFunc("/api/workspaces.resetInviteCode", h.secure.RequireAuth(h.handleResetInviteCode))
	mux.HandleFunc("/api/workspaces.join", h.secure.RequireAuth(h.handleJoin))
	mux.HandleFunc("/api/workspaces.analytics", h.secure.RequireAuth(h.handleAnalytics))
	mux.HandleFunc("/api/members.list", h.secure.RequireAuth(h.handleListMembers))
	mux.HandleFunc("/api/members.remove", h.secure.RequireAuth(h.handleRemoveMember))
	mux.HandleFunc("/api/members.updateRole", h.secure.RequireAuth(h.handleUpdateMemberRole))
}

func (h *WorkspaceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	workspaces, err := h.service.ListWorkspaces(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspaces": workspaces,
	})
}

func (h *WorkspaceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.GetWorkspace(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

// handleInfo serves the invite landing page: public identity only, no
// membership required, invite code stripped.
func (h *WorkspaceHandler) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.GetWorkspaceInfo(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.CreateWorkspace(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.UpdateWorkspace(r.Context(), req.ID, req.Name, req.ImageURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req workspaceIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteWorkspace(r.Context(), req.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
	})
}

func (h *WorkspaceHandler) handleResetInviteCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req workspaceIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.ResetInviteCode(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req joinWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	workspace, err := h.service.JoinWorkspace(r.Context(), req.ID, req.InviteCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": workspace,
	})
}

func (h *WorkspaceHandler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	analytics, err := h.analytics.WorkspaceAnalytics(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analytics": analytics,
	})
}

func (h *WorkspaceHandler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	workspaceID := r.URL.Query().Get("workspace_id")
	if workspaceID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}

	members, err := h.service.ListMembers(r.Context(), workspaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
	})
}

func (h *WorkspaceHandler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req removeMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MemberID == "" {
		WriteJSONError(w, "Missing member ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveMember(r.Context(), req.MemberID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "removed",
	})
}

func (h *WorkspaceHandler) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.MemberID == "" {
		WriteJSONError(w, "Missing member ID", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateMemberRole(r.Context(), req.MemberID, req.Role); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "updated",
	})
}
