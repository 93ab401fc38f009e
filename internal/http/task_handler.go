package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/http/middleware"
	"github.com/boardstack/boardstack/pkg/logger"
)

// TaskHandler exposes task CRUD, filtered listing and the bulk board
// reorder endpoint.
type TaskHandler struct {
	service domain.TaskServiceInterface
	logger  logger.Logger
	secure  *middleware.AuthMiddleware
}

func NewTaskHandler(service domain.TaskServiceInterface, secure *middleware.AuthMiddleware, logger logger.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
		secure:  secure,
	}
}

type createTaskRequest struct {
	WorkspaceID string            `json:"workspace_id"`
	ProjectID   string            `json:"project_id"`
	Name        string            `json:"name"`
	Status      domain.TaskStatus `json:"status,omitempty"`
	AssigneeID  string            `json:"assignee_id,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Description string            `json:"description,omitempty"`
}

type updateTaskRequest struct {
	ID string `json:"id"`
	domain.UpdateTaskInput
}

type taskIDRequest struct {
	ID string `json:"id"`
}

type bulkUpdateTasksRequest struct {
	Tasks []domain.TaskPositionUpdate `json:"tasks"`
}

func (h *TaskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/tasks.list", h.secure.RequireAuth(h.handleList))
	mux.HandleFunc("/api/tasks.get", h.secure.RequireAuth(h.handleGet))
	mux.HandleFunc("/api/tasks.create", h.secure.RequireAuth(h.handleCreate))
	mux.HandleFunc("/api/tasks.update", h.secure.RequireAuth(h.handleUpdate))
	mux.HandleFunc("/api/tasks.delete", h.secure.RequireAuth(h.handleDelete))
	mux.HandleFunc("/api/tasks.bulkUpdate", h.secure.RequireAuth(h.handleBulkUpdate))
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := domain.TaskFilter{
		WorkspaceID: q.Get("workspace_id"),
		ProjectID:   q.Get("project_id"),
		AssigneeID:  q.Get("assignee_id"),
		Status:      domain.TaskStatus(q.Get("status")),
		Search:      q.Get("search"),
	}
	if filter.WorkspaceID == "" {
		WriteJSONError(w, "Missing workspace ID", http.StatusBadRequest)
		return
	}
	if raw := q.Get("due_date"); raw != "" {
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteJSONError(w, "Invalid due_date, expected RFC 3339", http.StatusBadRequest)
			return
		}
		filter.DueDate = &due
	}
	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	tasks, err := h.service.ListTasks(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

func (h *TaskHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), &domain.Task{
		WorkspaceID: req.WorkspaceID,
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), req.ID, req.UpdateTaskInput)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req taskIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTask(r.Context(), req.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
	})
}

func (h *TaskHandler) handleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req bulkUpdateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tasks, err := h.service.BulkUpdateTasks(r.Context(), req.Tasks)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}
