package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/project"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
	boardService "github.com/saudkhanbpk/ems-backend-go/internal/service/board"
)

type BoardHandler interface {
	CreateProject(w http.ResponseWriter, r *http.Request)
	ListProjects(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)
	DeleteProject(w http.ResponseWriter, r *http.Request)
	Board(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
	MoveTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	ListComments(w http.ResponseWriter, r *http.Request)
}

type BoardHandlerImpl struct {
	boardService boardService.BoardService
}

func NewBoardHandler(service boardService.BoardService) BoardHandler {
	return &BoardHandlerImpl{boardService: service}
}

// CreateProject implements BoardHandler.
func (h *BoardHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var createReq project.CreateProjectRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.boardService.CreateProject(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created successfully", created)
}

// ListProjects implements BoardHandler.
func (h *BoardHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.boardService.ListProjects(r.Context())
	if err != nil {
		slog.Error("ListProjects service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, projects)
}

// UpdateProject implements BoardHandler.
func (h *BoardHandlerImpl) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var updateReq project.UpdateProjectRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "projectID")

	if err := h.boardService.UpdateProject(r.Context(), updateReq); err != nil {
		slog.Error("UpdateProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project updated successfully", nil)
}

// DeleteProject implements BoardHandler.
func (h *BoardHandlerImpl) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.boardService.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		slog.Error("DeleteProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project deleted successfully", nil)
}

// Board implements BoardHandler. ?mine=true narrows the board to tasks
// assigned to the caller or unassigned.
func (h *BoardHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	mineOnly := r.URL.Query().Get("mine") == "true"

	board, err := h.boardService.Board(r.Context(), projectID, mineOnly)
	if err != nil {
		slog.Error("Board service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, board)
}

// CreateTask implements BoardHandler.
func (h *BoardHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var createReq task.CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.boardService.CreateTask(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task created successfully", created)
}

// MoveTask implements BoardHandler.
func (h *BoardHandlerImpl) MoveTask(w http.ResponseWriter, r *http.Request) {
	var moveReq task.MoveTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&moveReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	moveReq.ID = chi.URLParam(r, "taskID")

	moved, err := h.boardService.MoveTask(r.Context(), moveReq)
	if err != nil {
		slog.Error("MoveTask service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, moved)
}

// UpdateTask implements BoardHandler.
func (h *BoardHandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var updateReq task.UpdateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "taskID")

	if err := h.boardService.UpdateTask(r.Context(), updateReq); err != nil {
		slog.Error("UpdateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task updated successfully", nil)
}

// DeleteTask implements BoardHandler.
func (h *BoardHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.boardService.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		slog.Error("DeleteTask service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}

// AddComment implements BoardHandler.
func (h *BoardHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	var commentReq task.CreateCommentRequest

	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	commentReq.TaskID = chi.URLParam(r, "taskID")

	created, err := h.boardService.AddComment(r.Context(), commentReq)
	if err != nil {
		slog.Error("AddComment service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Comment added successfully", created)
}

// ListComments implements BoardHandler.
func (h *BoardHandlerImpl) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.boardService.ListComments(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		slog.Error("ListComments service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, comments)
}
