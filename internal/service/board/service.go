package board

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/project"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
)

type BoardService interface {
	CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error)
	ListProjects(ctx context.Context) ([]project.ProjectResponse, error)
	UpdateProject(ctx context.Context, req project.UpdateProjectRequest) error
	DeleteProject(ctx context.Context, id string) error
	Board(ctx context.Context, projectID string, mineOnly bool) (task.BoardResponse, error)
	CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error)
	MoveTask(ctx context.Context, req task.MoveTaskRequest) (task.TaskResponse, error)
	UpdateTask(ctx context.Context, req task.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, id string) error
	AddComment(ctx context.Context, req task.CreateCommentRequest) (task.CommentResponse, error)
	ListComments(ctx context.Context, taskID string) ([]task.CommentResponse, error)
}

type BoardServiceImpl struct {
	project.ProjectRepository
	task.TaskRepository
	task.CommentRepository
	hub *sse.Hub
}

func NewBoardService(
	projectRepo project.ProjectRepository,
	taskRepo task.TaskRepository,
	commentRepo task.CommentRepository,
	hub *sse.Hub,
) BoardService {
	return &BoardServiceImpl{
		ProjectRepository: projectRepo,
		TaskRepository:    taskRepo,
		CommentRepository: commentRepo,
		hub:               hub,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", tracking.ErrNoCurrentUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", tracking.ErrNoCurrentUser
	}
	return userID, nil
}

// CreateProject implements BoardService.
func (s *BoardServiceImpl) CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	created, err := s.ProjectRepository.Create(ctx, project.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.ToResponse(created), nil
}

// ListProjects implements BoardService.
func (s *BoardServiceImpl) ListProjects(ctx context.Context) ([]project.ProjectResponse, error) {
	projects, err := s.ProjectRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, project.ToResponse(p))
	}
	return responses, nil
}

// UpdateProject implements BoardService.
func (s *BoardServiceImpl) UpdateProject(ctx context.Context, req project.UpdateProjectRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.ProjectRepository.Update(ctx, req)
}

// DeleteProject implements BoardService.
func (s *BoardServiceImpl) DeleteProject(ctx context.Context, id string) error {
	return s.ProjectRepository.Delete(ctx, id)
}

// Board implements BoardService. Tasks are grouped into the four fixed
// columns; mineOnly keeps tasks assigned to the caller or unassigned.
func (s *BoardServiceImpl) Board(ctx context.Context, projectID string, mineOnly bool) (task.BoardResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.BoardResponse{}, err
	}

	if _, err := s.ProjectRepository.GetByID(ctx, projectID); err != nil {
		return task.BoardResponse{}, err
	}

	tasks, err := s.TaskRepository.ListByProject(ctx, projectID)
	if err != nil {
		return task.BoardResponse{}, fmt.Errorf("failed to load board: %w", err)
	}

	columns := map[string][]task.TaskResponse{
		string(task.StatusTodo):       {},
		string(task.StatusInProgress): {},
		string(task.StatusReview):     {},
		string(task.StatusDone):       {},
	}
	for _, t := range tasks {
		if mineOnly && t.AssigneeID != nil && *t.AssigneeID != userID {
			continue
		}
		columns[string(t.Status)] = append(columns[string(t.Status)], task.ToTaskResponse(t))
	}

	return task.BoardResponse{ProjectID: projectID, Columns: columns}, nil
}

// CreateTask implements BoardService. Quick-add: omitted status lands
// in todo at the end of the column.
func (s *BoardServiceImpl) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	status := task.Status(req.Status)
	if req.Status == "" {
		status = task.StatusTodo
	}

	position, err := s.TaskRepository.NextPosition(ctx, req.ProjectID, status)
	if err != nil {
		return task.TaskResponse{}, err
	}

	created, err := s.TaskRepository.Create(ctx, task.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Position:    position,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   userID,
	})
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToTaskResponse(created), nil
}

// MoveTask implements BoardService. Clients apply the move
// optimistically; when persistence fails a task.move.reverted event
// tells them to roll the card back.
func (s *BoardServiceImpl) MoveTask(ctx context.Context, req task.MoveTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	moved, err := s.TaskRepository.Move(ctx, req)
	if err != nil {
		s.hub.Broadcast(sse.Event{
			Event: sse.EventTaskMoveReverted,
			Data:  map[string]string{"task_id": req.ID, "moved_by": userID},
		})
		return task.TaskResponse{}, err
	}

	s.hub.Broadcast(sse.Event{
		Event: sse.EventTaskMoved,
		Data:  task.ToTaskResponse(moved),
	})
	return task.ToTaskResponse(moved), nil
}

// UpdateTask implements BoardService.
func (s *BoardServiceImpl) UpdateTask(ctx context.Context, req task.UpdateTaskRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.TaskRepository.Update(ctx, req)
}

// DeleteTask implements BoardService.
func (s *BoardServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return s.TaskRepository.Delete(ctx, id)
}

// AddComment implements BoardService.
func (s *BoardServiceImpl) AddComment(ctx context.Context, req task.CreateCommentRequest) (task.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return task.CommentResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.CommentResponse{}, err
	}

	if _, err := s.TaskRepository.GetByID(ctx, req.TaskID); err != nil {
		return task.CommentResponse{}, err
	}

	created, err := s.CommentRepository.Create(ctx, task.Comment{
		TaskID:   req.TaskID,
		AuthorID: userID,
		Body:     req.Body,
	})
	if err != nil {
		return task.CommentResponse{}, err
	}
	return task.ToCommentResponse(created), nil
}

// ListComments implements BoardService.
func (s *BoardServiceImpl) ListComments(ctx context.Context, taskID string) ([]task.CommentResponse, error) {
	comments, err := s.CommentRepository.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]task.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, task.ToCommentResponse(c))
	}
	return responses, nil
}
