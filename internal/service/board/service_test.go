package board

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/project"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeProjectRepo struct {
	projects map[string]project.Project
}

func (r *fakeProjectRepo) Create(ctx context.Context, p project.Project) (project.Project, error) {
	p.ID = fmt.Sprintf("project-%d", len(r.projects)+1)
	p.CreatedAt = time.Now()
	r.projects[p.ID] = p
	return p, nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) List(ctx context.Context) ([]project.Project, error) {
	var out []project.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, req project.UpdateProjectRequest) error {
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeTaskRepo struct {
	tasks    map[string]task.Task
	failMove bool
}

func (r *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = fmt.Sprintf("task-%d", len(r.tasks)+1)
	t.CreatedAt = time.Now()
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	var out []task.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Move(ctx context.Context, req task.MoveTaskRequest) (task.Task, error) {
	if r.failMove {
		return task.Task{}, errors.New("storage unavailable")
	}
	t, ok := r.tasks[req.ID]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	t.Status = task.Status(req.Status)
	t.Position = req.Position
	r.tasks[req.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, req task.UpdateTaskRequest) error { return nil }

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeTaskRepo) NextPosition(ctx context.Context, projectID string, status task.Status) (int, error) {
	n := 0
	for _, t := range r.tasks {
		if t.ProjectID == projectID && t.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	comments []task.Comment
}

func (r *fakeCommentRepo) Create(ctx context.Context, c task.Comment) (task.Comment, error) {
	c.ID = fmt.Sprintf("comment-%d", len(r.comments)+1)
	c.CreatedAt = time.Now()
	r.comments = append(r.comments, c)
	return c, nil
}

func (r *fakeCommentRepo) ListByTask(ctx context.Context, taskID string) ([]task.Comment, error) {
	var out []task.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestBoard() (BoardService, *fakeProjectRepo, *fakeTaskRepo, *fakeCommentRepo, *sse.Hub) {
	projects := &fakeProjectRepo{projects: make(map[string]project.Project)}
	tasks := &fakeTaskRepo{tasks: make(map[string]task.Task)}
	comments := &fakeCommentRepo{}
	hub := sse.NewHub()
	svc := NewBoardService(projects, tasks, comments, hub)
	return svc, projects, tasks, comments, hub
}

func TestCreateTaskQuickAddDefaultsToTodo(t *testing.T) {
	svc, _, _, _, _ := newTestBoard()
	ctx := authedContext(t, "user-1")

	created, err := svc.CreateTask(ctx, task.CreateTaskRequest{
		ProjectID: "3f8c2a1e-5b7d-4e9a-8f01-6c2d4b9e7a35",
		Title:     "Fix header",
	})
	require.NoError(t, err)
	assert.Equal(t, string(task.StatusTodo), created.Status)
	assert.Equal(t, 0, created.Position)
}

func TestMoveTaskPublishesEvent(t *testing.T) {
	svc, _, tasks, _, hub := newTestBoard()
	ctx := authedContext(t, "user-1")

	tasks.tasks["task-1"] = task.Task{ID: "task-1", ProjectID: "p1", Status: task.StatusTodo}

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	moved, err := svc.MoveTask(ctx, task.MoveTaskRequest{ID: "task-1", Status: "review", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, "review", moved.Status)
	assert.Equal(t, 2, moved.Position)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventTaskMoved, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a task.moved event")
	}
}

func TestMoveTaskFailurePublishesRevert(t *testing.T) {
	svc, _, tasks, _, hub := newTestBoard()
	ctx := authedContext(t, "user-1")

	tasks.tasks["task-1"] = task.Task{ID: "task-1", ProjectID: "p1", Status: task.StatusTodo}
	tasks.failMove = true

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	_, err := svc.MoveTask(ctx, task.MoveTaskRequest{ID: "task-1", Status: "done", Position: 0})
	require.Error(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventTaskMoveReverted, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a task.move.reverted event")
	}
}

func TestMoveTaskRejectsBadStatus(t *testing.T) {
	svc, _, _, _, _ := newTestBoard()
	ctx := authedContext(t, "user-1")

	_, err := svc.MoveTask(ctx, task.MoveTaskRequest{ID: "task-1", Status: "blocked", Position: 0})
	require.Error(t, err)
}

func TestBoardFiltersToMineAndUnassigned(t *testing.T) {
	svc, projects, tasks, _, _ := newTestBoard()
	ctx := authedContext(t, "user-1")

	projects.projects["p1"] = project.Project{ID: "p1", Name: "Website"}

	me := "user-1"
	other := "user-2"
	tasks.tasks["t1"] = task.Task{ID: "t1", ProjectID: "p1", Status: task.StatusTodo, AssigneeID: &me}
	tasks.tasks["t2"] = task.Task{ID: "t2", ProjectID: "p1", Status: task.StatusTodo, AssigneeID: &other}
	tasks.tasks["t3"] = task.Task{ID: "t3", ProjectID: "p1", Status: task.StatusDone}

	board, err := svc.Board(ctx, "p1", true)
	require.NoError(t, err)

	assert.Len(t, board.Columns[string(task.StatusTodo)], 1)
	assert.Len(t, board.Columns[string(task.StatusDone)], 1)
}

func TestAddCommentRequiresExistingTask(t *testing.T) {
	svc, _, _, _, _ := newTestBoard()
	ctx := authedContext(t, "user-1")

	_, err := svc.AddComment(ctx, task.CreateCommentRequest{TaskID: "missing", Body: "hello"})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}
