package repository

import (
	"context"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// TaskRepository implements the task repository interface in memory
type TaskRepository struct {
	store *memoryStore[entities.Task]
	opts  Options
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new, empty task repository
func NewTaskRepository(opts Options) *TaskRepository {
	return &TaskRepository{store: newMemoryStore[entities.Task](), opts: opts.withDefaults()}
}

func (r *TaskRepository) Init(seed []entities.Task) { r.store.init(seed) }

func (r *TaskRepository) Reset() { r.store.reset() }

func (r *TaskRepository) Len() int { return r.store.size() }

func (r *TaskRepository) List(ctx context.Context) ([]*entities.Task, error) {
	return pointers(r.store.list()), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*entities.Task, error) {
	tasks := r.store.filter(func(t entities.Task) bool { return t.ProjectID == projectID })
	return pointers(tasks), nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	task, ok := r.store.get(id)
	if !ok {
		return nil, &entities.NotFoundError{Kind: "task", ID: id}
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task entities.Task) (*entities.Task, error) {
	now := r.opts.Now()
	task.ID = r.opts.NewID()
	task.CreatedAt = now
	task.UpdatedAt = now

	created := r.store.insert(task)
	return &created, nil
}

// Update re-stamps UpdatedAt on every successful call.
func (r *TaskRepository) Update(ctx context.Context, id string, fn func(*entities.Task)) (*entities.Task, error) {
	updated, ok := r.store.update(id, func(t *entities.Task) {
		origID, createdAt := t.ID, t.CreatedAt
		fn(t)
		t.ID, t.CreatedAt = origID, createdAt
		t.UpdatedAt = r.opts.Now()
	})
	if !ok {
		return nil, &entities.NotFoundError{Kind: "task", ID: id}
	}
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.remove(id); !ok {
		return &entities.NotFoundError{Kind: "task", ID: id}
	}
	return nil
}
