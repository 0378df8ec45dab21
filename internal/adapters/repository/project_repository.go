package repository

import (
	"context"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// ProjectRepository implements the project repository interface in memory
type ProjectRepository struct {
	store *memoryStore[entities.Project]
	opts  Options
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new, empty project repository
func NewProjectRepository(opts Options) *ProjectRepository {
	return &ProjectRepository{store: newMemoryStore[entities.Project](), opts: opts.withDefaults()}
}

func (r *ProjectRepository) Init(seed []entities.Project) { r.store.init(seed) }

func (r *ProjectRepository) Reset() { r.store.reset() }

func (r *ProjectRepository) Len() int { return r.store.size() }

func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	return pointers(r.store.list()), nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	project, ok := r.store.get(id)
	if !ok {
		return nil, &entities.NotFoundError{Kind: "project", ID: id}
	}
	return &project, nil
}

// Create assigns the id and creation time and starts the project unshared.
func (r *ProjectRepository) Create(ctx context.Context, project entities.Project) (*entities.Project, error) {
	project.ID = r.opts.NewID()
	project.CreatedAt = r.opts.Now()
	project.SharedWith = []string{}
	project.Permissions = map[string]entities.Permission{}

	created := r.store.insert(project)
	return &created, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, fn func(*entities.Project)) (*entities.Project, error) {
	updated, ok := r.store.update(id, func(p *entities.Project) {
		origID, createdAt := p.ID, p.CreatedAt
		fn(p)
		p.ID, p.CreatedAt = origID, createdAt
	})
	if !ok {
		return nil, &entities.NotFoundError{Kind: "project", ID: id}
	}
	return &updated, nil
}

// Delete removes the project only; tasks and share links that reference it are left alone.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.remove(id); !ok {
		return &entities.NotFoundError{Kind: "project", ID: id}
	}
	return nil
}
