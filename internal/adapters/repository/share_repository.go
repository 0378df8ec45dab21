package repository

import (
	"context"
	"strings"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// DefaultShareBaseURL prefixes generated share links.
const DefaultShareBaseURL = "https://taskflow.pro/shared"

// ShareRepository implements the share link repository interface in memory
type ShareRepository struct {
	store   *memoryStore[entities.ShareLink]
	opts    Options
	baseURL string
}

var _ ports.ShareRepository = (*ShareRepository)(nil)

// NewShareRepository creates a new, empty share link repository. Links are
// generated under baseURL.
func NewShareRepository(baseURL string, opts Options) *ShareRepository {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultShareBaseURL
	}
	return &ShareRepository{store: newMemoryStore[entities.ShareLink](), opts: opts.withDefaults(), baseURL: baseURL}
}

func (r *ShareRepository) Init(seed []entities.ShareLink) { r.store.init(seed) }

func (r *ShareRepository) Reset() { r.store.reset() }

func (r *ShareRepository) Len() int { return r.store.size() }

func (r *ShareRepository) List(ctx context.Context) ([]*entities.ShareLink, error) {
	return pointers(r.store.list()), nil
}

func (r *ShareRepository) ListByProject(ctx context.Context, projectID string) ([]*entities.ShareLink, error) {
	shares := r.store.filter(func(s entities.ShareLink) bool { return s.ProjectID == projectID })
	return pointers(shares), nil
}

func (r *ShareRepository) GetByID(ctx context.Context, id string) (*entities.ShareLink, error) {
	share, ok := r.store.get(id)
	if !ok {
		return nil, &entities.NotFoundError{Kind: "share link", ID: id}
	}
	return &share, nil
}

// Create assigns the id and generates the link, ignoring any caller-supplied link.
func (r *ShareRepository) Create(ctx context.Context, share entities.ShareLink) (*entities.ShareLink, error) {
	share.ID = r.opts.NewID()
	share.Link = r.baseURL + "/" + r.opts.NewID()

	created := r.store.insert(share)
	return &created, nil
}

func (r *ShareRepository) Update(ctx context.Context, id string, fn func(*entities.ShareLink)) (*entities.ShareLink, error) {
	updated, ok := r.store.update(id, func(s *entities.ShareLink) {
		origID, link := s.ID, s.Link
		fn(s)
		s.ID, s.Link = origID, link
	})
	if !ok {
		return nil, &entities.NotFoundError{Kind: "share link", ID: id}
	}
	return &updated, nil
}

func (r *ShareRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.remove(id); !ok {
		return &entities.NotFoundError{Kind: "share link", ID: id}
	}
	return nil
}
