package repository

import (
	"context"
	"sort"
	"time"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NotificationRepository implements the notification repository interface in memory
type NotificationRepository struct {
	store *memoryStore[entities.Notification]
	opts  Options
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

// NewNotificationRepository creates a new, empty notification repository
func NewNotificationRepository(opts Options) *NotificationRepository {
	return &NotificationRepository{store: newMemoryStore[entities.Notification](), opts: opts.withDefaults()}
}

func (r *NotificationRepository) Init(seed []entities.Notification) { r.store.init(seed) }

func (r *NotificationRepository) Reset() { r.store.reset() }

func (r *NotificationRepository) Len() int { return r.store.size() }

func newestFirst(in []entities.Notification) []*entities.Notification {
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].CreatedAt.After(in[j].CreatedAt)
	})
	return pointers(in)
}

func (r *NotificationRepository) List(ctx context.Context) ([]*entities.Notification, error) {
	return newestFirst(r.store.list()), nil
}

func (r *NotificationRepository) ListByType(ctx context.Context, nt entities.NotificationType) ([]*entities.Notification, error) {
	return newestFirst(r.store.filter(func(n entities.Notification) bool { return n.Type == nt })), nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	n, ok := r.store.get(id)
	if !ok {
		return nil, &entities.NotFoundError{Kind: "notification", ID: id}
	}
	return &n, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	return r.store.count(func(n entities.Notification) bool { return !n.Read }), nil
}

// Create stores the notification as unread.
func (r *NotificationRepository) Create(ctx context.Context, n entities.Notification) (*entities.Notification, error) {
	n.ID = r.opts.NewID()
	n.Read = false
	n.ReadAt = nil
	n.CreatedAt = r.opts.Now()

	created := r.store.insert(n)
	return &created, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string, at time.Time) (*entities.Notification, error) {
	updated, ok := r.store.update(id, func(n *entities.Notification) {
		n.MarkRead(at)
	})
	if !ok {
		return nil, &entities.NotFoundError{Kind: "notification", ID: id}
	}
	return &updated, nil
}

// MarkAllRead stamps every unread notification with the same time and returns
// all notifications, every one of them read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, at time.Time) ([]*entities.Notification, error) {
	all := r.store.updateAll(func(n *entities.Notification) bool {
		return n.MarkRead(at)
	})
	return newestFirst(all), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) (*entities.Notification, error) {
	removed, ok := r.store.remove(id)
	if !ok {
		return nil, &entities.NotFoundError{Kind: "notification", ID: id}
	}
	return &removed, nil
}

// Clear empties the store and returns what was removed, in insertion order.
func (r *NotificationRepository) Clear(ctx context.Context) ([]*entities.Notification, error) {
	return pointers(r.store.clear()), nil
}
