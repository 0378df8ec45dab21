package kanban

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
)

// Messages shown after a move settles.
const (
	MsgMoved      = "Task status updated"
	MsgMoveFailed = "Failed to update task status"
)

// StatusUpdater commits a status change; the task service satisfies it.
type StatusUpdater interface {
	UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error)
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Board is the visible task list of the kanban view. Moves are applied
// optimistically and reverted to the last committed status on failure.
// Commits reach the updater one at a time, in the order the moves began.
type Board struct {
	mu        sync.Mutex
	turn      *sync.Cond
	tasks     []*entities.Task
	committed map[string]entities.TaskStatus
	versions  map[string]uint64
	issued    uint64
	settled   uint64
	updater   StatusUpdater
	notify    Notifier
	logger    *logger.Logger
}

// Move is an optimistic status change waiting for its commit.
type Move struct {
	TaskID string
	From   entities.TaskStatus
	To     entities.TaskStatus

	version uint64
	seq     uint64
}

var _ Mover = (*Board)(nil)

func NewBoard(updater StatusUpdater, notify Notifier, log *logger.Logger) *Board {
	if log == nil {
		log = logger.NewNop()
	}
	b := &Board{
		committed: make(map[string]entities.TaskStatus),
		versions:  make(map[string]uint64),
		updater:   updater,
		notify:    notify,
		logger:    log.WithComponent("kanban_board"),
	}
	b.turn = sync.NewCond(&b.mu)
	return b
}

// Load replaces the board's tasks. Loaded statuses count as committed.
// Version counters survive so that pending commits never match a reload.
func (b *Board) Load(tasks []*entities.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = make([]*entities.Task, len(tasks))
	b.committed = make(map[string]entities.TaskStatus, len(tasks))
	for i, t := range tasks {
		c := t.Clone()
		b.tasks[i] = &c
		b.committed[c.ID] = c.Status
	}
}

// Tasks returns copies of the visible tasks.
func (b *Board) Tasks() []*entities.Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*entities.Task, len(b.tasks))
	for i, t := range b.tasks {
		c := t.Clone()
		out[i] = &c
	}
	return out
}

func (b *Board) Task(id string) (*entities.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(id); i >= 0 {
		c := b.tasks[i].Clone()
		return &c, true
	}
	return nil, false
}

func (b *Board) indexOf(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Columns groups the visible tasks into kanban columns.
func (b *Board) Columns() ([]Column, error) {
	return Columns(b.Tasks())
}

// MoveTask shows the task under to immediately, then commits. On failure
// the task returns to its last committed status unless a newer move has
// replaced this one.
func (b *Board) MoveTask(ctx context.Context, taskID string, from, to entities.TaskStatus) error {
	m, err := b.BeginMove(taskID, from, to)
	if err != nil {
		return err
	}
	return b.CommitMove(ctx, m)
}

// BeginMove applies the move to the visible tasks and queues its commit.
// Every Move returned must be passed to CommitMove.
func (b *Board) BeginMove(taskID string, from, to entities.TaskStatus) (Move, error) {
	if !to.IsValid() {
		return Move{}, &entities.InvalidArgumentError{Field: "status", Value: string(to), Reason: "not a kanban column"}
	}

	b.mu.Lock()
	i := b.indexOf(taskID)
	if i < 0 {
		b.mu.Unlock()
		return Move{}, &entities.NotFoundError{Kind: "task", ID: taskID}
	}
	b.tasks[i].Status = to
	b.versions[taskID]++
	b.issued++
	m := Move{TaskID: taskID, From: from, To: to, version: b.versions[taskID], seq: b.issued}
	b.mu.Unlock()

	b.logger.Debugw("Optimistic move applied", "task_id", taskID, "from", from, "to", to, "seq", m.seq)
	return m, nil
}

// CommitMove sends m to the updater once every earlier move has settled,
// then keeps or reverts the optimistic status.
func (b *Board) CommitMove(ctx context.Context, m Move) error {
	b.mu.Lock()
	for b.settled+1 != m.seq {
		b.turn.Wait()
	}
	b.mu.Unlock()
	defer b.settle()

	updated, err := b.updater.UpdateTaskStatus(ctx, m.TaskID, m.To)

	b.mu.Lock()
	latest := b.versions[m.TaskID] == m.version
	if err != nil {
		if latest {
			if j := b.indexOf(m.TaskID); j >= 0 {
				b.tasks[j].Status = b.committed[m.TaskID]
			}
		}
		b.mu.Unlock()

		b.logger.Warnw("Move rolled back", "task_id", m.TaskID, "to", m.To, "latest", latest, "error", err)
		b.notify.Error(MsgMoveFailed)
		return fmt.Errorf("failed to move task: %w", err)
	}

	b.committed[m.TaskID] = updated.Status
	if latest {
		if j := b.indexOf(m.TaskID); j >= 0 {
			c := updated.Clone()
			b.tasks[j] = &c
		}
	}
	b.mu.Unlock()

	b.notify.Success(MsgMoved)
	return nil
}

func (b *Board) settle() {
	b.mu.Lock()
	b.settled++
	b.turn.Broadcast()
	b.mu.Unlock()
}

// Wait blocks until every begun move has been committed or rolled back.
func (b *Board) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.settled != b.issued {
		b.turn.Wait()
	}
}

// Column is one kanban column.
type Column struct {
	Status    entities.TaskStatus
	Title     string
	Color     string
	Tasks     []*entities.Task
	EmptyHint string
}

// Columns lays tasks out in todo, in-progress, done order.
func Columns(tasks []*entities.Task) ([]Column, error) {
	groups, err := views.GroupByStatus(tasks)

	columns := make([]Column, 0, len(groups))
	for _, ts := range entities.TaskStatuses() {
		d, _ := ts.Display()
		columns = append(columns, Column{
			Status:    ts,
			Title:     d.Label,
			Color:     d.Color,
			Tasks:     groups[ts],
			EmptyHint: emptyHint(ts, d.Label),
		})
	}
	return columns, err
}

func emptyHint(ts entities.TaskStatus, title string) string {
	if ts == entities.TaskStatusTodo {
		return "Add your first task"
	}
	return fmt.Sprintf("No %s tasks", title)
}
