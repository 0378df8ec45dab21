// Package kanban models the board interaction: a drag-and-drop gesture
// controller and an optimistic board that commits status changes through
// the task service and rolls them back on failure.
package kanban

import (
	"context"
	"sync"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
)

// State of the drag gesture
type State int

const (
	Idle State = iota
	Dragging
	Over
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// DragItem is the task being dragged and the column it started in.
type DragItem struct {
	TaskID string
	Status entities.TaskStatus
}

// Containment answers whether element lies inside the drop target, so that
// entering a child element of a column does not count as leaving it.
type Containment interface {
	Contains(target entities.TaskStatus, element string) bool
}

// ContainmentFunc adapts a function to Containment.
type ContainmentFunc func(target entities.TaskStatus, element string) bool

func (f ContainmentFunc) Contains(target entities.TaskStatus, element string) bool {
	return f(target, element)
}

type noContainment struct{}

func (noContainment) Contains(entities.TaskStatus, string) bool { return false }

// Mover carries out a status change requested by a drop. BeginMove runs on
// the dropping goroutine; CommitMove runs through the dispatch function.
type Mover interface {
	BeginMove(taskID string, from, to entities.TaskStatus) (Move, error)
	CommitMove(ctx context.Context, m Move) error
}

// Controller tracks a single drag gesture. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	state    State
	item     DragItem
	target   entities.TaskStatus
	mover    Mover
	contains Containment
	dispatch func(func())
	logger   *logger.Logger
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithContainment sets the containment check used by LeaveTarget.
func WithContainment(c Containment) ControllerOption {
	return func(ctl *Controller) {
		if c != nil {
			ctl.contains = c
		}
	}
}

// WithDispatch sets how the move issued by a drop is run. The default runs
// it on its own goroutine.
func WithDispatch(dispatch func(func())) ControllerOption {
	return func(ctl *Controller) {
		if dispatch != nil {
			ctl.dispatch = dispatch
		}
	}
}

// WithControllerLogger sets the logger used for failed moves.
func WithControllerLogger(l *logger.Logger) ControllerOption {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// Synchronous runs fn on the caller's goroutine.
func Synchronous(fn func()) { fn() }

func NewController(mover Mover, opts ...ControllerOption) *Controller {
	ctl := &Controller{
		mover:    mover,
		contains: noContainment{},
		dispatch: func(fn func()) { go fn() },
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	ctl.logger = ctl.logger.WithComponent("drag_controller")
	return ctl
}

// StartDrag begins a gesture. A gesture already in progress is cancelled.
func (c *Controller) StartDrag(item DragItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle {
		c.logger.Debugw("Drag replaced", "previous_task_id", c.item.TaskID, "task_id", item.TaskID)
	}
	c.state = Dragging
	c.item = item
	c.target = ""
}

// HoverTarget makes target the active drop target. It is ignored while
// idle and repeated hovers over the same target change nothing.
func (c *Controller) HoverTarget(target entities.TaskStatus) error {
	if !target.IsValid() {
		return &entities.InvalidArgumentError{Field: "target", Value: string(target), Reason: "not a kanban column"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Idle {
		return nil
	}
	c.state = Over
	c.target = target
	return nil
}

// LeaveTarget reports that the pointer left target and is now over related.
// The active target is cleared only when related is outside it.
func (c *Controller) LeaveTarget(target entities.TaskStatus, related string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Over || c.target != target {
		return
	}
	if c.contains.Contains(target, related) {
		return
	}
	c.state = Dragging
	c.target = ""
}

// Drop ends the gesture over target. When target differs from the dragged
// task's status the move is applied to the board at once, its commit is
// dispatched, and Drop reports true. The commit is not bound to ctx's
// cancellation.
func (c *Controller) Drop(ctx context.Context, target entities.TaskStatus) (bool, error) {
	c.mu.Lock()
	state, item := c.state, c.item
	c.reset()
	c.mu.Unlock()

	if state == Idle {
		return false, nil
	}
	if !target.IsValid() {
		return false, &entities.InvalidArgumentError{Field: "target", Value: string(target), Reason: "not a kanban column"}
	}
	if target == item.Status {
		return false, nil
	}

	m, err := c.mover.BeginMove(item.TaskID, item.Status, target)
	if err != nil {
		return false, err
	}

	moveCtx := context.WithoutCancel(ctx)
	c.dispatch(func() {
		if err := c.mover.CommitMove(moveCtx, m); err != nil {
			c.logger.Warnw("Move failed", "task_id", item.TaskID, "from", item.Status, "to", target, "error", err)
		}
	})
	return true, nil
}

// CancelDrag abandons the gesture without side effects.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.item = DragItem{}
	c.target = ""
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dragged returns the item being dragged, if any.
func (c *Controller) Dragged() (DragItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.item, c.state != Idle
}

// ActiveTarget returns the column under the pointer, if any.
func (c *Controller) ActiveTarget() (entities.TaskStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.state == Over
}
