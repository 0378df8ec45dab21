package kanban

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskflow/internal/adapters/repository"
	"github.com/taskmaster/taskflow/internal/application/services"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/ports"
)

type moveCall struct {
	taskID   string
	from, to entities.TaskStatus
}

type stubMover struct {
	mu    sync.Mutex
	begun int
	calls []moveCall
	err   error
	// committed is closed after the first commit when set
	committed chan struct{}
}

func (m *stubMover) BeginMove(taskID string, from, to entities.TaskStatus) (Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begun++
	return Move{TaskID: taskID, From: from, To: to}, nil
}

func (m *stubMover) CommitMove(ctx context.Context, mv Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, moveCall{mv.TaskID, mv.From, mv.To})
	if m.committed != nil {
		close(m.committed)
		m.committed = nil
	}
	return m.err
}

type stubUpdater struct {
	err error
	// before runs inside the call, while the optimistic value is showing
	before func()
}

func (u *stubUpdater) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	if u.before != nil {
		u.before()
	}
	if u.err != nil {
		return nil, u.err
	}
	return &entities.Task{ID: taskID, Title: "from server", Status: status}, nil
}

type recordingNotifier struct {
	mu                sync.Mutex
	successes, errors []string
}

func (n *recordingNotifier) Success(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, m)
}

func (n *recordingNotifier) Error(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, m)
}

func TestController_DropOnSameStatusIsNoop(t *testing.T) {
	mover := &stubMover{}
	ctl := NewController(mover, WithDispatch(Synchronous))

	ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
	require.NoError(t, ctl.HoverTarget(entities.TaskStatusTodo))

	moved, err := ctl.Drop(context.Background(), entities.TaskStatusTodo)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, mover.calls)
	assert.Equal(t, Idle, ctl.State())
}

func TestController_DropMovesTask(t *testing.T) {
	mover := &stubMover{}
	ctl := NewController(mover, WithDispatch(Synchronous))

	ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
	assert.Equal(t, Dragging, ctl.State())
	require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))
	assert.Equal(t, Over, ctl.State())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	moved, err := ctl.Drop(ctx, entities.TaskStatusDone)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []moveCall{{"t1", entities.TaskStatusTodo, entities.TaskStatusDone}}, mover.calls)
	assert.Equal(t, Idle, ctl.State())
}

func TestController_Transitions(t *testing.T) {
	t.Run("hover while idle is ignored", func(t *testing.T) {
		ctl := NewController(&stubMover{})
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))
		assert.Equal(t, Idle, ctl.State())
		_, ok := ctl.ActiveTarget()
		assert.False(t, ok)
	})

	t.Run("hover on an unknown column", func(t *testing.T) {
		ctl := NewController(&stubMover{})
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		assert.ErrorIs(t, ctl.HoverTarget("archive"), entities.ErrInvalidArgument)
		assert.Equal(t, Dragging, ctl.State())
	})

	t.Run("repeated hover is a no-op", func(t *testing.T) {
		ctl := NewController(&stubMover{})
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))
		target, ok := ctl.ActiveTarget()
		assert.True(t, ok)
		assert.Equal(t, entities.TaskStatusDone, target)
	})

	t.Run("leaving into a child keeps the target", func(t *testing.T) {
		children := map[string]entities.TaskStatus{"card-7": entities.TaskStatusDone}
		ctl := NewController(&stubMover{}, WithContainment(ContainmentFunc(func(target entities.TaskStatus, el string) bool {
			return children[el] == target
		})))
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))

		ctl.LeaveTarget(entities.TaskStatusDone, "card-7")
		assert.Equal(t, Over, ctl.State())

		ctl.LeaveTarget(entities.TaskStatusInProgress, "")
		assert.Equal(t, Over, ctl.State(), "leaving a column that is not active")

		ctl.LeaveTarget(entities.TaskStatusDone, "page")
		assert.Equal(t, Dragging, ctl.State())
		_, ok := ctl.ActiveTarget()
		assert.False(t, ok)
	})

	t.Run("start while dragging replaces the gesture", func(t *testing.T) {
		mover := &stubMover{}
		ctl := NewController(mover, WithDispatch(Synchronous))
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))

		ctl.StartDrag(DragItem{TaskID: "t2", Status: entities.TaskStatusDone})
		assert.Equal(t, Dragging, ctl.State())
		item, ok := ctl.Dragged()
		require.True(t, ok)
		assert.Equal(t, "t2", item.TaskID)

		moved, err := ctl.Drop(context.Background(), entities.TaskStatusDone)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Empty(t, mover.calls)
	})

	t.Run("cancel has no side effect", func(t *testing.T) {
		mover := &stubMover{}
		ctl := NewController(mover, WithDispatch(Synchronous))
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		require.NoError(t, ctl.HoverTarget(entities.TaskStatusDone))
		ctl.CancelDrag()
		assert.Equal(t, Idle, ctl.State())

		moved, err := ctl.Drop(context.Background(), entities.TaskStatusDone)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Empty(t, mover.calls)
	})

	t.Run("drop on an unknown column", func(t *testing.T) {
		mover := &stubMover{}
		ctl := NewController(mover, WithDispatch(Synchronous))
		ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
		_, err := ctl.Drop(context.Background(), "archive")
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)
		assert.Equal(t, Idle, ctl.State())
		assert.Empty(t, mover.calls)
	})
}

func TestController_DefaultDispatchIsAsync(t *testing.T) {
	done := make(chan struct{})
	mover := &stubMover{committed: done}
	ctl := NewController(mover)

	ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
	moved, err := ctl.Drop(context.Background(), entities.TaskStatusInProgress)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, 1, mover.begun, "move begins before Drop returns")

	<-done
	assert.Len(t, mover.calls, 1)
}

func TestController_DropAppliesBeforeCommit(t *testing.T) {
	release := make(chan struct{})
	updater := &stubUpdater{before: func() { <-release }}
	board := NewBoard(updater, &recordingNotifier{}, nil)
	board.Load(boardTasks())

	ctl := NewController(board)
	ctl.StartDrag(DragItem{TaskID: "t1", Status: entities.TaskStatusTodo})
	moved, err := ctl.Drop(context.Background(), entities.TaskStatusDone)
	require.NoError(t, err)
	require.True(t, moved)

	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusDone, task.Status)

	close(release)
	board.Wait()
	task, _ = board.Task("t1")
	assert.Equal(t, "from server", task.Title)
}

func boardTasks() []*entities.Task {
	return []*entities.Task{
		{ID: "t1", Title: "One", Status: entities.TaskStatusTodo},
		{ID: "t2", Title: "Two", Status: entities.TaskStatusInProgress},
	}
}

func TestBoard_MoveSuccess(t *testing.T) {
	notify := &recordingNotifier{}
	board := NewBoard(&stubUpdater{}, notify, nil)
	board.Load(boardTasks())

	require.NoError(t, board.MoveTask(context.Background(), "t1", entities.TaskStatusTodo, entities.TaskStatusDone))

	task, ok := board.Task("t1")
	require.True(t, ok)
	assert.Equal(t, entities.TaskStatusDone, task.Status)
	assert.Equal(t, "from server", task.Title)
	assert.Equal(t, []string{MsgMoved}, notify.successes)
	assert.Empty(t, notify.errors)
}

func TestBoard_MoveFailureRollsBack(t *testing.T) {
	notify := &recordingNotifier{}
	updater := &stubUpdater{err: &entities.TransientError{Op: "update task", Err: errors.New("connection reset")}}
	board := NewBoard(updater, notify, nil)
	board.Load(boardTasks())

	var during entities.TaskStatus
	updater.before = func() {
		task, _ := board.Task("t1")
		during = task.Status
	}

	err := board.MoveTask(context.Background(), "t1", entities.TaskStatusTodo, entities.TaskStatusDone)
	require.Error(t, err)
	assert.True(t, entities.IsRetryable(err))

	assert.Equal(t, entities.TaskStatusDone, during, "optimistic value visible while the commit is pending")
	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.Equal(t, []string{MsgMoveFailed}, notify.errors)
	assert.Empty(t, notify.successes)
}

// failingUpdater fails the calls whose 1-based index is listed.
type failingUpdater struct {
	mu    sync.Mutex
	n     int
	fail  map[int]bool
	order []entities.TaskStatus
}

func (u *failingUpdater) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.n++
	u.order = append(u.order, status)
	if u.fail[u.n] {
		return nil, errors.New("boom")
	}
	return &entities.Task{ID: taskID, Title: "from server", Status: status}, nil
}

func TestBoard_RollbackSkippedWhenSuperseded(t *testing.T) {
	notify := &recordingNotifier{}
	board := NewBoard(&failingUpdater{fail: map[int]bool{1: true}}, notify, nil)
	board.Load(boardTasks())

	first, err := board.BeginMove("t1", entities.TaskStatusTodo, entities.TaskStatusDone)
	require.NoError(t, err)
	second, err := board.BeginMove("t1", entities.TaskStatusDone, entities.TaskStatusInProgress)
	require.NoError(t, err)

	require.Error(t, board.CommitMove(context.Background(), first))
	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusInProgress, task.Status, "newer move stays visible")

	require.NoError(t, board.CommitMove(context.Background(), second))
	task, _ = board.Task("t1")
	assert.Equal(t, entities.TaskStatusInProgress, task.Status)
	assert.Equal(t, []string{MsgMoved}, notify.successes)
	assert.Equal(t, []string{MsgMoveFailed}, notify.errors)
}

func TestBoard_LatestFailureRevertsToEarlierCommit(t *testing.T) {
	board := NewBoard(&failingUpdater{fail: map[int]bool{2: true}}, &recordingNotifier{}, nil)
	board.Load(boardTasks())

	first, err := board.BeginMove("t1", entities.TaskStatusTodo, entities.TaskStatusInProgress)
	require.NoError(t, err)
	second, err := board.BeginMove("t1", entities.TaskStatusInProgress, entities.TaskStatusDone)
	require.NoError(t, err)

	require.NoError(t, board.CommitMove(context.Background(), first))
	require.Error(t, board.CommitMove(context.Background(), second))

	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusInProgress, task.Status)
}

func TestBoard_CommitsRunInBeginOrder(t *testing.T) {
	updater := &failingUpdater{}
	board := NewBoard(updater, &recordingNotifier{}, nil)
	board.Load(boardTasks())

	first, err := board.BeginMove("t1", entities.TaskStatusTodo, entities.TaskStatusInProgress)
	require.NoError(t, err)
	second, err := board.BeginMove("t1", entities.TaskStatusInProgress, entities.TaskStatusDone)
	require.NoError(t, err)

	errs := make(chan error, 1)
	go func() { errs <- board.CommitMove(context.Background(), second) }()
	require.NoError(t, board.CommitMove(context.Background(), first))
	require.NoError(t, <-errs)

	assert.Equal(t, []entities.TaskStatus{entities.TaskStatusInProgress, entities.TaskStatusDone}, updater.order)
	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusDone, task.Status)
}

func TestBoard_BackToBackAsyncDropsMatchStore(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		// the first update is slower than the second
		var calls atomic.Int32
		sleep := func(d time.Duration) {
			if calls.Add(1) == 1 {
				time.Sleep(5 * time.Millisecond)
			}
		}
		rt := services.NewRuntime(config.LatencyConfig{Enabled: true, Update: time.Millisecond}, nil, services.WithSleep(sleep))
		tasks := services.NewTaskService(repository.NewTaskRepository(repository.Options{}), rt)

		created, err := tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "Ship it", ProjectID: "p1"})
		require.NoError(t, err)
		calls.Store(0)

		board := NewBoard(tasks, &recordingNotifier{}, nil)
		board.Load([]*entities.Task{created})
		ctl := NewController(board)

		for _, to := range []entities.TaskStatus{entities.TaskStatusInProgress, entities.TaskStatusDone} {
			current, ok := board.Task(created.ID)
			require.True(t, ok)
			ctl.StartDrag(DragItem{TaskID: created.ID, Status: current.Status})
			moved, err := ctl.Drop(ctx, to)
			require.NoError(t, err)
			require.True(t, moved)
		}
		board.Wait()

		stored, err := tasks.GetTask(ctx, created.ID)
		require.NoError(t, err)
		shown, _ := board.Task(created.ID)
		assert.Equal(t, entities.TaskStatusDone, stored.Status)
		assert.Equal(t, stored.Status, shown.Status)
	}
}

func TestBoard_MoveRejectsBadInput(t *testing.T) {
	notify := &recordingNotifier{}
	board := NewBoard(&stubUpdater{}, notify, nil)
	board.Load(boardTasks())

	err := board.MoveTask(context.Background(), "missing", entities.TaskStatusTodo, entities.TaskStatusDone)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	err = board.MoveTask(context.Background(), "t1", entities.TaskStatusTodo, "review")
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	task, _ := board.Task("t1")
	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.Empty(t, notify.successes)
	assert.Empty(t, notify.errors)
}

func TestBoard_DragAndDropThroughTaskService(t *testing.T) {
	ctx := context.Background()
	rt := services.NewRuntime(config.Instant(), nil)
	repo := repository.NewTaskRepository(repository.Options{})
	tasks := services.NewTaskService(repo, rt)

	created, err := tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "Write docs", ProjectID: "p1"})
	require.NoError(t, err)

	var out bytes.Buffer
	board := NewBoard(tasks, &WriterNotifier{W: &out}, nil)
	all, err := tasks.ListTasks(ctx)
	require.NoError(t, err)
	board.Load(all)

	ctl := NewController(board, WithDispatch(Synchronous))
	ctl.StartDrag(DragItem{TaskID: created.ID, Status: created.Status})
	require.NoError(t, ctl.HoverTarget(entities.TaskStatusInProgress))
	moved, err := ctl.Drop(ctx, entities.TaskStatusInProgress)
	require.NoError(t, err)
	require.True(t, moved)

	stored, err := tasks.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusInProgress, stored.Status)
	assert.Equal(t, "✓ Task status updated\n", out.String())

	columns, err := board.Columns()
	require.NoError(t, err)
	assert.Len(t, columns[1].Tasks, 1)
}

func TestColumns(t *testing.T) {
	columns, err := Columns(nil)
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, entities.TaskStatusTodo, columns[0].Status)
	assert.Equal(t, "To Do", columns[0].Title)
	assert.Equal(t, "Add your first task", columns[0].EmptyHint)
	assert.Equal(t, "No In Progress tasks", columns[1].EmptyHint)
	assert.Equal(t, "No Done tasks", columns[2].EmptyHint)

	columns, err = Columns([]*entities.Task{{ID: "t1", Status: entities.TaskStatusDone}, {ID: "x", Status: "stuck"}})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	assert.Len(t, columns[2].Tasks, 1)
}
