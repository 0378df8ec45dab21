package app

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskflow/internal/application/kanban"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/ports"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Latency = config.Instant()

	var n int64
	a, err := New(cfg, nil,
		WithClock(func() time.Time { return time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC) }),
		WithIDs(func() string { return fmt.Sprintf("new-%d", atomic.AddInt64(&n, 1)) }),
	)
	require.NoError(t, err)
	return a
}

func TestLoadDashboard(t *testing.T) {
	a := newTestApp(t)

	d, err := a.LoadDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Projects, 3)
	assert.Len(t, d.Tasks, 6)
	assert.Equal(t, 3, d.UnreadCount)
}

func TestLoadDashboard_LoadsConcurrently(t *testing.T) {
	cfg := config.Default()

	// each load blocks until all three are waiting at once
	var inside int32
	all := make(chan struct{})
	var once sync.Once
	sleep := func(time.Duration) {
		if atomic.AddInt32(&inside, 1) == 3 {
			once.Do(func() { close(all) })
		}
		select {
		case <-all:
		case <-time.After(2 * time.Second):
		}
	}

	a, err := New(cfg, nil, WithSleep(sleep))
	require.NoError(t, err)

	_, err = a.LoadDashboard(context.Background())
	require.NoError(t, err)

	select {
	case <-all:
	default:
		t.Fatal("dashboard loads ran one after another")
	}
}

func TestBoardMoveUpdatesStoreAndMetrics(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	var out bytes.Buffer
	board, err := a.NewBoard(ctx, "1", &kanban.WriterNotifier{W: &out})
	require.NoError(t, err)
	require.Len(t, board.Tasks(), 3)

	ctl := a.NewDragController(board, kanban.WithDispatch(kanban.Synchronous))
	ctl.StartDrag(kanban.DragItem{TaskID: "3", Status: entities.TaskStatusTodo})
	moved, err := ctl.Drop(ctx, entities.TaskStatusDone)
	require.NoError(t, err)
	require.True(t, moved)

	task, err := a.Tasks.GetTask(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusDone, task.Status)

	var metrics bytes.Buffer
	require.NoError(t, a.Metrics().WriteText(&metrics))
	assert.Contains(t, metrics.String(), `operation="update_status",outcome="success"`)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	created, err := a.Projects.CreateProject(ctx, ports.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)

	a.Reset()
	_, err = a.Projects.GetProject(ctx, created.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Equal(t, 3, a.Stats(ctx)["projects"])
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Latency = config.Instant()
	cfg.Metrics.Enabled = false

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Metrics())
}

func TestNew_BadSeedPath(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.Path = "/nonexistent/seed.yaml"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}
