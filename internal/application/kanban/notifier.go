package kanban

import (
	"fmt"
	"io"
	"sync"

	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	Logger *logger.Logger
}

func (n LogNotifier) Success(message string) { n.Logger.Infow(message) }

func (n LogNotifier) Error(message string) { n.Logger.Errorw(message) }

// WriterNotifier prints notifications as toast lines.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func (n *WriterNotifier) Success(message string) { n.write("✓", message) }

func (n *WriterNotifier) Error(message string) { n.write("✗", message) }

func (n *WriterNotifier) write(mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.W, "%s %s\n", mark, message)
}
