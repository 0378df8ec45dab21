package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

const entityTask = "task"

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	rt       *Runtime
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, rt *Runtime) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		rt:       rt,
		logger:   rt.logger.WithComponent("task_service"),
	}
}

// ListTasks retrieves every task across all projects
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	return observe(s.rt, entityTask, "list", s.rt.latency.List, func() ([]*entities.Task, error) {
		tasks, err := s.taskRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		return tasks, nil
	})
}

// ListProjectTasks retrieves the tasks of one project. The project itself
// is not looked up.
func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string) ([]*entities.Task, error) {
	return observe(s.rt, entityTask, "list_by_project", s.rt.latency.TasksByProject, func() ([]*entities.Task, error) {
		tasks, err := s.taskRepo.ListByProject(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to list project tasks: %w", err)
		}
		return tasks, nil
	})
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	return observe(s.rt, entityTask, "get", s.rt.latency.Get, func() (*entities.Task, error) {
		task, err := s.taskRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get task: %w", err)
		}
		return task, nil
	})
}

// CreateTask creates a new task. Status defaults to todo and priority to medium.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	return observe(s.rt, entityTask, "create", s.rt.latency.Create, func() (*entities.Task, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}
		if err := requireText("title", req.Title); err != nil {
			return nil, err
		}

		task := entities.Task{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			DueDate:     req.DueDate,
			AssignedTo:  req.AssignedTo,
			ProjectID:   req.ProjectID,
		}
		if task.Status == "" {
			task.Status = entities.TaskStatusTodo
		}
		if task.Priority == "" {
			task.Priority = entities.PriorityMedium
		}
		if err := checkStatus(task.Status); err != nil {
			return nil, err
		}
		if err := checkPriority(task.Priority); err != nil {
			return nil, err
		}

		createdTask, err := s.taskRepo.Create(ctx, task)
		if err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}

		s.logger.Infow("Task created successfully", "task_id", createdTask.ID, "title", createdTask.Title)
		return createdTask, nil
	})
}

// UpdateTask shallow-merges req onto the task
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	return observe(s.rt, entityTask, "update", s.rt.latency.Update, func() (*entities.Task, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}
		if req.Title != nil {
			if err := requireText("title", *req.Title); err != nil {
				return nil, err
			}
			trimmed := strings.TrimSpace(*req.Title)
			req.Title = &trimmed
		}
		if req.ProjectID != nil {
			if err := requireText("projectId", *req.ProjectID); err != nil {
				return nil, err
			}
		}
		if req.Status != nil {
			if err := checkStatus(*req.Status); err != nil {
				return nil, err
			}
		}
		if req.Priority != nil {
			if err := checkPriority(*req.Priority); err != nil {
				return nil, err
			}
		}

		updatedTask, err := s.taskRepo.Update(ctx, id, req.Apply)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}

		s.logger.Infow("Task updated successfully", "task_id", updatedTask.ID, "title", updatedTask.Title)
		return updatedTask, nil
	})
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.rt.exec(entityTask, "delete", s.rt.latency.Delete, func() error {
		if err := s.taskRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		s.logger.Infow("Task deleted successfully", "task_id", id)
		return nil
	})
}

// UpdateTaskStatus updates a task's status
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus) (*entities.Task, error) {
	return observe(s.rt, entityTask, "update_status", s.rt.latency.Update, func() (*entities.Task, error) {
		if err := checkStatus(status); err != nil {
			return nil, err
		}

		task, err := s.taskRepo.Update(ctx, taskID, func(t *entities.Task) {
			t.Status = status
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update task status: %w", err)
		}

		s.logger.Infow("Task status updated successfully", "task_id", taskID, "status", status)
		return task, nil
	})
}
