package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

const entityProject = "project"

// ProjectService handles project-related operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	rt          *Runtime
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, rt *Runtime) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		rt:          rt,
		logger:      rt.logger.WithComponent("project_service"),
	}
}

// ListProjects returns every project in creation order
func (s *ProjectService) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	return observe(s.rt, entityProject, "list", s.rt.latency.List, func() ([]*entities.Project, error) {
		projects, err := s.projectRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		return projects, nil
	})
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id string) (*entities.Project, error) {
	return observe(s.rt, entityProject, "get", s.rt.latency.Get, func() (*entities.Project, error) {
		project, err := s.projectRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}
		return project, nil
	})
}

// CreateProject creates a new project. An empty colour falls back to the
// first palette colour.
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.Project, error) {
	return observe(s.rt, entityProject, "create", s.rt.latency.Create, func() (*entities.Project, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}
		if err := requireText("name", req.Name); err != nil {
			return nil, err
		}

		project := entities.Project{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Color:       req.Color,
		}
		if project.Color == "" {
			project.Color = entities.DefaultProjectColor
		}

		createdProject, err := s.projectRepo.Create(ctx, project)
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}

		s.logger.Infow("Project created successfully", "project_id", createdProject.ID, "name", createdProject.Name)
		return createdProject, nil
	})
}

// UpdateProject shallow-merges req onto the project
func (s *ProjectService) UpdateProject(ctx context.Context, id string, req ports.UpdateProjectRequest) (*entities.Project, error) {
	return observe(s.rt, entityProject, "update", s.rt.latency.Update, func() (*entities.Project, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}
		if req.Name != nil {
			if err := requireText("name", *req.Name); err != nil {
				return nil, err
			}
			trimmed := strings.TrimSpace(*req.Name)
			req.Name = &trimmed
		}
		for user, perm := range req.Permissions {
			if err := checkPermission(perm); err != nil {
				return nil, fmt.Errorf("permission for %s: %w", user, err)
			}
		}

		updatedProject, err := s.projectRepo.Update(ctx, id, req.Apply)
		if err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}

		s.logger.Infow("Project updated successfully", "project_id", updatedProject.ID, "name", updatedProject.Name)
		return updatedProject, nil
	})
}

// DeleteProject deletes a project. Tasks and share links pointing at it are kept.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.rt.exec(entityProject, "delete", s.rt.latency.Delete, func() error {
		if err := s.projectRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		s.logger.Infow("Project deleted successfully", "project_id", id)
		return nil
	})
}
