package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

const entityShare = "share_link"

// ShareService handles share link operations. Links are plain strings; no
// access control is attached to them.
type ShareService struct {
	shareRepo ports.ShareRepository
	rt        *Runtime
	logger    *logger.Logger
}

// NewShareService creates a new share link service
func NewShareService(shareRepo ports.ShareRepository, rt *Runtime) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		rt:        rt,
		logger:    rt.logger.WithComponent("share_service"),
	}
}

// ListShareLinks returns every share link
func (s *ShareService) ListShareLinks(ctx context.Context) ([]*entities.ShareLink, error) {
	return observe(s.rt, entityShare, "list", s.rt.latency.List, func() ([]*entities.ShareLink, error) {
		links, err := s.shareRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list share links: %w", err)
		}
		return links, nil
	})
}

// ListProjectShareLinks returns the share links of one project
func (s *ShareService) ListProjectShareLinks(ctx context.Context, projectID string) ([]*entities.ShareLink, error) {
	return observe(s.rt, entityShare, "list_by_project", s.rt.latency.SharesByProject, func() ([]*entities.ShareLink, error) {
		links, err := s.shareRepo.ListByProject(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to list project share links: %w", err)
		}
		return links, nil
	})
}

// GetShareLink retrieves a share link by ID
func (s *ShareService) GetShareLink(ctx context.Context, id string) (*entities.ShareLink, error) {
	return observe(s.rt, entityShare, "get", s.rt.latency.Get, func() (*entities.ShareLink, error) {
		link, err := s.shareRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get share link: %w", err)
		}
		return link, nil
	})
}

// CreateShareLink generates a new link. Permission defaults to view. An
// expiry in the past is accepted; the link is simply expired from the start.
func (s *ShareService) CreateShareLink(ctx context.Context, req ports.CreateShareLinkRequest) (*entities.ShareLink, error) {
	return observe(s.rt, entityShare, "create", s.rt.latency.Create, func() (*entities.ShareLink, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}

		link := entities.ShareLink{
			ProjectID:  req.ProjectID,
			Permission: req.Permission,
		}
		if link.Permission == "" {
			link.Permission = entities.PermissionView
		}
		if err := checkPermission(link.Permission); err != nil {
			return nil, err
		}
		if req.ExpiresAt != nil {
			at := *req.ExpiresAt
			link.ExpiresAt = &at
		}

		created, err := s.shareRepo.Create(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("failed to create share link: %w", err)
		}

		s.logger.Infow("Share link created successfully", "share_id", created.ID, "project_id", created.ProjectID)
		return created, nil
	})
}

// UpdateShareLink changes permission or expiry. The link string is fixed.
func (s *ShareService) UpdateShareLink(ctx context.Context, id string, req ports.UpdateShareLinkRequest) (*entities.ShareLink, error) {
	return observe(s.rt, entityShare, "update", s.rt.latency.Update, func() (*entities.ShareLink, error) {
		if req.Permission != nil {
			if err := checkPermission(*req.Permission); err != nil {
				return nil, err
			}
		}

		updated, err := s.shareRepo.Update(ctx, id, req.Apply)
		if err != nil {
			return nil, fmt.Errorf("failed to update share link: %w", err)
		}

		s.logger.Infow("Share link updated successfully", "share_id", updated.ID)
		return updated, nil
	})
}

// DeleteShareLink deletes a share link, expired or not
func (s *ShareService) DeleteShareLink(ctx context.Context, id string) error {
	return s.rt.exec(entityShare, "delete", s.rt.latency.Delete, func() error {
		if err := s.shareRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete share link: %w", err)
		}

		s.logger.Infow("Share link deleted successfully", "share_id", id)
		return nil
	})
}

// CopyShareLink returns the link text for copying. Expired links are
// rejected with ErrLinkExpired.
func (s *ShareService) CopyShareLink(ctx context.Context, id string) (string, error) {
	return observe(s.rt, entityShare, "copy", s.rt.latency.Get, func() (string, error) {
		link, err := s.shareRepo.GetByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to get share link: %w", err)
		}
		text, err := link.CopyableLink(s.rt.now())
		if err != nil {
			return "", err
		}
		return text, nil
	})
}
