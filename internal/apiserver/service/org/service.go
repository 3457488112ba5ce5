// Package org implements organization management and the per-organization
// configuration resolver the completion pipeline consumes.
package org

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	llmentity "github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	llmerrno "github.com/lectern-ai/lectern/internal/apiserver/service/llm/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/repo"
)

// Service provides organization CRUD and configuration resolution. It
// implements the llm package's SmallFastModelResolver.
type Service struct {
	repo repo.OrganizationRepository
}

// NewService creates the organization service over a repository.
func NewService(repo repo.OrganizationRepository) *Service {
	return &Service{repo: repo}
}

// Create stores a new organization, assigning an ID when none is set.
func (s *Service) Create(ctx context.Context, org *entity.Organization) error {
	if org.Name == "" {
		return fmt.Errorf("organization name is required")
	}
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now
	return s.repo.Create(ctx, org)
}

// Get retrieves an organization by ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.Organization, error) {
	return s.repo.Get(ctx, id)
}

// Update updates an existing organization.
func (s *Service) Update(ctx context.Context, org *entity.Organization) error {
	if org.ID == "" {
		return fmt.Errorf("organization id is required")
	}
	org.UpdatedAt = time.Now()
	return s.repo.Update(ctx, org)
}

// Delete removes an organization by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns all organizations.
func (s *Service) List(ctx context.Context) ([]*entity.Organization, error) {
	return s.repo.List(ctx)
}

// SmallFastModelConfig resolves the organization's helper model. A missing
// provider or model is a configuration error, never a silent default: the
// small/fast path must stay distinct from user-facing model selection.
func (s *Service) SmallFastModelConfig(ctx context.Context, owner string) (llmentity.ModelRef, error) {
	org, err := s.repo.Get(ctx, owner)
	if err != nil {
		return llmentity.ModelRef{}, fmt.Errorf("resolve organization %q: %w", owner, err)
	}
	if org.SmallFastProvider == "" || org.SmallFastModel == "" {
		return llmentity.ModelRef{}, fmt.Errorf("%w: organization %q", llmerrno.ErrSmallFastModelUnset, owner)
	}
	return llmentity.ModelRef{Provider: org.SmallFastProvider, Model: org.SmallFastModel}, nil
}
