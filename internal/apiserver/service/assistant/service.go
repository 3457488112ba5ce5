// Package assistant implements assistant management. Orchestration metadata
// is validated when an assistant is saved, so misconfigured tools surface in
// the editor instead of mid-chat.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lectern-ai/lectern/internal/apiserver/service/assistant/domain/repo"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
)

// MetadataValidator checks an assistant's orchestration metadata. It is
// implemented by the orchestrator.
type MetadataValidator interface {
	ValidateAssistant(assistant *entity.Assistant) []string
}

// ValidationError carries every problem found in an assistant's
// configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid assistant configuration: %s", strings.Join(e.Problems, "; "))
}

// Service provides assistant CRUD with save-time metadata validation.
type Service struct {
	repo      repo.AssistantRepository
	validator MetadataValidator
}

// NewService creates the assistant service. validator may be nil, disabling
// save-time metadata checks.
func NewService(repo repo.AssistantRepository, validator MetadataValidator) *Service {
	return &Service{repo: repo, validator: validator}
}

// Create stores a new assistant, assigning an ID when none is set.
func (s *Service) Create(ctx context.Context, assistant *entity.Assistant) error {
	if err := s.validate(assistant); err != nil {
		return err
	}
	if assistant.ID == "" {
		assistant.ID = uuid.NewString()
	}
	now := time.Now()
	assistant.CreatedAt = now
	assistant.UpdatedAt = now
	return s.repo.Create(ctx, assistant)
}

// Get retrieves an assistant by ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.Assistant, error) {
	return s.repo.Get(ctx, id)
}

// Update updates an existing assistant.
func (s *Service) Update(ctx context.Context, assistant *entity.Assistant) error {
	if assistant.ID == "" {
		return fmt.Errorf("assistant id is required")
	}
	if err := s.validate(assistant); err != nil {
		return err
	}
	assistant.UpdatedAt = time.Now()
	return s.repo.Update(ctx, assistant)
}

// Delete removes an assistant by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns all assistants.
func (s *Service) List(ctx context.Context) ([]*entity.Assistant, error) {
	return s.repo.List(ctx)
}

func (s *Service) validate(assistant *entity.Assistant) error {
	if assistant.Name == "" {
		return &ValidationError{Problems: []string{"name is required"}}
	}
	if s.validator == nil {
		return nil
	}
	if problems := s.validator.ValidateAssistant(assistant); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
