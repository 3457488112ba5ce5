// Package inmemory provides map-backed stores for development and tests.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	orchestrationerrno "github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
)

// AssistantStore is an in-memory implementation of repo.AssistantRepository.
type AssistantStore struct {
	mu         sync.RWMutex
	assistants map[string]*entity.Assistant
}

// NewAssistantStore creates a new AssistantStore instance.
func NewAssistantStore() *AssistantStore {
	return &AssistantStore{
		assistants: make(map[string]*entity.Assistant),
	}
}

// Create creates a new assistant.
func (s *AssistantStore) Create(_ context.Context, assistant *entity.Assistant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assistants[assistant.ID] = assistant
	return nil
}

// Get returns an assistant by ID.
func (s *AssistantStore) Get(_ context.Context, id string) (*entity.Assistant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assistant, ok := s.assistants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", orchestrationerrno.ErrAssistantNotFound, id)
	}
	return assistant, nil
}

// Update updates an assistant.
func (s *AssistantStore) Update(_ context.Context, assistant *entity.Assistant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assistants[assistant.ID]; !ok {
		return fmt.Errorf("%w: %q", orchestrationerrno.ErrAssistantNotFound, assistant.ID)
	}
	s.assistants[assistant.ID] = assistant
	return nil
}

// Delete deletes an assistant by ID.
func (s *AssistantStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assistants[id]; !ok {
		return fmt.Errorf("%w: %q", orchestrationerrno.ErrAssistantNotFound, id)
	}
	delete(s.assistants, id)
	return nil
}

// List returns all assistants.
func (s *AssistantStore) List(_ context.Context) ([]*entity.Assistant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assistants := make([]*entity.Assistant, 0, len(s.assistants))
	for _, assistant := range s.assistants {
		assistants = append(assistants, assistant)
	}
	return assistants, nil
}
