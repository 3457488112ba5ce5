package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
	orgerrno "github.com/lectern-ai/lectern/internal/apiserver/service/org/pkg/errno"
)

// OrganizationStore is an in-memory implementation of
// repo.OrganizationRepository.
type OrganizationStore struct {
	mu   sync.RWMutex
	orgs map[string]*entity.Organization
}

// NewOrganizationStore creates a new OrganizationStore instance.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{
		orgs: make(map[string]*entity.Organization),
	}
}

// Create creates a new organization.
func (s *OrganizationStore) Create(_ context.Context, org *entity.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[org.ID] = org
	return nil
}

// Get returns an organization by ID.
func (s *OrganizationStore) Get(_ context.Context, id string) (*entity.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", orgerrno.ErrOrganizationNotFound, id)
	}
	return org, nil
}

// Update updates an organization.
func (s *OrganizationStore) Update(_ context.Context, org *entity.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[org.ID]; !ok {
		return fmt.Errorf("%w: %q", orgerrno.ErrOrganizationNotFound, org.ID)
	}
	s.orgs[org.ID] = org
	return nil
}

// Delete deletes an organization by ID.
func (s *OrganizationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[id]; !ok {
		return fmt.Errorf("%w: %q", orgerrno.ErrOrganizationNotFound, id)
	}
	delete(s.orgs, id)
	return nil
}

// List returns all organizations.
func (s *OrganizationStore) List(_ context.Context) ([]*entity.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orgs := make([]*entity.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		orgs = append(orgs, org)
	}
	return orgs, nil
}
