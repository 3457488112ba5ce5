package repo

import (
	"context"

	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
)

// OrganizationRepository defines the persistence interface for Organization
// entities.
type OrganizationRepository interface {
	// Create stores a new organization.
	Create(ctx context.Context, org *entity.Organization) error
	// Get retrieves an organization by ID.
	Get(ctx context.Context, id string) (*entity.Organization, error)
	// Update updates an existing organization.
	Update(ctx context.Context, org *entity.Organization) error
	// Delete removes an organization by ID.
	Delete(ctx context.Context, id string) error
	// List returns all organizations.
	List(ctx context.Context) ([]*entity.Organization, error)
}
