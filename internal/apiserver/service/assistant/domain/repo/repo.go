package repo

import (
	"context"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
)

// AssistantRepository defines the persistence interface for Assistant
// entities.
type AssistantRepository interface {
	// Create stores a new assistant.
	Create(ctx context.Context, assistant *entity.Assistant) error
	// Get retrieves an assistant by ID.
	Get(ctx context.Context, id string) (*entity.Assistant, error)
	// Update updates an existing assistant.
	Update(ctx context.Context, assistant *entity.Assistant) error
	// Delete removes an assistant by ID.
	Delete(ctx context.Context, id string) error
	// List returns all assistants.
	List(ctx context.Context) ([]*entity.Assistant, error)
}
