package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"

	orchestrationerrno "github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/pkg/utils/json"
)

// AssistantStore implements the AssistantRepository interface using BoltDB.
type AssistantStore struct {
	db *bolt.DB
}

// NewAssistantStore creates a new BoltDB-backed AssistantStore.
func NewAssistantStore(db *DB) *AssistantStore {
	return &AssistantStore{db: db.Bolt()}
}

// Create adds a new assistant to the store.
func (s *AssistantStore) Create(_ context.Context, assistant *entity.Assistant) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssistantStore)
		data, err := json.Marshal(assistant)
		if err != nil {
			return fmt.Errorf("failed to marshal assistant: %w", err)
		}
		return b.Put([]byte(assistant.ID), data)
	})
}

// Get retrieves an assistant by its ID.
func (s *AssistantStore) Get(_ context.Context, id string) (*entity.Assistant, error) {
	var assistant entity.Assistant
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssistantStore)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %q", orchestrationerrno.ErrAssistantNotFound, id)
		}
		return json.Unmarshal(data, &assistant)
	})
	if err != nil {
		return nil, err
	}
	return &assistant, nil
}

// Update modifies an existing assistant in the store.
func (s *AssistantStore) Update(_ context.Context, assistant *entity.Assistant) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssistantStore)
		if b.Get([]byte(assistant.ID)) == nil {
			return fmt.Errorf("%w: %q", orchestrationerrno.ErrAssistantNotFound, assistant.ID)
		}

		data, err := json.Marshal(assistant)
		if err != nil {
			return fmt.Errorf("failed to marshal assistant: %w", err)
		}
		return b.Put([]byte(assistant.ID), data)
	})
}

// Delete removes an assistant from the store.
func (s *AssistantStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssistantStore)
		return b.Delete([]byte(id))
	})
}

// List returns all assistants in the store.
func (s *AssistantStore) List(_ context.Context) ([]*entity.Assistant, error) {
	var assistants []*entity.Assistant
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssistantStore)
		return b.ForEach(func(k, v []byte) error {
			var assistant entity.Assistant
			if err := json.Unmarshal(v, &assistant); err != nil {
				return fmt.Errorf("failed to unmarshal assistant: %w", err)
			}
			assistants = append(assistants, &assistant)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	return assistants, nil
}
