package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
	orgerrno "github.com/lectern-ai/lectern/internal/apiserver/service/org/pkg/errno"
	"github.com/lectern-ai/lectern/pkg/utils/json"
)

// OrganizationStore implements the OrganizationRepository interface using
// BoltDB.
type OrganizationStore struct {
	db *bolt.DB
}

// NewOrganizationStore creates a new BoltDB-backed OrganizationStore.
func NewOrganizationStore(db *DB) *OrganizationStore {
	return &OrganizationStore{db: db.Bolt()}
}

// Create adds a new organization to the store.
func (s *OrganizationStore) Create(_ context.Context, org *entity.Organization) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrganizationStore)
		data, err := json.Marshal(org)
		if err != nil {
			return fmt.Errorf("failed to marshal organization: %w", err)
		}
		return b.Put([]byte(org.ID), data)
	})
}

// Get retrieves an organization by its ID.
func (s *OrganizationStore) Get(_ context.Context, id string) (*entity.Organization, error) {
	var org entity.Organization
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrganizationStore)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %q", orgerrno.ErrOrganizationNotFound, id)
		}
		return json.Unmarshal(data, &org)
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update modifies an existing organization in the store.
func (s *OrganizationStore) Update(_ context.Context, org *entity.Organization) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrganizationStore)
		if b.Get([]byte(org.ID)) == nil {
			return fmt.Errorf("%w: %q", orgerrno.ErrOrganizationNotFound, org.ID)
		}

		data, err := json.Marshal(org)
		if err != nil {
			return fmt.Errorf("failed to marshal organization: %w", err)
		}
		return b.Put([]byte(org.ID), data)
	})
}

// Delete removes an organization from the store.
func (s *OrganizationStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrganizationStore)
		return b.Delete([]byte(id))
	})
}

// List returns all organizations in the store.
func (s *OrganizationStore) List(_ context.Context) ([]*entity.Organization, error) {
	var orgs []*entity.Organization
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOrganizationStore)
		return b.ForEach(func(k, v []byte) error {
			var org entity.Organization
			if err := json.Unmarshal(v, &org); err != nil {
				return fmt.Errorf("failed to unmarshal organization: %w", err)
			}
			orgs = append(orgs, &org)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
