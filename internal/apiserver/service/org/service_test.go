package org

import (
	"context"
	"errors"
	"testing"

	llmerrno "github.com/lectern-ai/lectern/internal/apiserver/service/llm/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
	orgerrno "github.com/lectern-ai/lectern/internal/apiserver/service/org/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/store/inmemory"
)

func TestCreateAssignsID(t *testing.T) {
	svc := NewService(inmemory.NewOrganizationStore())

	org := &entity.Organization{Name: "Acme School"}
	if err := svc.Create(context.Background(), org); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if org.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if org.CreatedAt.IsZero() || org.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(inmemory.NewOrganizationStore())
	if err := svc.Create(context.Background(), &entity.Organization{}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestSmallFastModelConfig(t *testing.T) {
	store := inmemory.NewOrganizationStore()
	svc := NewService(store)

	org := &entity.Organization{
		Name:              "Acme School",
		SmallFastProvider: "openai",
		SmallFastModel:    "gpt-4o-mini",
	}
	if err := svc.Create(context.Background(), org); err != nil {
		t.Fatal(err)
	}

	ref, err := svc.SmallFastModelConfig(context.Background(), org.ID)
	if err != nil {
		t.Fatalf("SmallFastModelConfig failed: %v", err)
	}
	if ref.Provider != "openai" || ref.Model != "gpt-4o-mini" {
		t.Fatalf("ref = %+v", ref)
	}
}

func TestSmallFastModelConfigUnset(t *testing.T) {
	store := inmemory.NewOrganizationStore()
	svc := NewService(store)

	org := &entity.Organization{Name: "No Helper", SmallFastProvider: "openai"}
	if err := svc.Create(context.Background(), org); err != nil {
		t.Fatal(err)
	}

	_, err := svc.SmallFastModelConfig(context.Background(), org.ID)
	if !errors.Is(err, llmerrno.ErrSmallFastModelUnset) {
		t.Fatalf("expected ErrSmallFastModelUnset, got %v", err)
	}
}

func TestSmallFastModelConfigUnknownOrganization(t *testing.T) {
	svc := NewService(inmemory.NewOrganizationStore())
	_, err := svc.SmallFastModelConfig(context.Background(), "ghost")
	if !errors.Is(err, orgerrno.ErrOrganizationNotFound) {
		t.Fatalf("expected ErrOrganizationNotFound, got %v", err)
	}
}
