package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/store/inmemory"
)

type mockValidator struct {
	problems []string
}

func (m *mockValidator) ValidateAssistant(_ *entity.Assistant) []string {
	return m.problems
}

func TestCreateAssignsID(t *testing.T) {
	svc := NewService(inmemory.NewAssistantStore(), nil)

	a := &entity.Assistant{Name: "Study Helper"}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	got, err := svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Study Helper" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCreateRejectsInvalidMetadata(t *testing.T) {
	validator := &mockValidator{problems: []string{`unknown tool "ghost"`}}
	svc := NewService(inmemory.NewAssistantStore(), validator)

	err := svc.Create(context.Background(), &entity.Assistant{Name: "Broken"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "ghost") {
		t.Fatalf("error = %v", verr)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(inmemory.NewAssistantStore(), nil)
	err := svc.Create(context.Background(), &entity.Assistant{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	svc := NewService(inmemory.NewAssistantStore(), nil)
	if err := svc.Update(context.Background(), &entity.Assistant{Name: "x"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestUpdateRevalidatesMetadata(t *testing.T) {
	validator := &mockValidator{}
	svc := NewService(inmemory.NewAssistantStore(), validator)

	a := &entity.Assistant{Name: "ok"}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatal(err)
	}

	validator.problems = []string{"placeholder clash"}
	err := svc.Update(context.Background(), a)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
