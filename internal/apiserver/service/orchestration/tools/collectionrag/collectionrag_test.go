package collectionrag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
)

type mockSearcher struct {
	lastCollection string
	lastQuery      string
	lastLimit      int
	sources        []entity.Source
	err            error
}

func (m *mockSearcher) Search(_ context.Context, collection, query string, limit int) ([]entity.Source, error) {
	m.lastCollection = collection
	m.lastQuery = query
	m.lastLimit = limit
	return m.sources, m.err
}

type mockCompletions struct {
	reply string
	err   error

	lastOwner     string
	lastSmallFast bool
}

func (m *mockCompletions) Complete(_ context.Context, owner string, _ []*schema.Message, useSmallFastModel bool) (string, error) {
	m.lastOwner = owner
	m.lastSmallFast = useSmallFastModel
	return m.reply, m.err
}

func toolConfig(config map[string]interface{}) *entity.ToolConfig {
	return &entity.ToolConfig{
		Plugin:      Name,
		Placeholder: "context",
		Enabled:     true,
		Config:      config,
	}
}

func TestNewRequiresKnowledgeStore(t *testing.T) {
	if _, err := New(spi.Dependencies{}); err == nil {
		t.Fatal("expected error for missing knowledge store")
	}
}

func TestProcessSearchesCollection(t *testing.T) {
	searcher := &mockSearcher{
		sources: []entity.Source{
			{Source: "doc-1", Content: "first snippet", Score: 0.95},
			{Source: "doc-2", Content: "second snippet", Score: 0.80},
		},
	}
	tool, err := New(spi.Dependencies{Knowledge: searcher})
	if err != nil {
		t.Fatal(err)
	}

	req := &entity.ToolRequest{UserInput: "what is photosynthesis", Owner: "org-1"}
	res := tool.Process(context.Background(), req, nil, toolConfig(map[string]interface{}{
		"collection": "biology",
	}))

	if res.Error != "" {
		t.Fatalf("unexpected error: %q", res.Error)
	}
	if searcher.lastCollection != "biology" || searcher.lastQuery != "what is photosynthesis" {
		t.Fatalf("search args: collection=%q query=%q", searcher.lastCollection, searcher.lastQuery)
	}
	if searcher.lastLimit != DefaultLimit {
		t.Fatalf("limit = %d, want %d", searcher.lastLimit, DefaultLimit)
	}
	if !strings.Contains(res.Content, "first snippet") || !strings.Contains(res.Content, "second snippet") {
		t.Fatalf("content = %q", res.Content)
	}
	if strings.Index(res.Content, "first snippet") > strings.Index(res.Content, "second snippet") {
		t.Fatalf("snippet order not preserved: %q", res.Content)
	}
	if len(res.Sources) != 2 || res.Sources[0].Source != "doc-1" {
		t.Fatalf("sources: %+v", res.Sources)
	}
}

func TestProcessMissingCollection(t *testing.T) {
	tool, _ := New(spi.Dependencies{Knowledge: &mockSearcher{}})
	res := tool.Process(context.Background(), &entity.ToolRequest{UserInput: "q"}, nil, toolConfig(map[string]interface{}{}))
	if !strings.Contains(res.Error, "collection is required") {
		t.Fatalf("error = %q", res.Error)
	}
}

func TestProcessSearchFailureDegrades(t *testing.T) {
	tool, _ := New(spi.Dependencies{Knowledge: &mockSearcher{err: errors.New("backend down")}})
	res := tool.Process(context.Background(), &entity.ToolRequest{UserInput: "q"}, nil, toolConfig(map[string]interface{}{
		"collection": "biology",
	}))
	if res.Error == "" || !strings.Contains(res.Error, "backend down") {
		t.Fatalf("error = %q", res.Error)
	}
	if res.Content == "" {
		t.Fatal("degraded result should still carry readable content")
	}
}

func TestProcessEmptyRetrieval(t *testing.T) {
	tool, _ := New(spi.Dependencies{Knowledge: &mockSearcher{}})
	res := tool.Process(context.Background(), &entity.ToolRequest{UserInput: "q"}, nil, toolConfig(map[string]interface{}{
		"collection": "biology",
	}))
	if !strings.Contains(res.Error, "no results") {
		t.Fatalf("error = %q", res.Error)
	}
	if !strings.Contains(res.Content, "biology") {
		t.Fatalf("content = %q", res.Content)
	}
}

func TestProcessQueryRewriteUsesSmallFastModel(t *testing.T) {
	searcher := &mockSearcher{sources: []entity.Source{{Source: "d", Content: "c", Score: 1}}}
	completions := &mockCompletions{reply: "photosynthesis definition"}
	tool, _ := New(spi.Dependencies{Knowledge: searcher, Completions: completions})

	req := &entity.ToolRequest{UserInput: "hey can you tell me about photosynthesis?", Owner: "org-9"}
	res := tool.Process(context.Background(), req, nil, toolConfig(map[string]interface{}{
		"collection":    "biology",
		"rewrite_query": true,
	}))

	if res.Error != "" {
		t.Fatalf("unexpected error: %q", res.Error)
	}
	if !completions.lastSmallFast {
		t.Fatal("rewrite must use the small/fast model path")
	}
	if completions.lastOwner != "org-9" {
		t.Fatalf("owner = %q", completions.lastOwner)
	}
	if searcher.lastQuery != "photosynthesis definition" {
		t.Fatalf("query = %q", searcher.lastQuery)
	}
}

func TestProcessRewriteFailureFallsBack(t *testing.T) {
	searcher := &mockSearcher{sources: []entity.Source{{Source: "d", Content: "c", Score: 1}}}
	completions := &mockCompletions{err: errors.New("small/fast model not configured for organization")}
	tool, _ := New(spi.Dependencies{Knowledge: searcher, Completions: completions})

	req := &entity.ToolRequest{UserInput: "original question", Owner: "org-1"}
	res := tool.Process(context.Background(), req, nil, toolConfig(map[string]interface{}{
		"collection":    "biology",
		"rewrite_query": true,
	}))

	if res.Error != "" {
		t.Fatalf("rewrite failure must not fail the tool: %q", res.Error)
	}
	if searcher.lastQuery != "original question" {
		t.Fatalf("query = %q", searcher.lastQuery)
	}
}

func TestProcessCustomLimit(t *testing.T) {
	searcher := &mockSearcher{sources: []entity.Source{{Source: "d", Content: "c", Score: 1}}}
	tool, _ := New(spi.Dependencies{Knowledge: searcher})

	tool.Process(context.Background(), &entity.ToolRequest{UserInput: "q"}, nil, toolConfig(map[string]interface{}{
		"collection": "biology",
		"limit":      float64(2),
	}))

	if searcher.lastLimit != 2 {
		t.Fatalf("limit = %d", searcher.lastLimit)
	}
}

func TestValidateConfig(t *testing.T) {
	tool, _ := New(spi.Dependencies{Knowledge: &mockSearcher{}})
	validator := tool.(*Tool)

	if problems := validator.ValidateConfig(map[string]interface{}{"collection": "x"}); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}

	problems := validator.ValidateConfig(map[string]interface{}{
		"limit":         "five",
		"rewrite_query": "yes",
	})
	joined := strings.Join(problems, "\n")
	for _, want := range []string{"collection is required", "limit must be", "rewrite_query must be"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, problems)
		}
	}
}
