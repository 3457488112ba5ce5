package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

type fakeChatModel struct {
	reply string
}

func (f *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(f.reply, nil)}), nil
}

type fakePlugin struct {
	name      string
	lastModel string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{}
}

func (p *fakePlugin) BuildChatModel(_ context.Context, modelID string, _ *options.ProviderConfig, _ *entity.LLMParams) (model.BaseChatModel, error) {
	p.lastModel = modelID
	return &fakeChatModel{reply: "ok from " + p.name}, nil
}

type staticResolver struct {
	ref entity.ModelRef
	err error
}

func (r *staticResolver) SmallFastModelConfig(_ context.Context, _ string) (entity.ModelRef, error) {
	return r.ref, r.err
}

func newTestDispatcher(t *testing.T, plugin *fakePlugin, resolver SmallFastModelResolver) *Dispatcher {
	t.Helper()
	registry := provider.NewRegistry()
	registry.MustRegister(plugin.name, func() spi.ConnectorPlugin { return plugin })
	configs := map[string]*options.ProviderConfig{plugin.name: {APIKey: "test"}}
	return NewDispatcher(registry, configs, resolver, entity.ModelRef{Provider: plugin.name, Model: "default-model"})
}

func TestDispatchUnsupportedProvider(t *testing.T) {
	d := newTestDispatcher(t, &fakePlugin{name: "openai"}, nil)

	_, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Ref:      entity.ModelRef{Provider: "nope", Model: "x"},
	})
	if !errors.Is(err, errno.ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestDispatchDefaultModel(t *testing.T) {
	plugin := &fakePlugin{name: "openai"}
	d := newTestDispatcher(t, plugin, nil)

	res, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages: []*schema.Message{schema.UserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if plugin.lastModel != "default-model" {
		t.Fatalf("model = %q", plugin.lastModel)
	}
	if res.Message == nil || res.Message.Content != "ok from openai" {
		t.Fatalf("message = %+v", res.Message)
	}
}

func TestDispatchNoDefaultModel(t *testing.T) {
	plugin := &fakePlugin{name: "openai"}
	registry := provider.NewRegistry()
	registry.MustRegister(plugin.name, func() spi.ConnectorPlugin { return plugin })
	d := NewDispatcher(registry, map[string]*options.ProviderConfig{plugin.name: {}}, nil, entity.ModelRef{})

	_, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages: []*schema.Message{schema.UserMessage("hi")},
	})
	if !errors.Is(err, errno.ErrNoDefaultModel) {
		t.Fatalf("expected ErrNoDefaultModel, got %v", err)
	}
}

func TestDispatchProviderNotConfigured(t *testing.T) {
	plugin := &fakePlugin{name: "openai"}
	registry := provider.NewRegistry()
	registry.MustRegister(plugin.name, func() spi.ConnectorPlugin { return plugin })
	d := NewDispatcher(registry, map[string]*options.ProviderConfig{}, nil, entity.ModelRef{})

	_, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Ref:      entity.ModelRef{Provider: "openai", Model: "gpt-4o"},
	})
	if !errors.Is(err, errno.ErrProviderNotConfigured) {
		t.Fatalf("expected ErrProviderNotConfigured, got %v", err)
	}
}

// The small/fast path resolves through the organization resolver and ignores
// the user-selected model entirely.
func TestDispatchSmallFastPath(t *testing.T) {
	plugin := &fakePlugin{name: "openai"}
	resolver := &staticResolver{ref: entity.ModelRef{Provider: "openai", Model: "gpt-4o-mini"}}
	d := newTestDispatcher(t, plugin, resolver)

	_, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages:          []*schema.Message{schema.UserMessage("rewrite this")},
		Ref:               entity.ModelRef{Provider: "openai", Model: "gpt-4o"},
		Owner:             "org-1",
		UseSmallFastModel: true,
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if plugin.lastModel != "gpt-4o-mini" {
		t.Fatalf("small/fast path used model %q", plugin.lastModel)
	}
}

func TestDispatchSmallFastWithoutResolver(t *testing.T) {
	d := newTestDispatcher(t, &fakePlugin{name: "openai"}, nil)

	_, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages:          []*schema.Message{schema.UserMessage("hi")},
		UseSmallFastModel: true,
	})
	if !errors.Is(err, errno.ErrSmallFastModelUnset) {
		t.Fatalf("expected ErrSmallFastModelUnset, got %v", err)
	}
}

func TestDispatchStream(t *testing.T) {
	plugin := &fakePlugin{name: "openai"}
	d := newTestDispatcher(t, plugin, nil)

	res, err := d.Dispatch(context.Background(), &DispatchRequest{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Stream:   true,
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if res.Stream == nil {
		t.Fatal("expected a stream")
	}
	defer res.Stream.Close()

	msg, err := res.Stream.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if msg.Content != "ok from openai" {
		t.Fatalf("content = %q", msg.Content)
	}
}
