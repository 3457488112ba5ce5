// Package chat runs the end-to-end completion flow: resolve the assistant,
// orchestrate its tools into final prompt messages, then dispatch to the
// selected LLM backend.
package chat

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/schema"

	llmsvc "github.com/lectern-ai/lectern/internal/apiserver/service/llm"
	llmentity "github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
)

// ErrNoUserMessage reports a request whose messages carry no user-role
// message to orchestrate over. It is a caller error, not a server fault.
var ErrNoUserMessage = errors.New("no user message in request")

// AssistantGetter is the slice of the assistant service this package
// consumes.
type AssistantGetter interface {
	Get(ctx context.Context, id string) (*entity.Assistant, error)
}

// Dispatcher is the slice of the connector layer this package consumes.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *llmsvc.DispatchRequest) (*llmsvc.DispatchResult, error)
}

// CompletionRequest is one inbound chat completion.
type CompletionRequest struct {
	AssistantID string
	Messages    []*schema.Message
	Params      *llmentity.LLMParams
	Stream      bool
	// Verbose returns the orchestration diagnostic report instead of
	// calling the LLM.
	Verbose bool
}

// CompletionResult is the outcome of one completion. In verbose mode only
// Report is set; otherwise Message or Stream is set depending on
// CompletionRequest.Stream.
type CompletionResult struct {
	Assistant *entity.Assistant
	Sources   []entity.Source
	Report    string
	Message   *schema.Message
	Stream    *schema.StreamReader[*schema.Message]
}

// Service is the chat completion application service.
type Service struct {
	assistants   AssistantGetter
	orchestrator *orchestration.Orchestrator
	dispatcher   Dispatcher
}

// NewService creates the chat service.
func NewService(assistants AssistantGetter, orchestrator *orchestration.Orchestrator, dispatcher Dispatcher) *Service {
	return &Service{
		assistants:   assistants,
		orchestrator: orchestrator,
		dispatcher:   dispatcher,
	}
}

// Complete runs one completion. Tool failures degrade inside the
// orchestration result; LLM dispatch failures propagate, since a broken
// completion call has no useful degraded output.
func (s *Service) Complete(ctx context.Context, req *CompletionRequest, callback orchestration.StreamCallback) (*CompletionResult, error) {
	assistant, err := s.assistants.Get(ctx, req.AssistantID)
	if err != nil {
		return nil, err
	}

	userInput := latestUserMessage(req.Messages)
	if userInput == "" {
		return nil, ErrNoUserMessage
	}

	toolReq := &entity.ToolRequest{
		Messages:  req.Messages,
		UserInput: userInput,
		Owner:     assistant.Owner,
	}

	orch, err := s.orchestrator.Orchestrate(ctx, toolReq, assistant, req.Verbose, callback)
	if err != nil {
		return nil, err
	}

	if req.Verbose {
		return &CompletionResult{
			Assistant: assistant,
			Report:    orch.Report,
		}, nil
	}

	dispatch, err := s.dispatcher.Dispatch(ctx, &llmsvc.DispatchRequest{
		Messages: orch.Messages,
		Stream:   req.Stream,
		Ref:      llmentity.ModelRef{Provider: assistant.Provider, Model: assistant.Model},
		Params:   req.Params,
		Owner:    assistant.Owner,
	})
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Assistant: assistant,
		Sources:   orch.Sources,
		Message:   dispatch.Message,
		Stream:    dispatch.Stream,
	}, nil
}

// latestUserMessage returns the content of the last user-role message.
func latestUserMessage(messages []*schema.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == schema.User {
			return messages[i].Content
		}
	}
	return ""
}
