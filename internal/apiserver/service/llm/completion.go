package llm

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Complete runs one non-streaming completion and returns the assistant's
// text. It satisfies the CompletionClient interface retrieval tools consume
// for helper calls: useSmallFastModel routes to the organization's
// configured helper model.
func (m *Module) Complete(ctx context.Context, owner string, messages []*schema.Message, useSmallFastModel bool) (string, error) {
	res, err := m.Dispatcher.Dispatch(ctx, &DispatchRequest{
		Messages:          messages,
		Owner:             owner,
		UseSmallFastModel: useSmallFastModel,
	})
	if err != nil {
		return "", err
	}
	return res.Message.Content, nil
}
