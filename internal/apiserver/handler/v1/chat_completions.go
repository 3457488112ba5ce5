package v1

import (
	"errors"
	"io"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lectern-ai/lectern/internal/apiserver/service/chat"
	llmentity "github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration"
	orchestrationerrno "github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
	"github.com/lectern-ai/lectern/internal/pkg/core"
	"github.com/lectern-ai/lectern/pkg/errorx"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// ChatCompletionsHandler handles POST /v1/chat/completions.
type ChatCompletionsHandler struct {
	svc *chat.Service
}

// NewChatCompletionsHandler creates a new ChatCompletionsHandler.
func NewChatCompletionsHandler(svc *chat.Service) *ChatCompletionsHandler {
	return &ChatCompletionsHandler{svc: svc}
}

// Handle is the entry point for POST /v1/chat/completions.
func (h *ChatCompletionsHandler) Handle(c *gin.Context) {
	var req ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, bindErrorCode(err), "bind chat completion request"), nil)
		return
	}
	if len(req.Messages) == 0 {
		core.WriteResponse(c, errorx.WithCode(ErrMessagesEmpty, "messages array is required and must not be empty"), nil)
		return
	}

	completionReq := &chat.CompletionRequest{
		AssistantID: req.AssistantID,
		Messages:    toSchemaMessages(req.Messages),
		Stream:      req.Stream && !req.Verbose,
		Verbose:     req.Verbose,
	}
	if req.Temperature != nil || req.TopP != nil || req.MaxTokens > 0 {
		completionReq.Params = &llmentity.LLMParams{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			MaxTokens:   req.MaxTokens,
		}
	}

	completionID := "chatcmpl-" + uuid.New().String()[:8]

	if completionReq.Stream {
		h.handleStream(c, completionReq, completionID)
		return
	}

	res, err := h.svc.Complete(c.Request.Context(), completionReq, nil)
	if err != nil {
		core.WriteResponse(c, wrapCompletionError(err), nil)
		return
	}

	resp := &ChatCompletionResponse{
		ID:      completionID,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   res.Assistant.Model,
		Sources: res.Sources,
		Report:  res.Report,
	}
	if res.Message != nil {
		resp.Choices = []ChatCompletionChoice{
			{
				Message:      ChatMessage{Role: "assistant", Content: res.Message.Content},
				FinishReason: "stop",
			},
		}
	}

	core.WriteResponse(c, nil, resp)
}

// handleStream runs the completion in streaming mode. Tool progress is
// forwarded as "progress" SSE events before the model deltas start.
func (h *ChatCompletionsHandler) handleStream(c *gin.Context, req *chat.CompletionRequest, completionID string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	w := c.Writer
	created := time.Now().Unix()

	progress := func(message string) {
		_ = sse.Encode(w, sse.Event{Event: "progress", Data: message})
		w.Flush()
	}

	res, err := h.svc.Complete(c.Request.Context(), req, orchestration.StreamCallback(progress))
	if err != nil {
		core.WriteResponse(c, wrapCompletionError(err), nil)
		return
	}
	defer res.Stream.Close()

	model := res.Assistant.Model

	// Role chunk first, deltas after.
	writeChunk(w, &ChatCompletionChunk{
		ID:      completionID,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   model,
		Choices: []ChunkChoice{{Delta: ChunkDelta{Role: "assistant"}}},
	})

	finish := "stop"
	for {
		msg, err := res.Stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("[ChatCompletions] stream receive error: %v", err)
			_ = sse.Encode(w, streamErrorEvent(err))
			w.Flush()
			finish = "error"
			break
		}
		if msg.Content == "" {
			continue
		}
		writeChunk(w, &ChatCompletionChunk{
			ID:      completionID,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Choices: []ChunkChoice{{Delta: ChunkDelta{Content: msg.Content}}},
		})
	}

	writeChunk(w, &ChatCompletionChunk{
		ID:      completionID,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   model,
		Choices: []ChunkChoice{{FinishReason: &finish}},
	})
	_ = sse.Encode(w, sse.Event{Data: "[DONE]"})
	w.Flush()
}

// streamErrorEvent builds the terminal SSE event for a mid-stream failure,
// carrying the coded error body the non-streaming path would have returned.
func streamErrorEvent(err error) sse.Event {
	wrapped := errorx.WrapC(err, ErrStreamRecv, "receive completion stream")
	return sse.Event{Event: "error", Data: core.ErrResponse{
		Code:    ErrStreamRecv,
		Message: wrapped.Error(),
	}}
}

func writeChunk(w gin.ResponseWriter, chunk *ChatCompletionChunk) {
	_ = sse.Encode(w, sse.Event{Data: chunk})
	w.Flush()
}

// wrapCompletionError maps service failures onto handler error codes.
func wrapCompletionError(err error) error {
	if errors.Is(err, orchestrationerrno.ErrAssistantNotFound) {
		return errorx.WrapC(err, ErrAssistantNotFound, "resolve assistant")
	}
	if errors.Is(err, chat.ErrNoUserMessage) {
		return errorx.WrapC(err, ErrNoUserMessage, "validate messages")
	}
	return errorx.WrapC(err, ErrCompletion, "run completion")
}
