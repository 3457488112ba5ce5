package chat

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lectern-ai/lectern/pkg/utils/json"
)

// ChatMessage is a single message in the OpenAI Chat Completions format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for /v1/chat/completions.
type chatRequest struct {
	AssistantID string        `json:"assistant_id"`
	Messages    []ChatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Verbose     bool          `json:"verbose,omitempty"`
}

// chatResponse is the non-streaming response body. Errors arrive as a
// code/message envelope instead.
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      *ChatMessage `json:"message,omitempty"`
		FinishReason string       `json:"finish_reason"`
	} `json:"choices"`
	Sources []struct {
		Source  string  `json:"source"`
		Score   float64 `json:"score"`
		Content string  `json:"content"`
	} `json:"sources,omitempty"`
	Report string `json:"report,omitempty"`
}

type errResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// chatChunk is a single SSE streaming chunk.
type chatChunk struct {
	ID      string `json:"id"`
	Choices []struct {
		Delta *struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"delta,omitempty"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

// ChatResult is the parsed outcome of a completion call.
type ChatResult struct {
	Content string
	Report  string
	Sources []string
}

// StreamHandlers receives streaming events as they arrive. Either field may
// be nil.
type StreamHandlers struct {
	// OnProgress is called for each tool progress line.
	OnProgress func(line string)
	// OnDelta is called for each assistant text delta.
	OnDelta func(delta string)
}

// LecternClient is the HTTP client for the lectern /v1 API.
type LecternClient struct {
	BaseURL     string
	Token       string
	AssistantID string
	HTTPClient  *http.Client
}

// NewLecternClient creates a new client.
func NewLecternClient(baseURL, token, assistantID string, httpClient *http.Client) *LecternClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	return &LecternClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Token:       token,
		AssistantID: assistantID,
		HTTPClient:  httpClient,
	}
}

func (c *LecternClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

// ChatStream sends messages and streams the response, dispatching progress
// lines and text deltas to the handlers. Returns the full assistant reply.
func (c *LecternClient) ChatStream(ctx context.Context, messages []ChatMessage, handlers StreamHandlers) (string, error) {
	body, err := json.Marshal(chatRequest{
		AssistantID: c.AssistantID,
		Messages:    messages,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/chat/completions", body)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var fullContent strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	// Increase buffer for large chunks
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentEvent string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event:") {
			currentEvent = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		if currentEvent == "progress" {
			if handlers.OnProgress != nil {
				handlers.OnProgress(data)
			}
			currentEvent = ""
			continue
		}
		currentEvent = ""

		if data == "[DONE]" {
			break
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta != nil && choice.Delta.Content != "" {
				fullContent.WriteString(choice.Delta.Content)
				if handlers.OnDelta != nil {
					handlers.OnDelta(choice.Delta.Content)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fullContent.String(), fmt.Errorf("read stream: %w", err)
	}

	return fullContent.String(), nil
}

// Chat sends messages and returns the full response (non-streaming). When
// verbose is set the server skips the final model call and returns the
// orchestration report instead.
func (c *LecternClient) Chat(ctx context.Context, messages []ChatMessage, verbose bool) (*ChatResult, error) {
	body, err := json.Marshal(chatRequest{
		AssistantID: c.AssistantID,
		Messages:    messages,
		Verbose:     verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/chat/completions", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("server error: %s", errResp.Message)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	result := &ChatResult{Report: chatResp.Report}
	for _, src := range chatResp.Sources {
		result.Sources = append(result.Sources, src.Source)
	}
	if len(chatResp.Choices) > 0 && chatResp.Choices[0].Message != nil {
		result.Content = chatResp.Choices[0].Message.Content
	}
	if result.Content == "" && result.Report == "" {
		return nil, fmt.Errorf("empty response from server")
	}

	return result, nil
}
