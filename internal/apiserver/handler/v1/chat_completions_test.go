package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-contrib/sse"
	"github.com/go-playground/validator/v10"

	"github.com/lectern-ai/lectern/internal/apiserver/service/chat"
	orchestrationerrno "github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
	"github.com/lectern-ai/lectern/pkg/errorx"
)

func TestStreamErrorEventCarriesCode(t *testing.T) {
	var buf bytes.Buffer
	if err := sse.Encode(&buf, streamErrorEvent(errors.New("connection reset"))); err != nil {
		t.Fatalf("encode event: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "event:error") && !strings.Contains(out, "event: error") {
		t.Fatalf("missing error event name: %q", out)
	}
	if !strings.Contains(out, fmt.Sprintf("%d", ErrStreamRecv)) {
		t.Fatalf("missing error code: %q", out)
	}
	if !strings.Contains(out, "connection reset") {
		t.Fatalf("missing cause message: %q", out)
	}
}

func TestBindErrorCode(t *testing.T) {
	verr := validator.New().Struct(struct {
		AssistantID string `validate:"required"`
	}{})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	if code := bindErrorCode(verr); code != ErrValidation {
		t.Fatalf("validation failure mapped to %d, want %d", code, ErrValidation)
	}
	if code := bindErrorCode(errors.New("unexpected EOF")); code != ErrBind {
		t.Fatalf("malformed body mapped to %d, want %d", code, ErrBind)
	}
}

func TestWrapCompletionErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus int
	}{
		{
			name:       "missing user message is a client error",
			err:        fmt.Errorf("run completion: %w", chat.ErrNoUserMessage),
			wantCode:   ErrNoUserMessage,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown assistant",
			err:        fmt.Errorf("lookup: %w", orchestrationerrno.ErrAssistantNotFound),
			wantCode:   ErrAssistantNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "anything else is a server fault",
			err:        errors.New("backend exploded"),
			wantCode:   ErrCompletion,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coder := errorx.ParseCoder(wrapCompletionError(tt.err))
			if coder.Code() != tt.wantCode {
				t.Fatalf("code = %d, want %d", coder.Code(), tt.wantCode)
			}
			if coder.HTTPStatus() != tt.wantStatus {
				t.Fatalf("http status = %d, want %d", coder.HTTPStatus(), tt.wantStatus)
			}
		})
	}
}
