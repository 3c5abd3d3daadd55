package bridge

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExtensionBridge/models"
)

// dispatch posts one command document to the host. Every command carries the
// method name and the session's request identifier; args must not contain
// either key.
func (s *Session) dispatch(ctx context.Context, method string, args map[string]interface{}) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}

	doc := make(map[string]interface{}, len(args)+2)
	for k, v := range args {
		doc[k] = v
	}
	doc["method"] = method
	doc["request_id"] = s.requestID

	body, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("bridge: encode %s command: %w", method, err)
	}

	path := fmt.Sprintf(responsePath, s.bridge.uuid)
	resp, err := s.bridge.client.PostJSON(ctx, path, body)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return &TransportError{Op: method, URL: s.bridge.client.BaseURL() + path, StatusCode: status, Err: err}
	}

	s.bridge.logger.Debug("command dispatched",
		zap.String("method", method),
		zap.String("request_id", s.requestID),
	)
	return nil
}

// Chat appends a chat message in the IDE.
func (s *Session) Chat(ctx context.Context, content string) error {
	return s.dispatch(ctx, "chat", map[string]interface{}{"content": content})
}

// StartChat begins a new chat session in the IDE.
func (s *Session) StartChat(ctx context.Context) error {
	return s.dispatch(ctx, "start_chat", nil)
}

// EndChat ends the current chat session in the IDE.
func (s *Session) EndChat(ctx context.Context) error {
	return s.dispatch(ctx, "end_chat", nil)
}

// Autocomplete offers completion candidates to the IDE.
func (s *Session) Autocomplete(ctx context.Context, suggestions []models.Suggestion) error {
	return s.dispatch(ctx, "autocomplete", map[string]interface{}{"suggestions": suggestions})
}

// UpdateFile patches the current file. patch holds the replacement lines and
// matches the line ranges they apply to.
func (s *Session) UpdateFile(ctx context.Context, patch []string, matches [][]int) error {
	return s.dispatch(ctx, "update_file", map[string]interface{}{
		"patch":   patch,
		"matches": matches,
	})
}

// Highlight decorates editor regions.
func (s *Session) Highlight(ctx context.Context, results []models.Highlight) error {
	return s.dispatch(ctx, "highlight", map[string]interface{}{"results": results})
}

// InlineCompletion inserts completion text at the cursor. Row and column
// override the cursor position when non-nil.
func (s *Session) InlineCompletion(ctx context.Context, text string, cursorRow, cursorColumn *int) error {
	return s.dispatch(ctx, "inline_completion", map[string]interface{}{
		"content":       text,
		"cursor_row":    cursorRow,
		"cursor_column": cursorColumn,
	})
}

// Log writes a message to the IDE's extension console.
func (s *Session) Log(ctx context.Context, message string) error {
	return s.dispatch(ctx, "log", map[string]interface{}{"content": message})
}

// UIForm displays an HTML form in the IDE tools panel.
func (s *Session) UIForm(ctx context.Context, title, formContent string) error {
	return s.dispatch(ctx, "ui_form", map[string]interface{}{
		"title":        title,
		"form_content": formContent,
	})
}
