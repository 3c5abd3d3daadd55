package bridge

import (
	"sync"

	"github.com/GriffinCanCode/ExtensionBridge/models"
)

// Session is a read-only snapshot of editor state established by Bridge.Load.
// Accessors never touch the network; actions post commands to the host tagged
// with the request identifier captured at load time.
type Session struct {
	bridge *Bridge

	requestID       string
	repoPath        string
	selection       *string
	clipBoard       *string
	prompt          *string
	chatHistory     []models.Message
	currentTerminal *string
	terminals       []string
	apiKeys         map[string]models.APIKey
	settings        map[string]interface{}
	uiAction        map[string]string
	codeApplyChange *codeApplyPayload
	repoFiles       []models.File
	currentFile     *models.File
	contextFiles    map[string][]models.File
	cursor          *models.Cursor

	mu     sync.Mutex
	closed bool
}

func newSession(b *Bridge, data *sessionData) *Session {
	return &Session{
		bridge:          b,
		requestID:       data.RequestID,
		repoPath:        data.RepoPath,
		selection:       data.Selection,
		clipBoard:       data.ClipBoard,
		prompt:          data.Prompt,
		chatHistory:     data.ChatHistory,
		currentTerminal: data.CurrentTerminal,
		terminals:       data.Terminals,
		apiKeys:         data.APIKeys,
		settings:        data.Settings,
		uiAction:        data.UIAction,
		codeApplyChange: data.CodeApplyChange,
		repoFiles:       data.repoFiles(),
		currentFile:     data.currentFile(),
		contextFiles:    data.contextFiles(),
		cursor:          data.Cursor,
	}
}

// Close releases the session. Idempotent; actions on a closed session fail
// with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// RequestID returns the identifier correlating this session's fetch with its
// outbound actions.
func (s *Session) RequestID() string {
	return s.requestID
}

// RepoFiles returns all files in the repository, open tabs marked.
func (s *Session) RepoFiles() []models.File {
	return s.repoFiles
}

// RepoPath returns the absolute path of the repository root.
func (s *Session) RepoPath() string {
	return s.repoPath
}

// CurrentFile returns the active editor tab, or nil when no file is active.
func (s *Session) CurrentFile() *models.File {
	return s.currentFile
}

// Selection returns the selected text, or nil when nothing is selected.
func (s *Session) Selection() *string {
	return s.selection
}

// Clipboard returns the clipboard contents, or nil when empty.
func (s *Session) Clipboard() *string {
	return s.clipBoard
}

// Cursor returns the cursor position, or nil when unknown.
func (s *Session) Cursor() *models.Cursor {
	return s.cursor
}

// ChatHistory returns the chat conversation in order.
func (s *Session) ChatHistory() []models.Message {
	return s.chatHistory
}

// CurrentTerminal returns the focused terminal, or nil when none is active.
func (s *Session) CurrentTerminal() *models.Terminal {
	if s.currentTerminal == nil {
		return nil
	}
	return &models.Terminal{Name: *s.currentTerminal, Current: true}
}

// Terminals returns every terminal, flagging the one that has focus.
func (s *Session) Terminals() []models.Terminal {
	res := make([]models.Terminal, 0, len(s.terminals))
	for _, name := range s.terminals {
		current := s.currentTerminal != nil && name == *s.currentTerminal
		res = append(res, models.Terminal{Name: name, Current: current})
	}
	return res
}

// CodeApplyChange returns the pending patch combined with the repository
// root, or nil when no patch is pending.
func (s *Session) CodeApplyChange() *models.CodeApplyChange {
	if s.codeApplyChange == nil {
		return nil
	}
	return &models.CodeApplyChange{
		TargetFilePath: s.codeApplyChange.TargetFilePath,
		RepoPath:       s.repoPath,
		PatchText:      s.codeApplyChange.PatchText,
	}
}

// ContextFiles returns the named context groups the user attached.
func (s *Session) ContextFiles() map[string][]models.File {
	return s.contextFiles
}

// Prompt returns the chat input text, or nil when none was entered.
func (s *Session) Prompt() *string {
	return s.prompt
}

// APIKey returns the credential for a provider, or nil when the provider is
// not configured.
func (s *Session) APIKey(provider string) *models.APIKey {
	rec, ok := s.apiKeys[provider]
	if !ok {
		return nil
	}
	return &rec
}

// APIKeys returns every configured credential.
func (s *Session) APIKeys() []models.APIKey {
	res := make([]models.APIKey, 0, len(s.apiKeys))
	for _, rec := range s.apiKeys {
		res = append(res, rec)
	}
	return res
}

// Setting returns a setting value, or nil for unknown names.
func (s *Session) Setting(name string) interface{} {
	return s.settings[name]
}

// UIAction returns the UI action being performed, or nil when none.
func (s *Session) UIAction() map[string]string {
	return s.uiAction
}
