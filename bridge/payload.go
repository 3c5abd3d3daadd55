package bridge

import (
	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/ExtensionBridge/models"
)

// envelope is the host response wrapping the session payload.
type envelope struct {
	Data *sessionData `json:"data"`
}

// sessionData is the typed session payload schema. Optional fields are
// pointers or collections; anything the host omits decodes to nil.
type sessionData struct {
	RequestID          string                       `json:"request_id"`
	RepoPath           string                       `json:"repo_path"`
	Repo               []string                     `json:"repo"`
	OpenedFiles        []string                     `json:"opened_files"`
	CurrentFile        *string                      `json:"current_file"`
	CurrentFileContent *string                      `json:"current_file_content"`
	ContextFiles       map[string][]string          `json:"context_files"`
	Cursor             *models.Cursor               `json:"cursor"`
	Selection          *string                      `json:"selection"`
	ClipBoard          *string                      `json:"clip_board"`
	Prompt             *string                      `json:"prompt"`
	ChatHistory        []models.Message             `json:"chat_history"`
	CurrentTerminal    *string                      `json:"current_terminal"`
	Terminals          []string                     `json:"terminals"`
	APIKeys            map[string]models.APIKey     `json:"api_keys"`
	Settings           map[string]interface{}       `json:"settings"`
	UIAction           map[string]string            `json:"ui_action"`
	CodeApplyChange    *codeApplyPayload            `json:"code_apply_change"`
}

// codeApplyPayload is the wire shape of a pending patch; the repository root
// is joined in at accessor time.
type codeApplyPayload struct {
	TargetFilePath string `json:"target_file_path"`
	PatchText      string `json:"patch_text"`
}

// decodeSession decodes a host response body into the session payload.
func decodeSession(body []byte) (*sessionData, error) {
	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if env.Data == nil {
		return nil, &DecodeError{Reason: "missing data field"}
	}
	return env.Data, nil
}

// repoFiles builds one File record per repository path, marking the ones the
// user has open in editor tabs.
func (d *sessionData) repoFiles() []models.File {
	opened := make(map[string]struct{}, len(d.OpenedFiles))
	for _, p := range d.OpenedFiles {
		opened[p] = struct{}{}
	}

	files := make([]models.File, 0, len(d.Repo))
	for _, p := range d.Repo {
		_, isOpen := opened[p]
		files = append(files, models.File{
			Path:     p,
			RepoPath: d.RepoPath,
			Open:     isOpen,
		})
	}
	return files
}

// currentFile builds the active-tab File record, or nil when no tab is open.
// The current file is always open and may carry inline content.
func (d *sessionData) currentFile() *models.File {
	if d.CurrentFile == nil {
		return nil
	}
	return &models.File{
		Path:     *d.CurrentFile,
		RepoPath: d.RepoPath,
		Content:  d.CurrentFileContent,
		Open:     true,
	}
}

// contextFiles maps each named context group's paths into File records.
func (d *sessionData) contextFiles() map[string][]models.File {
	groups := make(map[string][]models.File, len(d.ContextFiles))
	for name, paths := range d.ContextFiles {
		files := make([]models.File, 0, len(paths))
		for _, p := range paths {
			files = append(files, models.File{Path: p, RepoPath: d.RepoPath})
		}
		groups[name] = files
	}
	return groups
}
