package hostsim

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/ExtensionBridge/models"
)

// Fixture is the session state the simulator serves to extensions. It mirrors
// the wire payload minus request_id, which the simulator mints per fetch.
type Fixture struct {
	RepoPath           string                   `yaml:"repo_path"`
	Repo               []string                 `yaml:"repo"`
	OpenedFiles        []string                 `yaml:"opened_files"`
	CurrentFile        *string                  `yaml:"current_file"`
	CurrentFileContent *string                  `yaml:"current_file_content"`
	ContextFiles       map[string][]string      `yaml:"context_files"`
	Cursor             *models.Cursor           `yaml:"cursor"`
	Selection          *string                  `yaml:"selection"`
	ClipBoard          *string                  `yaml:"clip_board"`
	Prompt             *string                  `yaml:"prompt"`
	ChatHistory        []models.Message         `yaml:"chat_history"`
	CurrentTerminal    *string                  `yaml:"current_terminal"`
	Terminals          []string                 `yaml:"terminals"`
	APIKeys            map[string]models.APIKey `yaml:"api_keys"`
	Settings           map[string]interface{}   `yaml:"settings"`
	UIAction           map[string]string        `yaml:"ui_action"`
	CodeApplyChange    map[string]string        `yaml:"code_apply_change"`
}

// LoadFixture reads a session fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// DefaultFixture returns a small in-memory session for running the simulator
// without a fixture file.
func DefaultFixture() *Fixture {
	current := "main.go"
	prompt := "say hello"
	term := "shell-1"
	return &Fixture{
		RepoPath:        "/tmp/demo-repo",
		Repo:            []string{"main.go", "go.mod", "README.md"},
		OpenedFiles:     []string{"main.go"},
		CurrentFile:     &current,
		Prompt:          &prompt,
		CurrentTerminal: &term,
		Terminals:       []string{"shell-1", "shell-2"},
		Settings:        map[string]interface{}{"model": "demo"},
	}
}

// payload renders the fixture as the wire document under the data envelope,
// stamped with a request identifier.
func (f *Fixture) payload(requestID string) map[string]interface{} {
	doc := map[string]interface{}{
		"request_id":       requestID,
		"repo_path":        f.RepoPath,
		"repo":             f.Repo,
		"opened_files":     f.OpenedFiles,
		"current_file":     f.CurrentFile,
		"context_files":    f.ContextFiles,
		"cursor":           f.Cursor,
		"selection":        f.Selection,
		"clip_board":       f.ClipBoard,
		"prompt":           f.Prompt,
		"chat_history":     f.ChatHistory,
		"current_terminal": f.CurrentTerminal,
		"terminals":        f.Terminals,
		"api_keys":         f.APIKeys,
		"settings":         f.Settings,
		"ui_action":        f.UIAction,
	}
	if f.CurrentFileContent != nil {
		doc["current_file_content"] = f.CurrentFileContent
	}
	if f.CodeApplyChange != nil {
		doc["code_apply_change"] = f.CodeApplyChange
	}
	return doc
}
