package models

import "path/filepath"

// File represents one file in the repository the host exposes to the
// extension. Path is relative to the repository root. Content is only
// populated for the current file, and only when the host inlined it.
type File struct {
	Path     string  `json:"path"`
	RepoPath string  `json:"repo_path"`
	Content  *string `json:"content,omitempty"`
	Open     bool    `json:"open"`
}

// AbsPath returns the file's absolute path under the repository root.
func (f *File) AbsPath() string {
	return filepath.Join(f.RepoPath, f.Path)
}

// HasContent reports whether the host inlined the file's content.
func (f *File) HasContent() bool {
	return f.Content != nil
}
