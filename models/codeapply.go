package models

import "path/filepath"

// CodeApplyChange is a pending patch the user asked the IDE to apply.
// TargetFilePath is relative to RepoPath; PatchText is the raw patch body.
type CodeApplyChange struct {
	TargetFilePath string `json:"target_file_path"`
	RepoPath       string `json:"repo_path"`
	PatchText      string `json:"patch_text"`
}

// AbsTargetPath returns the absolute path of the file the patch targets.
func (c *CodeApplyChange) AbsTargetPath() string {
	return filepath.Join(c.RepoPath, c.TargetFilePath)
}
