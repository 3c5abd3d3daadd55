package models

// APIKey is a provider credential configured in the IDE settings, e.g. for
// "openrouter" or "deepinfra".
type APIKey struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}
