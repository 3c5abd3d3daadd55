package models

// Message is one entry in the chat conversation between the user and the
// extension.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
