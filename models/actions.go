package models

// Suggestion is one autocomplete candidate offered to the IDE.
type Suggestion struct {
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
}

// Highlight marks an editor region to decorate. Length of zero highlights to
// the end of the line.
type Highlight struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Length int    `json:"length,omitempty"`
	Style  string `json:"style,omitempty"`
}
