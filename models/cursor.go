package models

// Cursor is the editor cursor position in the current file. Row and Column
// are zero-based.
type Cursor struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}
