package models

// Terminal identifies one terminal pane in the IDE. Current marks the
// terminal that has focus.
type Terminal struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}
