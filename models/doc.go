// Package models defines the value objects exchanged between an extension
// and its host IDE: repository files, chat messages, terminals, cursor
// positions, API key records, and pending code-apply changes.
//
// All types are plain data carriers with JSON tags matching the host wire
// format. They hold no behavior beyond path resolution helpers.
package models
