package voicenav

import (
	"context"
	"time"
)

// Script is one recorded generation run.
type Script struct {
	ID         string      `json:"id"`
	Selections []Selection `json:"selections"`
	Source     string      `json:"source"`
	Hash       string      `json:"hash"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Validate returns an error if the script contains invalid fields.
func (s *Script) Validate() error {
	if len(s.Selections) == 0 {
		return Errorf(ENOSELECTION, "script selections required")
	}
	if s.Source == "" {
		return Errorf(EINVALID, "script source required")
	}
	return nil
}

// ScriptService represents a service for recording generated scripts.
type ScriptService interface {
	// CreateScript records a script, assigning its ID and CreatedAt.
	CreateScript(ctx context.Context, script *Script) error

	// FindScriptByID retrieves a script by ID.
	// Returns ENOTFOUND if the script does not exist.
	FindScriptByID(ctx context.Context, id string) (*Script, error)

	// FindScripts retrieves scripts matching the filter, newest first.
	FindScripts(ctx context.Context, filter ScriptFilter) ([]*Script, error)
}

// ScriptFilter represents a filter for FindScripts.
type ScriptFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
