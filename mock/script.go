package mock

import (
	"context"

	"github.com/fwojciec/voicenav"
)

// Compile-time interface verification.
var (
	_ voicenav.ScriptService   = (*ScriptService)(nil)
	_ voicenav.SelectionWriter = (*SelectionWriter)(nil)
)

// ScriptService is a mock implementation of voicenav.ScriptService.
type ScriptService struct {
	CreateScriptFn   func(ctx context.Context, script *voicenav.Script) error
	FindScriptByIDFn func(ctx context.Context, id string) (*voicenav.Script, error)
	FindScriptsFn    func(ctx context.Context, filter voicenav.ScriptFilter) ([]*voicenav.Script, error)
}

func (s *ScriptService) CreateScript(ctx context.Context, script *voicenav.Script) error {
	return s.CreateScriptFn(ctx, script)
}

func (s *ScriptService) FindScriptByID(ctx context.Context, id string) (*voicenav.Script, error) {
	return s.FindScriptByIDFn(ctx, id)
}

func (s *ScriptService) FindScripts(ctx context.Context, filter voicenav.ScriptFilter) ([]*voicenav.Script, error) {
	return s.FindScriptsFn(ctx, filter)
}

// SelectionWriter is a mock implementation of voicenav.SelectionWriter.
type SelectionWriter struct {
	SaveSelectionsFn func(ctx context.Context, selections []voicenav.Selection) error
}

func (w *SelectionWriter) SaveSelections(ctx context.Context, selections []voicenav.Selection) error {
	return w.SaveSelectionsFn(ctx, selections)
}
