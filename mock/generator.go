package mock

import "github.com/fwojciec/voicenav"

var _ voicenav.Generator = (*Generator)(nil)

// Generator is a mock implementation of voicenav.Generator.
type Generator struct {
	GenerateFn func(selections []voicenav.Selection) (string, error)
}

func (g *Generator) Generate(selections []voicenav.Selection) (string, error) {
	return g.GenerateFn(selections)
}
