// Package jsgen renders the speech-recognition dispatch script for a list of
// selected elements.
//
// The script is assembled from a fixed preamble, one command block per
// selection, and a fixed postamble, rendered in a single text/template pass.
// Every value interpolated into the script goes through the js template
// function, which emits a quoted JavaScript string literal.
package jsgen

import (
	_ "embed"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/voicenav"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	//go:embed preamble.js
	preamble string

	//go:embed postamble.js
	postamble string

	//go:embed commands.tmpl
	commandsText string
)

var scriptTemplate = template.Must(template.New("commands").
	Funcs(template.FuncMap{"js": Quote}).
	Parse(commandsText))

// Preamble returns the fixed script prefix: recognition setup, status
// output, start/stop bindings, and baseline commands.
func Preamble() string { return preamble }

// Postamble returns the fixed script suffix: error reporting and the
// smooth-scroll helper.
func Postamble() string { return postamble }

// Ensure Generator implements voicenav.Generator at compile time.
var _ voicenav.Generator = (*Generator)(nil)

// Generator implements voicenav.Generator.
// Generator is safe for concurrent use.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// command describes one rendered command block.
type command struct {
	Block   string // template name: button, anchor, nav
	Name    string
	Lower   string
	Phrase  string // matched against the lowercase transcript
	ID      string
	Var     string
	Section string
}

// Generate renders the script for selections in order.
func (g *Generator) Generate(selections []voicenav.Selection) (string, error) {
	if len(selections) == 0 {
		return "", voicenav.Errorf(voicenav.ENOSELECTION, "no components selected")
	}

	commands := make([]command, 0, len(selections))
	for _, sel := range selections {
		cmd, err := newCommand(sel)
		if err != nil {
			return "", err
		}
		commands = append(commands, cmd)
	}

	var b strings.Builder
	err := scriptTemplate.ExecuteTemplate(&b, "script", struct {
		Preamble  string
		Commands  []command
		Postamble string
	}{preamble, commands, postamble})
	if err != nil {
		return "", voicenav.Errorf(voicenav.EINTERNAL, "rendering script: %v", err)
	}
	return b.String(), nil
}

func newCommand(sel voicenav.Selection) (command, error) {
	if !sel.Kind.Valid() {
		return command{}, voicenav.Errorf(voicenav.EINVALID, "component %q has unknown tag %q", sel.ID, sel.Kind)
	}
	if err := ValidateName(sel.Name); err != nil {
		return command{}, err
	}

	lower := Lower(sel.Name)
	cmd := command{
		Name:   sel.Name,
		Lower:  lower,
		Phrase: lower,
		ID:     sel.ID,
		Var:    VarName(sel.ID),
	}

	switch sel.Kind {
	case voicenav.KindButton:
		cmd.Block = "button"
	case voicenav.KindAnchor:
		cmd.Block = "anchor"
	case voicenav.KindNavAnchor:
		cmd.Block = "nav"
		cmd.Phrase = "go to " + lower
		cmd.Section = strings.TrimPrefix(sel.Href, "#")
	}
	return cmd, nil
}

// ValidateName returns EUNSAFENAME if name is not valid UTF-8 or contains
// control characters other than tab.
func ValidateName(name string) error {
	if !utf8.ValidString(name) {
		return voicenav.Errorf(voicenav.EUNSAFENAME, "command name is not valid UTF-8")
	}
	for _, r := range name {
		if r != '\t' && unicode.IsControl(r) {
			return voicenav.Errorf(voicenav.EUNSAFENAME, "command name %q contains control character %U", name, r)
		}
	}
	return nil
}

// Lower lowercases s with full Unicode case mapping, matching JavaScript's
// String.prototype.toLowerCase.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
