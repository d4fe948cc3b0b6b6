package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/fs"
	"github.com/fwojciec/voicenav/jsgen"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	if err := c.run(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	return nil
}

func (c *GenerateCmd) run(deps *Dependencies) error {
	if c.All && len(c.Select) > 0 {
		return voicenav.Errorf(voicenav.EINVALID, "--all and --select cannot be combined")
	}

	catalog, err := fs.ReadCatalog(c.Catalog)
	if err != nil {
		return err
	}

	ids, names := c.selected(catalog)
	selections, err := voicenav.BuildSelections(catalog, ids, names)
	if err != nil {
		return err
	}

	source, err := deps.Generator.Generate(selections)
	if err != nil {
		return err
	}

	if c.Save != "" {
		if err := fs.NewSelectionFile(c.Save).SaveSelections(deps.Ctx, selections); err != nil {
			return fmt.Errorf("save selections: %w", err)
		}
	}

	script := &voicenav.Script{Selections: selections, Source: source}
	if deps.Scripts != nil {
		if err := deps.Scripts.CreateScript(deps.Ctx, script); err != nil {
			return fmt.Errorf("record script: %w", err)
		}
	}

	if c.Out == "" {
		_, err := fmt.Fprint(deps.Stdout, source)
		return err
	}
	store := fs.NewOutputStore(filepath.Dir(c.Out), filepath.Base(c.Out))
	if err := store.SaveScript(deps.Ctx, source); err != nil {
		_ = store.Abort()
		return err
	}
	if err := store.Commit(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d commands to %s\n", len(selections), filepath.Join(store.Dir(), fs.ScriptFile))
	if script.ID != "" {
		fmt.Fprintf(deps.Stdout, "Recorded run %s\n", script.ID)
	}
	return nil
}

// selected returns the element ids to include in order, with the names given
// for them. An --select entry without "=" keeps the default name.
func (c *GenerateCmd) selected(catalog *voicenav.Catalog) ([]string, map[string]string) {
	names := make(map[string]string)
	var ids []string

	if c.All {
		for _, el := range catalog.All() {
			ids = append(ids, el.ID)
			if text := strings.Join(strings.Fields(el.Text), " "); text != "" {
				names[el.ID] = jsgen.Lower(text)
			}
		}
		return ids, names
	}

	for _, s := range c.Select {
		id, name, ok := strings.Cut(s, "=")
		id = strings.TrimSpace(id)
		ids = append(ids, id)
		if ok {
			names[id] = strings.TrimSpace(name)
		}
	}
	return ids, names
}
