package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/voicenav"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		script, err := deps.Scripts.FindScriptByID(deps.Ctx, c.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, script.Source)
		return nil
	}

	scripts, err := deps.Scripts.FindScripts(deps.Ctx, voicenav.ScriptFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if len(scripts) == 0 {
		fmt.Fprintln(deps.Stdout, "No scripts generated yet. Use 'voicenav generate' or 'voicenav serve' to create one.")
		return nil
	}

	for _, s := range scripts {
		names := make([]string, len(s.Selections))
		for i, sel := range s.Selections {
			names[i] = sel.Name
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d commands  %s  %q\n",
			s.ID, s.CreatedAt.Local().Format(time.DateTime), len(s.Selections), s.Hash, names)
	}
	return nil
}
