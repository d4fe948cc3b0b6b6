package main

import (
	"fmt"

	"github.com/fwojciec/voicenav/fs"
	vnhttp "github.com/fwojciec/voicenav/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := vnhttp.NewServer()
	server.Addr = c.Addr
	server.Logger = deps.Logger
	server.Extractor = deps.Extractor
	server.Generator = deps.Generator
	server.Sessions = vnhttp.NewMemorySessionStore()
	selections := fs.NewSelectionFile(c.SelectionsFile)
	server.Selections = selections
	server.Scripts = deps.Scripts

	if err := server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())
	fmt.Fprintf(deps.Stdout, "Selections are written to %s\n", selections.Path())

	<-deps.Ctx.Done()

	return server.Close()
}
