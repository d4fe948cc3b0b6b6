package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/voicenav"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor voicenav.Extractor
	Generator voicenav.Generator
	Scripts   voicenav.ScriptService

	// NewFetcher returns a page fetcher; render selects headless Chrome.
	NewFetcher func(render bool) (voicenav.Fetcher, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log operations to stderr"`
	DB      string `name:"db" env:"VOICENAV_DB" default:"${default_db}" help:"SQLite database for generation history"`

	Extract  ExtractCmd  `cmd:"" help:"List buttons and links in local HTML files"`
	Fetch    FetchCmd    `cmd:"" help:"List buttons and links in remote pages"`
	Generate GenerateCmd `cmd:"" help:"Generate a voice command script from a catalog"`
	Serve    ServeCmd    `cmd:"" help:"Run the upload and selection web UI"`
	History  HistoryCmd  `cmd:"" help:"List recorded generation runs"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files []string `arg:"" help:"HTML files to scan"`
	JSON  bool     `help:"Print the catalog as JSON"`
	Out   string   `short:"o" type:"path" help:"Write annotated pages and catalog.json to this directory"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs to fetch"`
	Render      bool     `short:"r" help:"Render pages in headless Chrome before scanning"`
	JSON        bool     `help:"Print the catalog as JSON"`
	Out         string   `short:"o" type:"path" help:"Write annotated pages and catalog.json to this directory"`
	Concurrency int      `short:"c" default:"4" env:"VOICENAV_CONCURRENCY" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per host (0 disables limiting)"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Catalog string   `arg:"" type:"existingfile" help:"catalog.json written by extract --out"`
	Select  []string `short:"s" sep:"none" placeholder:"ID=NAME" help:"Element to include with its command name (repeatable)"`
	All     bool     `help:"Include every element, named by its text"`
	Out     string   `short:"o" type:"path" help:"Write voicenav.js to this directory instead of stdout"`
	Save    string   `type:"path" help:"Also write the selections as JSON to this file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr           string `default:":8080" env:"VOICENAV_ADDR" help:"Listen address"`
	SelectionsFile string `default:"${default_selections}" env:"VOICENAV_SELECTIONS_FILE" type:"path" help:"File the latest selections are written to"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID    string `arg:"" optional:"" help:"Print the script of this run"`
	Limit int    `short:"n" default:"20" help:"Number of runs to list"`
}

// errorMessage returns the user-facing message of err. Internal errors carry
// no application message, so their text is shown as is.
func errorMessage(err error) string {
	if voicenav.ErrorCode(err) == voicenav.EINTERNAL {
		return err.Error()
	}
	return voicenav.ErrorMessage(err)
}
