// Command voicenav extracts interactive elements from HTML pages and
// generates speech-command scripts for them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/fs"
	"github.com/fwojciec/voicenav/goquery"
	vnhttp "github.com/fwojciec/voicenav/http"
	"github.com/fwojciec/voicenav/jsgen"
	"github.com/fwojciec/voicenav/rod"
	vnslog "github.com/fwojciec/voicenav/slog"
	"github.com/fwojciec/voicenav/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path, overridden by --db. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("voicenav"),
		kong.Description("Generate voice navigation scripts for HTML pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"default_db":         m.DBPath,
			"default_selections": fs.DefaultSelectionsFile,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'voicenav --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Extractor = vnslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	deps.Generator = vnslog.NewLoggingGenerator(jsgen.NewGenerator(), deps.Logger)
	deps.NewFetcher = func(render bool) (voicenav.Fetcher, error) {
		var f voicenav.Fetcher
		if render {
			rf, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			f = rf
		} else {
			f = vnhttp.NewFetcher()
		}
		return vnslog.NewLoggingFetcher(f, deps.Logger), nil
	}

	switch cmd {
	case "generate", "serve", "history":
		if dir := filepath.Dir(cli.DB); cli.DB != ":memory:" && dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set VOICENAV_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Scripts = sqlite.NewScriptService(m.DB)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("VOICENAV_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "voicenav.db"
	}
	return filepath.Join(home, ".voicenav", "voicenav.db")
}
