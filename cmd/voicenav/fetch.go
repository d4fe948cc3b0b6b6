package main

import (
	"fmt"

	"github.com/fwojciec/voicenav/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	fetcher, err := deps.NewFetcher(c.Render)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	defer fetcher.Close()

	collector := &crawl.Collector{
		Fetcher:     fetcher,
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
		Logger: func(format string, args ...any) {
			deps.Logger.Debug(fmt.Sprintf(format, args...))
		},
	}

	uploads, err := collector.Collect(deps.Ctx, c.URLs, func(event crawl.ProgressEvent) {
		if line := crawl.FormatProgress(event); line != "" && event.Type != crawl.ProgressFailed {
			fmt.Fprintln(deps.Stderr, line)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	return writeResult(deps, uploads, c.JSON, c.Out)
}
