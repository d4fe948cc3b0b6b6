// Package crawl fetches remote pages concurrently so they can be extracted
// like uploaded files.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/voicenav"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once.
const DefaultConcurrency = 4

// Collector fetches a list of pages and turns them into uploads.
type Collector struct {
	Fetcher     voicenav.Fetcher
	RateLimiter voicenav.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Collect fetches every URL and returns one upload per URL in input order.
// The first URL that cannot be fetched after retries cancels the remaining
// fetches and its error is returned.
func (c *Collector) Collect(ctx context.Context, urls []string, progress ProgressFunc) ([]voicenav.Upload, error) {
	if len(urls) == 0 {
		return nil, voicenav.Errorf(voicenav.EINVALID, "no URLs given")
	}

	hosts := make([]string, len(urls))
	for i, raw := range urls {
		u, err := parseURL(raw)
		if err != nil {
			return nil, err
		}
		hosts[i] = u.Hostname()
	}
	filenames := Filenames(urls)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	total := len(urls)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	uploads := make([]voicenav.Upload, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			html, err := FetchWithRetryDelays(gctx, u, c.fetch(hosts[i]), c.Logger, delays)
			if err != nil {
				notify(progress, ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       u,
					Error:     err,
				})
				return fmt.Errorf("fetch %s: %w", u, err)
			}

			uploads[i] = voicenav.Upload{Filename: filenames[i], Content: []byte(html)}
			notify(progress, ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       u,
				Bytes:     len(html),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return uploads, nil
}

func (c *Collector) fetch(host string) FetchFunc {
	return func(ctx context.Context, u string) (string, error) {
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return c.Fetcher.Fetch(ctx, u)
	}
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, voicenav.Errorf(voicenav.EINVALID, "invalid page URL %q: only http and https URLs are supported", raw)
	}
	return u, nil
}

// Filenames derives a distinct .html upload file name for each URL from its
// path. Path segments are joined with underscores, the root path becomes
// index.html, and a name already handed out gets the first free numeric
// suffix.
func Filenames(urls []string) []string {
	names := make([]string, len(urls))
	used := make(map[string]bool, len(urls))
	for i, raw := range urls {
		name := filename(raw)
		if used[name] {
			ext := path.Ext(name)
			base := strings.TrimSuffix(name, ext)
			for n := 2; used[name]; n++ {
				name = base + "-" + strconv.Itoa(n) + ext
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func filename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "index.html"
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return "index.html"
	}

	var b strings.Builder
	for _, r := range p {
		switch {
		case r == '/':
			b.WriteByte('_')
		case r == '.' || r == '-' || r == '_',
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	name := b.String()

	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		return name
	}
	return name + ".html"
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
