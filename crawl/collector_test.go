package crawl_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/crawl"
	"github.com/fwojciec/voicenav/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Collect(t *testing.T) {
	t.Parallel()

	t.Run("returns uploads in input order", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					// Later URLs finish first.
					if url == "https://example.com/" {
						time.Sleep(20 * time.Millisecond)
					}
					return "<p>" + url + "</p>", nil
				},
			},
			Concurrency: 3,
			RetryDelays: []time.Duration{},
		}

		uploads, err := c.Collect(context.Background(), []string{
			"https://example.com/",
			"https://example.com/about",
			"https://example.com/docs/api.html",
		}, nil)

		require.NoError(t, err)
		require.Len(t, uploads, 3)
		assert.Equal(t, "index.html", uploads[0].Filename)
		assert.Equal(t, "<p>https://example.com/</p>", string(uploads[0].Content))
		assert.Equal(t, "about.html", uploads[1].Filename)
		assert.Equal(t, "docs_api.html", uploads[2].Filename)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var retries []string
		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if calls.Add(1) < 3 {
						return "", errors.New("connection reset")
					}
					return "<button>Go</button>", nil
				},
			},
			RetryDelays: []time.Duration{0, 0, 0},
			Logger: func(format string, args ...any) {
				retries = append(retries, format)
			},
		}

		uploads, err := c.Collect(context.Background(), []string{"https://example.com/a"}, nil)

		require.NoError(t, err)
		require.Len(t, uploads, 1)
		assert.Equal(t, int32(3), calls.Load())
		assert.Len(t, retries, 2)
	})

	t.Run("does not retry application errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					calls.Add(1)
					return "", voicenav.Errorf(voicenav.ENOTFOUND, "HTTP 404 for %s", url)
				},
			},
			RetryDelays: []time.Duration{0, 0, 0},
		}

		_, err := c.Collect(context.Background(), []string{"https://example.com/missing"}, nil)

		require.Error(t, err)
		assert.Equal(t, voicenav.ENOTFOUND, voicenav.ErrorCode(err))
		assert.Contains(t, err.Error(), "https://example.com/missing")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("fails the whole collection when one page fails", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/bad" {
						return "", errors.New("boom")
					}
					return "<p>ok</p>", nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		uploads, err := c.Collect(context.Background(), []string{
			"https://example.com/good",
			"https://example.com/bad",
		}, nil)

		require.Error(t, err)
		assert.Nil(t, uploads)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("rejects non-http URLs before fetching", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					t.Fatal("fetch should not be called")
					return "", nil
				},
			},
		}

		for _, u := range []string{"file:///etc/passwd", "example.com/page", "https://"} {
			_, err := c.Collect(context.Background(), []string{u}, nil)
			require.Error(t, err, u)
			assert.Equal(t, voicenav.EINVALID, voicenav.ErrorCode(err), u)
		}
	})

	t.Run("rejects empty URL list", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Collector{Fetcher: &mock.Fetcher{}}

		_, err := c.Collect(context.Background(), nil, nil)
		require.Error(t, err)
		assert.Equal(t, voicenav.EINVALID, voicenav.ErrorCode(err))
	})

	t.Run("waits on rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<p>ok</p>", nil
				},
			},
			RateLimiter: limiterFunc(func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				domains = append(domains, domain)
				return nil
			}),
			Concurrency: 1,
		}

		_, err := c.Collect(context.Background(), []string{
			"https://a.example.com/x",
			"https://b.example.com:8443/y",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.example.com", "b.example.com"}, domains)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Collector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "12345", nil
				},
			},
			Concurrency: 1,
		}

		var mu sync.Mutex
		var events []crawl.ProgressEvent
		_, err := c.Collect(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
		}, func(e crawl.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, 5, events[1].Bytes)
		assert.Equal(t, crawl.ProgressCompleted, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
	})
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	got := crawl.Filenames([]string{
		"https://example.com",
		"https://example.com/",
		"https://example.com/about/",
		"https://example.com/Contact.HTM",
		"https://example.com/a%20b?q=1",
		"https://other.example.com/about",
	})

	assert.Equal(t, []string{
		"index.html",
		"index-2.html",
		"about.html",
		"Contact.HTM",
		"a-b.html",
		"about-2.html",
	}, got)
}

func TestFilenames_SuffixNeverReusesName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		urls []string
		want []string
	}{
		{
			name: "suffix collides with a later path",
			urls: []string{"https://example.com/a", "https://example.com/a", "https://example.com/a-2"},
			want: []string{"a.html", "a-2.html", "a-2-2.html"},
		},
		{
			name: "suffix skips an earlier path",
			urls: []string{"https://example.com/a-2", "https://example.com/a", "https://example.com/a"},
			want: []string{"a-2.html", "a.html", "a-3.html"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.Filenames(tt.urls)
			assert.Equal(t, tt.want, got)
		})
	}
}

type limiterFunc func(ctx context.Context, domain string) error

func (f limiterFunc) Wait(ctx context.Context, domain string) error { return f(ctx, domain) }
