package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages rendered before the
// browser is relaunched.
const DefaultMaxPages = 75

// browser owns one headless Chrome process and relaunches it after maxPages
// pages, since Chrome memory use grows with every page even when pages are
// closed. browser is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	current  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return b, l, nil
}

func newBrowser(maxPages int) (*browser, error) {
	b, l, err := launch()
	if err != nil {
		return nil, err
	}
	return &browser{current: b, launcher: l, maxPages: maxPages}, nil
}

// acquire returns the browser to render the next page with, counting the
// page toward the relaunch threshold. A failed relaunch keeps the old
// browser.
func (b *browser) acquire() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxPages > 0 && b.pages >= b.maxPages {
		if next, l, err := launch(); err == nil {
			_ = b.current.Close()
			b.launcher.Kill()
			b.current, b.launcher, b.pages = next, l, 0
		}
	}
	b.pages++
	return b.current
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.current != nil {
		err = b.current.Close()
		b.current = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}
