package crawl

import (
	"fmt"
)

// ProgressEvent reports progress during a Collect call.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Bytes     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
// It may be called from several goroutines at once.
type ProgressFunc func(event ProgressEvent)

// FormatProgress renders an event as a single status line, or "" for events
// that have nothing to report.
func FormatProgress(event ProgressEvent) string {
	switch event.Type {
	case ProgressStarted:
		return fmt.Sprintf("fetching %d pages", event.Total)
	case ProgressCompleted:
		return fmt.Sprintf("[%d/%d] %s (%s)", event.Completed, event.Total, TruncateURL(event.URL, 60), FormatBytes(event.Bytes))
	case ProgressFailed:
		return fmt.Sprintf("failed %s: %v", TruncateURL(event.URL, 60), event.Error)
	case ProgressFinished:
		return fmt.Sprintf("fetched %d pages", event.Total)
	}
	return ""
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
