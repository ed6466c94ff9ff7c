// Package urlcheck probes URLs for availability, tracks their status across
// runs, and notifies a webhook when a URL comes back to life.
package urlcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwong94/goutils/internal/logging"
)

// StatusUnreachable is recorded when a URL cannot be reached at all.
const StatusUnreachable = -1

// Options configures a check run.
type Options struct {
	Timeout      time.Duration
	Notify       bool
	AlwaysNotify bool
	WebhookURL   string
}

// Change classifies what happened to a URL between two checks.
type Change string

const (
	ChangeNew          Change = "new"
	ChangeNowAvailable Change = "now available"
	ChangeChanged      Change = "changed"
	ChangeNone         Change = "no change"
)

// Outcome is the per-URL result of a check run.
type Outcome struct {
	URL      string `json:"url"`
	Previous int    `json:"previous,omitempty"`
	Known    bool   `json:"known"`
	Current  int    `json:"current"`
	Detail   string `json:"detail,omitempty"`
	Change   Change `json:"change"`
	Notified bool   `json:"notified,omitempty"`
}

// Normalize prefixes scheme-less entries with https://.
func Normalize(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			u = "https://" + u
		}
		out = append(out, u)
	}
	return out
}

// ReadURLFile loads one URL per line, skipping blanks.
func ReadURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

// CheckAll probes every URL sequentially and returns the outcomes plus the
// next state. Notifications are sent when a URL transitions to 200, or for
// every 200 when AlwaysNotify is set.
func CheckAll(ctx context.Context, client *http.Client, urls []string, prev State, opts Options) ([]Outcome, State) {
	logger := logging.Component("urlcheck")
	next := State{Entries: make(map[string]int, len(urls))}

	outcomes := make([]Outcome, 0, len(urls))
	for _, url := range urls {
		status, detail := checkOne(ctx, client, url, opts.Timeout)

		previous, known := prev.Entries[url]
		next.Entries[url] = status

		outcome := Outcome{
			URL:      url,
			Previous: previous,
			Known:    known,
			Current:  status,
			Detail:   detail,
		}

		shouldNotify := false
		switch {
		case !known:
			outcome.Change = ChangeNew
		case previous != http.StatusOK && status == http.StatusOK:
			outcome.Change = ChangeNowAvailable
			shouldNotify = true
		case previous != status:
			outcome.Change = ChangeChanged
		default:
			outcome.Change = ChangeNone
		}
		if opts.AlwaysNotify && status == http.StatusOK {
			shouldNotify = true
		}

		if shouldNotify && opts.Notify && opts.WebhookURL != "" {
			if err := notify(ctx, client, opts.WebhookURL, url, previous, status); err != nil {
				logger.Warn().Str("url", url).Err(err).Msg("notification failed")
			} else {
				outcome.Notified = true
			}
		}

		logger.Info().
			Str("url", url).
			Int("previous", previous).
			Int("current", status).
			Str("change", string(outcome.Change)).
			Msg("url checked")
		outcomes = append(outcomes, outcome)
	}

	return outcomes, next
}

func checkOne(ctx context.Context, client *http.Client, url string, timeout time.Duration) (int, string) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return StatusUnreachable, err.Error()
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return StatusUnreachable, "timeout"
		}
		return StatusUnreachable, "connection error"
	}
	defer resp.Body.Close()

	return resp.StatusCode, "OK"
}

// notify POSTs a small JSON payload to the configured webhook.
func notify(ctx context.Context, client *http.Client, webhook, url string, previous, current int) error {
	payload, err := json.Marshal(map[string]any{
		"title":    "URL now available",
		"body":     fmt.Sprintf("%s is returning %d (previously %d)", url, current, previous),
		"url":      url,
		"previous": previous,
		"current":  current,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
