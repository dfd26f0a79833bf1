// Copyright (c) 2024 Neomantra Corp
//
// Fetch opens a remote ITCH capture over HTTP(S), retrying transient
// failures. Adapted from the teacher's retryablehttp usage in
// internal/tui/downloads.go (itself adapted from hist.go's plain
// net/http GET), with Databento's Basic-auth header removed since
// public ITCH sample files require no authentication.

package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// FetchOptions configures a remote fetch.
type FetchOptions struct {
	RetryMax int          // defaults to 4 if zero
	Logger   *slog.Logger // retryablehttp's own retry/backoff logging; nil discards it
}

// Fetch issues a GET against url and returns the response body as an
// io.ReadCloser the caller must close. Any status other than 200 OK is
// a fatal error: there is no partial-capture recovery path once the transfer
// itself succeeds.
func Fetch(ctx context.Context, url string, opts FetchOptions) (io.ReadCloser, error) {
	retryMax := opts.RetryMax
	if retryMax == 0 {
		retryMax = 4
	}

	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	if opts.Logger != nil {
		client.Logger = slogAdapter{opts.Logger}
	} else {
		client.Logger = nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("itch: fetch %s: HTTP %s: %s", url, resp.Status, string(body))
	}
	return resp.Body, nil
}

// slogAdapter satisfies retryablehttp.LeveledLogger over a *slog.Logger.
type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Error(msg string, kv ...any) { a.l.Error(msg, kv...) }
func (a slogAdapter) Info(msg string, kv ...any)  { a.l.Info(msg, kv...) }
func (a slogAdapter) Debug(msg string, kv ...any) { a.l.Debug(msg, kv...) }
func (a slogAdapter) Warn(msg string, kv ...any)  { a.l.Warn(msg, kv...) }
