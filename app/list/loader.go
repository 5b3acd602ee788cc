package list

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Loader reads a line-oriented list from a file path or an HTTP(S) URL.
// It returns raw lines; blank-line and comment handling belongs to the
// consumers in app/match.
type Loader struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewLoader(httpClient *http.Client, userAgent string, timeout time.Duration) *Loader {
	return &Loader{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (l *Loader) Run(ctx context.Context, source string) ([]string, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load list from %s: %w", source, err)
	}

	return splitLines(string(data)), nil
}

// RunFailClosed loads a list and substitutes an empty one on any failure.
// A filtering tool that cannot load its list must hide, not leak, content.
func (l *Loader) RunFailClosed(ctx context.Context, source string) []string {
	lines, err := l.Run(ctx, source)
	if err != nil {
		slog.Error("List load failed, substituting empty list", "source", source, "error", err)
		return nil
	}
	return lines
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func splitLines(data string) []string {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
