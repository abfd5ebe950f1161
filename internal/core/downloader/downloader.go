// Package downloader fetches design assets, such as a Wokwi project's
// generated Verilog and its diagram.json, over HTTP.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// UserAgent identifies ttsetup to the design hosting service.
const UserAgent = "ttsetup"

// DownloadFile returns the body of a GET to url. Anything other than
// 200 OK is an error; the caller decides whether that is fatal.
func DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GET request to %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform GET request to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("failed to download from %s: received status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	return body, nil
}
