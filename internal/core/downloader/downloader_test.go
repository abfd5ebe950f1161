// Package downloader_test contains tests for the downloader package.
package downloader_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/tt-setup/internal/core/downloader"
)

func TestDownloadFile_Success(t *testing.T) {
	t.Parallel()
	const verilog = "module user_module_42(input [7:0] io_in, output [7:0] io_out);\nendmodule\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, downloader.UserAgent, r.Header.Get("User-Agent"))
		_, err := w.Write([]byte(verilog))
		require.NoError(t, err, "Failed to write response in mock server")
	}))
	defer server.Close()

	content, err := downloader.DownloadFile(context.Background(), server.URL+"/api/projects/42/verilog")
	require.NoError(t, err)
	assert.Equal(t, verilog, string(content))
}

func TestDownloadFile_NonOKStatus(t *testing.T) {
	t.Parallel()
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent} {
		code := code
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))
			defer server.Close()

			_, err := downloader.DownloadFile(context.Background(), server.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to download from")
			assert.Contains(t, err.Error(), fmt.Sprintf("received status code %d", code))
		})
	}
}

func TestDownloadFile_UnreachableHost(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // nothing listens on this address any more

	_, err := downloader.DownloadFile(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to perform GET request to %s", url))
}

func TestDownloadFile_MalformedURL(t *testing.T) {
	t.Parallel()
	_, err := downloader.DownloadFile(context.Background(), "http://[::1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build GET request")
}

func TestDownloadFile_CancelledContext(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unused"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := downloader.DownloadFile(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadFile_TruncatedBody(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("webserver doesn't support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("failed to hijack connection: %v", err)
			return
		}
		// Promise more bytes than are sent, then drop the connection.
		_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\nmodule"))
		_ = conn.Close()
	}))
	defer server.Close()

	_, err := downloader.DownloadFile(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to read response body from %s", server.URL))
}
