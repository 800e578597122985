// Package tika provides a client for the Apache Tika server used as the
// standard text extractor.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/candidly/candex/extract"
)

const defaultTimeout = 60 * time.Second

// Client is a client for a Tika server.
type Client struct {
	serverURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ extract.StandardExtractor = (*Client)(nil)

// NewClient creates a new Tika client for the given server URL.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default().With("component", "tika"),
	}
}

// ExtractText sends the file to Tika and returns the extracted plain text.
// The MIME type is inferred from the filename extension.
func (c *Client) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.serverURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", detectMimeType(filename))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tika request failed", "filename", filename, "err", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tika returned %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// detectMimeType infers a Content-Type from the filename extension.
func detectMimeType(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "application/octet-stream"
	}
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}
