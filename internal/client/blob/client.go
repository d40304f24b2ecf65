// Package blob is the client side of the blob deletion collaborator.
package blob

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
	"github.com/dmitrijs2005/quotekeeper/internal/netx"
)

// Remover deletes the blob a reference points at.
type Remover interface {
	DeletePDF(ctx context.Context, accessToken, pdfURL string) error
}

// Client calls the blob deletion endpoint over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for the service at baseURL. A nil httpClient
// gets a client with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		url:  strings.TrimRight(baseURL, "/") + blobref.DeletePath,
		http: httpClient,
	}
}

// DeletePDF asks the service to remove the blob behind pdfURL. It fails
// unless the service answers with success=true.
func (c *Client) DeletePDF(ctx context.Context, accessToken, pdfURL string) error {
	var resp blobref.DeleteResponse
	status, err := netx.PostJSON(ctx, c.http, c.url, accessToken, blobref.DeleteRequest{PDFURL: pdfURL}, &resp)
	if err != nil {
		return fmt.Errorf("delete pdf: %w", err)
	}
	if status != http.StatusOK || !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return fmt.Errorf("delete pdf: status %d: %s", status, msg)
	}
	return nil
}
