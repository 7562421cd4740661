// Package blob talks to the binary asset store that holds migrated
// trip images. The store itself is external; sync only needs to put
// bytes under a key and learn the durable public URL.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
)

// Store uploads image payloads and exposes their public URLs.
type Store interface {
	// Put stores data under key and returns the blob's public URL.
	Put(ctx context.Context, key string, data []byte) (string, error)

	// IsRemote reports whether url already points into this store, in
	// which case migration passes it through unchanged.
	IsRemote(url string) bool
}

// Client is the HTTP implementation of Store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a blob store client. If httpClient is nil,
// http.DefaultClient is used.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

var _ Store = (*Client)(nil)

// Put uploads data under key. The server responds with the blob's
// public URL; when it omits one, the URL is derived from the base URL
// and key.
func (c *Client) Put(ctx context.Context, key string, data []byte) (string, error) {
	endpoint := c.baseURL + "/" + key

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}

	req.Header.Set("Content-Type", "image/jpeg")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", syncerrors.Wrapf(syncerrors.KindNetwork, "uploading blob %s: %v", key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", syncerrors.Wrapf(syncerrors.KindNetwork, "reading upload response for %s: %v", key, err)
	}

	if resp.StatusCode >= 300 {
		return "", syncerrors.Wrapf(syncerrors.KindStorage, "blob upload %s returned status %d", key, resp.StatusCode)
	}

	if url := gjson.GetBytes(body, "url").String(); url != "" {
		return url, nil
	}

	return endpoint, nil
}

// IsRemote reports whether url is already rooted at this store's
// public domain.
func (c *Client) IsRemote(url string) bool {
	return url != "" && strings.HasPrefix(url, c.baseURL)
}
