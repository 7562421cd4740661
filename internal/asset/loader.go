package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Loader resolves a local image reference to raw bytes.
type Loader interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) ([]byte, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}

// ChainLoader tries a list of loading strategies in order of
// preference and returns the first success. Device image references go
// stale easily (moved files, revoked gallery grants), so a fallback
// chain recovers cases a single strategy would lose.
type ChainLoader struct {
	strategies []Loader
}

// NewChainLoader builds a chain from the given strategies.
func NewChainLoader(strategies ...Loader) *ChainLoader {
	return &ChainLoader{strategies: strategies}
}

// DefaultLoader returns the standard three-strategy chain: fetch over
// HTTP for http(s) references, resolve file:// URIs, then read the
// reference as a plain path.
func DefaultLoader(httpClient *http.Client) *ChainLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return NewChainLoader(
		httpLoader(httpClient),
		LoaderFunc(fileURILoad),
		LoaderFunc(filePathLoad),
	)
}

// Load tries each strategy in order; first success wins.
func (c *ChainLoader) Load(ctx context.Context, ref string) ([]byte, error) {
	var errs []error

	for _, s := range c.strategies {
		data, err := s.Load(ctx, ref)
		if err == nil {
			return data, nil
		}

		errs = append(errs, err)
	}

	return nil, fmt.Errorf("all image loading strategies failed for %q: %w", ref, errors.Join(errs...))
}

func httpLoader(client *http.Client) Loader {
	return LoaderFunc(func(ctx context.Context, ref string) ([]byte, error) {
		if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
			return nil, fmt.Errorf("not an http reference")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("creating image request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching image: status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
}

func fileURILoad(_ context.Context, ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, "file://") {
		return nil, fmt.Errorf("not a file uri")
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parsing file uri: %w", err)
	}

	return os.ReadFile(u.Path)
}

func filePathLoad(_ context.Context, ref string) ([]byte, error) {
	return os.ReadFile(ref)
}
