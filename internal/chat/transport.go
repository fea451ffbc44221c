package chat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PhotoSource fetches photo content from the chat transport by file
// handle. The orchestrator streams fetched photos into blob storage;
// it never retains transport-specific state.
type PhotoSource interface {
	Fetch(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// HTTPPhotoSource resolves file handles against the transport adapter's
// file endpoint: GET <base>/<fileID>.
type HTTPPhotoSource struct {
	base   string
	client *http.Client
}

// NewHTTPPhotoSource creates an HTTPPhotoSource rooted at base.
func NewHTTPPhotoSource(base string) *HTTPPhotoSource {
	return &HTTPPhotoSource{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPPhotoSource) Fetch(ctx context.Context, fileID string) (io.ReadCloser, error) {
	endpoint := s.base + "/" + url.PathEscape(fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build photo request: %w", err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", endpoint, res.StatusCode)
	}

	return res.Body, nil
}
