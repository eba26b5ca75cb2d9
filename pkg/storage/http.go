package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/httputil"
)

// HTTPSource reads files below a base URL.
type HTTPSource struct {
	client *httputil.Client
	base   *url.URL
}

// NewHTTPSource returns a Source that GETs {base}/{name}. A nil client
// uses [httputil.NewClient] defaults.
func NewHTTPSource(base string, client *httputil.Client) (*HTTPSource, error) {
	if err := layouterrors.ValidateURL(base); err != nil {
		return nil, err
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, layouterrors.Wrap(layouterrors.ErrCodeInvalidInput, err, "parse base URL %q", base)
	}
	if client == nil {
		client = httputil.NewClient(nil)
	}
	return &HTTPSource{client: client, base: u}, nil
}

// URL returns the address name is fetched from.
func (s *HTTPSource) URL(name string) string {
	return s.base.JoinPath(url.PathEscape(name)).String()
}

// Read implements [Source].
func (s *HTTPSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := s.client.GetBytes(ctx, s.URL(name))
	if errors.Is(err, httputil.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return data, nil
}

var _ Source = (*HTTPSource)(nil)
