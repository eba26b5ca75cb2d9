package storage

import (
	"strings"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/httputil"
)

// IsURL reports whether location names an http or https resource.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open returns a Source for location: an [HTTPSource] for http(s) URLs and
// a [DirSource] for everything else. client is only used for URLs.
func Open(location string, client *httputil.Client) (Source, error) {
	if location == "" {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "storage location cannot be empty")
	}
	if IsURL(location) {
		src, err := NewHTTPSource(location, client)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return NewDirSource(location), nil
}
