package storage

import (
	"context"
	"errors"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/httputil"
)

var (
	// ErrNotFound is returned by a [Source] when the requested name does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNetwork marks transport failures of remote sources.
	ErrNetwork = httputil.ErrNetwork
)

// Source reads named files from a storage location.
type Source interface {
	// Read returns the complete content of name. A missing file is reported
	// with an error wrapping ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)
}

// Sink writes named files to a storage location.
type Sink interface {
	// Save persists data under name and returns the name actually written.
	Save(ctx context.Context, name string, data []byte) (string, error)
}

func checkName(name string) error {
	return layouterrors.ValidateFilename(name)
}
