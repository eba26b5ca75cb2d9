package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
)

// maxDuplicates bounds the search for a free duplicate name.
const maxDuplicates = 10000

// DirSource reads files from a file system.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource returns a Source reading from the directory dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{fsys: os.DirFS(dir)}
}

// NewFSSource returns a Source reading from fsys.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Read implements [Source].
func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// DirSink writes files into a directory.
type DirSink struct {
	dir    string
	dedupe bool
	mu     sync.Mutex
}

// NewDirSink creates a sink writing into dir, creating the directory if
// needed. When dedupe is true an existing file is never overwritten; the
// next free duplicate name is written instead.
func NewDirSink(dir string, dedupe bool) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &DirSink{dir: dir, dedupe: dedupe}, nil
}

// Dir returns the directory files are written to.
func (s *DirSink) Dir() string { return s.dir }

// Save implements [Sink].
func (s *DirSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := name
	if s.dedupe {
		free, err := s.freeName(name)
		if err != nil {
			return "", err
		}
		target = free
	}

	if err := writeAtomic(filepath.Join(s.dir, target), data); err != nil {
		return "", err
	}
	return target, nil
}

// freeName returns name if it does not exist yet, otherwise the lowest
// duplicate "stem (N)ext" with N >= 2 that does not exist.
func (s *DirSink) freeName(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for v := 1; v <= maxDuplicates; v++ {
		candidate := stem + bundle.SuffixFor(v) + ext
		_, err := os.Stat(filepath.Join(s.dir, candidate))
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free duplicate name for %s after %d attempts", name, maxDuplicates)
}

// writeAtomic writes data with full durability guarantees: the content is
// fsynced to a temp file that is then renamed over path.
func writeAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

var (
	_ Source = (*DirSource)(nil)
	_ Sink   = (*DirSink)(nil)
)
