package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// DefaultFileName is the storage key when the substrate is a directory-backed file.
const DefaultFileName = "reels.json"

// FileSubstrate keeps the collection in one JSON file.
// Writes are atomic and durable: temp file, fsync, rename.
type FileSubstrate struct {
	path string
}

// NewFileSubstrate creates the parent directory if needed.
func NewFileSubstrate(path string) (*FileSubstrate, error) {
	if path == "" {
		return nil, errors.New("local: empty data file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileSubstrate{path: path}, nil
}

// Name implements Substrate.
func (f *FileSubstrate) Name() string { return "file" }

// Path returns the data file location.
func (f *FileSubstrate) Path() string { return f.path }

// Read implements Substrate.
func (f *FileSubstrate) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write implements Substrate.
func (f *FileSubstrate) Write(_ context.Context, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(f.path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending data file: %w", err)
	}
	defer func() {
		// No-op once CloseAtomicallyReplace succeeded
		_ = pendingFile.Cleanup()
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace data file: %w", err)
	}
	return nil
}
