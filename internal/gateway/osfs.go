package gateway

import (
	"context"
	"os"
	"path/filepath"
)

// OSFileAccess implements FileAccess against the local filesystem. Writes are
// atomic: content lands in a temp file in the target directory which is then
// renamed over the destination, so readers never observe a partial write.
type OSFileAccess struct{}

// NewOSFileAccess creates a FileAccess backed by the real OS.
func NewOSFileAccess() *OSFileAccess {
	return &OSFileAccess{}
}

func (fs *OSFileAccess) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", &IOError{Op: "read", Path: path, Cause: err}
	}
	return string(data), nil
}

func (fs *OSFileAccess) WriteFile(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "write", Path: path, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".patchpane-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Cause: err}
	}

	// Preserve existing permissions; new files get 0644.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Cause: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Cause: err}
	}
	return nil
}

func (fs *OSFileAccess) DeleteFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return &IOError{Op: "delete", Path: path, Cause: err}
	}
	return nil
}
