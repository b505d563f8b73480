// Package mocks provides shared in-memory fakes for the gateway interfaces.
package mocks

import (
	"context"
	"sync"

	"github.com/Cyclone1070/patchpane/internal/gateway"
)

// FileAccess implements gateway.FileAccess with in-memory storage.
type FileAccess struct {
	Mu    sync.Mutex
	Files map[string]string // path -> content

	// Errors maps a path to an error returned for any operation on it.
	Errors map[string]error

	// OpErrors maps an operation ("read", "write", "delete") to an error
	// returned for every path.
	OpErrors map[string]error

	// Call log, in order.
	Reads   []string
	Writes  []string
	Deletes []string
}

// NewFileAccess creates an empty mock filesystem.
func NewFileAccess() *FileAccess {
	return &FileAccess{
		Files:    make(map[string]string),
		Errors:   make(map[string]error),
		OpErrors: make(map[string]error),
	}
}

func (m *FileAccess) ReadFile(ctx context.Context, path string) (string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Reads = append(m.Reads, path)
	if err := m.failure("read", path); err != nil {
		return "", err
	}
	content, ok := m.Files[path]
	if !ok {
		return "", gateway.ErrNotFound
	}
	return content, nil
}

func (m *FileAccess) WriteFile(ctx context.Context, path string, content string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Writes = append(m.Writes, path)
	if err := m.failure("write", path); err != nil {
		return err
	}
	m.Files[path] = content
	return nil
}

func (m *FileAccess) DeleteFile(ctx context.Context, path string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Deletes = append(m.Deletes, path)
	if err := m.failure("delete", path); err != nil {
		return err
	}
	if _, ok := m.Files[path]; !ok {
		return &gateway.IOError{Op: "delete", Path: path, Cause: gateway.ErrNotFound}
	}
	delete(m.Files, path)
	return nil
}

func (m *FileAccess) failure(op, path string) error {
	if err, ok := m.OpErrors[op]; ok {
		return err
	}
	if err, ok := m.Errors[path]; ok {
		return err
	}
	return nil
}
