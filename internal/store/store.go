// Package store holds edit proposals awaiting review. Accept and reject are
// terminal: both remove the entry, so the store never contains an edit in any
// state other than "awaiting review".
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cyclone1070/patchpane/internal/gateway"
	"github.com/Cyclone1070/patchpane/internal/patch"
	"github.com/Cyclone1070/patchpane/internal/pathutil"
)

// PendingFileEdit is a parsed patch block enriched with a resolved path and
// the on-disk original content, awaiting accept or reject.
type PendingFileEdit struct {
	patch.ParsedFileEdit

	// ID is unique per proposal instance; the same path may have multiple
	// independent pending edits at once.
	ID string

	AbsolutePath string
	DisplayPath  string

	// OriginalContent is the on-disk content at enqueue time, falling back to
	// the parsed OLD section when the file could not be read.
	OriginalContent string

	// NewContent is what accepting the edit writes.
	NewContent string
}

// Events receives the side-channel notifications the editor surface consumes.
type Events interface {
	// OpenFile fires on enqueue and on accept with the edit's absolute path.
	OpenFile(absPath string)
	// FilesystemChanged fires after a successful accept.
	FilesystemChanged()
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) OpenFile(string) {}
func (NopEvents) FilesystemChanged() {}

// Store owns the pending edits exclusively. All mutation happens under one
// mutex so accept/reject ordering matches a single-threaded event loop even
// on a multi-threaded runtime.
type Store struct {
	mu       sync.Mutex
	fs       gateway.FileAccess
	resolver *pathutil.Resolver
	events   Events
	log      *zap.Logger

	edits    []*PendingFileEdit
	selected string
}

// New creates a Store. events and log may be nil.
func New(fs gateway.FileAccess, resolver *pathutil.Resolver, events Events, log *zap.Logger) *Store {
	if fs == nil {
		panic("fs is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if events == nil {
		events = NopEvents{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{fs: fs, resolver: resolver, events: events, log: log}
}

// Enqueue enriches parsed edits and appends them for review. It never fails:
// when the original content cannot be read, the parsed OLD section stands in
// for it. Returns the enriched edits in input order.
func (s *Store) Enqueue(ctx context.Context, parsed []patch.ParsedFileEdit) []*PendingFileEdit {
	s.mu.Lock()
	defer s.mu.Unlock()

	enqueued := make([]*PendingFileEdit, 0, len(parsed))
	for _, p := range parsed {
		abs := s.resolver.Resolve(p.Path)

		original := p.Old
		if p.Action != patch.ActionCreate {
			if content, err := s.fs.ReadFile(ctx, abs); err == nil {
				original = content
			} else {
				s.log.Debug("original content unavailable, using parsed OLD",
					zap.String("path", abs), zap.Error(err))
			}
		}

		edit := &PendingFileEdit{
			ParsedFileEdit:  p,
			ID:              uuid.NewString(),
			AbsolutePath:    abs,
			DisplayPath:     s.resolver.Display(abs),
			OriginalContent: original,
			NewContent:      p.Content,
		}
		s.edits = append(s.edits, edit)
		enqueued = append(enqueued, edit)

		s.log.Debug("edit enqueued",
			zap.String("id", edit.ID),
			zap.String("path", edit.DisplayPath),
			zap.String("action", string(edit.Action)))
		s.events.OpenFile(abs)
	}

	if s.selected == "" && len(s.edits) > 0 {
		s.selected = s.edits[0].ID
	}
	return enqueued
}

// Accept applies the edit: delete removes the target file, everything else
// writes NewContent. On success the edit leaves the store; on failure it
// stays pending and exactly one error is returned, retryable by re-accepting.
func (s *Store) Accept(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edit := s.find(id)
	if edit == nil {
		return fmt.Errorf("no pending edit with id %s", id)
	}

	var err error
	if edit.Action == patch.ActionDelete {
		err = s.fs.DeleteFile(ctx, edit.AbsolutePath)
	} else {
		err = s.fs.WriteFile(ctx, edit.AbsolutePath, edit.NewContent)
	}
	if err != nil {
		s.log.Warn("accept failed, edit stays pending",
			zap.String("id", id), zap.String("path", edit.DisplayPath), zap.Error(err))
		return fmt.Errorf("applying edit to %s: %w", edit.DisplayPath, err)
	}

	s.remove(id)
	s.log.Info("edit accepted",
		zap.String("id", id),
		zap.String("path", edit.DisplayPath),
		zap.String("action", string(edit.Action)))
	s.events.FilesystemChanged()
	s.events.OpenFile(edit.AbsolutePath)
	return nil
}

// Reject discards the edit without side effects.
func (s *Store) Reject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return
	}
	s.remove(id)
	s.log.Info("edit rejected", zap.String("id", id))
}

// Select marks an edit for detail view. Unknown ids are ignored.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) != nil {
		s.selected = id
	}
}

// Selected returns the edit currently shown in the detail view, or nil.
func (s *Store) Selected() *PendingFileEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(s.selected)
}

// List returns the pending edits in enqueue order.
func (s *Store) List() []*PendingFileEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*PendingFileEdit, len(s.edits))
	copy(out, s.edits)
	return out
}

// Len returns the number of pending edits.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edits)
}

// find returns the edit with the given id. Caller holds the lock.
func (s *Store) find(id string) *PendingFileEdit {
	for _, e := range s.edits {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// remove drops the edit and advances the selection to the first remaining
// edit (or clears it when the store empties). Caller holds the lock.
func (s *Store) remove(id string) {
	for i, e := range s.edits {
		if e.ID == id {
			s.edits = append(s.edits[:i], s.edits[i+1:]...)
			break
		}
	}
	if s.selected == id {
		if len(s.edits) > 0 {
			s.selected = s.edits[0].ID
		} else {
			s.selected = ""
		}
	}
}
