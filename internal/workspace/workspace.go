package workspace

import (
	"context"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Workspace caches the project file listing and invalidates the cache when
// the filesystem changes underneath it.
type Workspace struct {
	mu      sync.Mutex
	root    string
	log     *zap.Logger
	entries []FileListingEntry
	dirty   bool

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New creates a Workspace rooted at root. log may be nil.
func New(root string, log *zap.Logger) *Workspace {
	if root == "" {
		panic("root is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{root: root, log: log, dirty: true}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Listing returns the cached file listing, rebuilding it when stale.
func (w *Workspace) Listing() ([]FileListingEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dirty {
		entries, err := buildListing(w.root)
		if err != nil {
			return nil, err
		}
		w.entries = entries
		w.dirty = false
		w.log.Debug("file listing rebuilt",
			zap.String("root", w.root), zap.Int("entries", len(entries)))
	}

	out := make([]FileListingEntry, len(w.entries))
	copy(out, w.entries)
	return out, nil
}

// Invalidate marks the cached listing stale; the next Listing call rebuilds.
func (w *Workspace) Invalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty = true
}

// Watch starts a filesystem watcher over the current directory tree. Events
// only invalidate the cache; the rebuild happens lazily on the next Listing
// call. Non-blocking; stop with Stop.
func (w *Workspace) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	w.mu.Unlock()

	// Watch every current directory; directories created later are picked up
	// when a create event for them arrives.
	if err := watcher.Add(w.root); err != nil {
		w.log.Warn("watch failed for root", zap.String("path", w.root), zap.Error(err))
	}
	entries, err := buildListing(w.root)
	if err == nil {
		for _, e := range entries {
			if e.Kind == KindDirectory {
				if err := watcher.Add(e.AbsolutePath); err != nil {
					w.log.Warn("watch failed", zap.String("path", e.AbsolutePath), zap.Error(err))
				}
			}
		}
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Workspace) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("error closing watcher", zap.Error(err))
	}
}

func (w *Workspace) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Workspace) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.log.Debug("filesystem event",
		zap.String("op", event.Op.String()), zap.String("path", event.Name))
	w.Invalidate()

	// A newly created directory must be watched too.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.log.Warn("watch failed", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}
}
