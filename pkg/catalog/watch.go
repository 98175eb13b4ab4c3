package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/layout"
)

// EventType describes what changed below the storage root.
type EventType int

const (
	// EventCategoryChanged indicates ideas of the given category were added,
	// edited or removed.
	EventCategoryChanged EventType = iota

	// EventTagsChanged indicates a tag document changed.
	EventTagsChanged

	// EventCatalogInvalidated signals that the layout itself changed (a
	// category folder or the category list) and callers should take a new
	// snapshot.
	EventCatalogInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventCategoryChanged:
		return "category"
	case EventTagsChanged:
		return "tags"
	default:
		return "catalog"
	}
}

// Event is emitted by Watch when storage changes.
type Event struct {
	Type     EventType
	Category string
}

// Watch streams change events for the tree at root until ctx is cancelled.
// Callers should drain the returned channel; it is closed once ctx is done
// or the watcher fails.
func Watch(ctx context.Context, root string, logger *zap.Logger) (<-chan Event, error) {
	if root == "" {
		return nil, errors.New("catalog: root unknown")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("catalog: ensure root: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("watcher close", zap.Error(err))
			}
		})
	}

	dirs, err := collectDirs(root)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("catalog: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("catalog: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; its next snapshot covers this change.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							if err := watcher.Add(dir); err != nil {
								logger.Warn("watch directory", zap.String("path", dir), zap.Error(err))
							} else {
								watched[dir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
						continue
					}
				}

				throttle.Enqueue(classify(root, evt.Name), send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks root and returns all directories that should be watched.
func collectDirs(root string) ([]string, error) {
	dirs := []string{root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// classify maps a changed path onto the event callers care about.
func classify(root, path string) Event {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Event{Type: EventCatalogInvalidated}
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 2 {
		return Event{Type: EventCatalogInvalidated}
	}
	if parts[0] == layout.ConfigDir {
		if parts[1] == layout.TagDir || parts[1] == layout.TagKVDir {
			return Event{Type: EventTagsChanged}
		}
		return Event{Type: EventCatalogInvalidated}
	}
	return Event{Type: EventCategoryChanged, Category: parts[0]}
}

// eventThrottle coalesces bursts of filesystem activity into one event per
// distinct (type, category) pair.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Category] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends under the lock so Stop cannot return while a send is in
// flight; send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = nil
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})

	for eventType, categories := range pending {
		for category := range categories {
			send(Event{Type: eventType, Category: category})
		}
	}
}

// Stop drops pending events. No send happens once it returns.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
