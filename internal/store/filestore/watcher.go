package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/staffbook/staffql/internal/record"
)

const debounceDelay = 100 * time.Millisecond

// EventType represents the type of change that occurred to a record.
type EventType int

const (
	// EventCreated indicates a new record appeared.
	EventCreated EventType = iota
	// EventUpdated indicates an existing record was modified.
	EventUpdated
	// EventDeleted indicates a record was removed.
	EventDeleted
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event represents a change to a document made on disk.
type Event struct {
	Type       EventType
	Collection string // EmployeesDir or UsersDir
	ID         string

	// Employee is set for created/updated employees.
	Employee *record.Employee
}

// subscription represents a subscriber to change events.
type subscription struct {
	ch chan []Event
	id uint64
}

// Subscribe creates a new subscription to change events.
// The channel receives batches of events after debouncing. Callers must call
// the returned unsubscribe function when done.
func (s *Store) Subscribe() (<-chan []Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := atomic.AddUint64(&s.nextSubID, 1)
	ch := make(chan []Event, 16)
	s.subscribers[id] = &subscription{ch: ch, id: id}

	unsubscribe := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			close(ch)
			delete(s.subscribers, id)
		}
	}

	return ch, unsubscribe
}

// fanOut sends events to all subscribers without blocking.
// Slow subscribers miss batches rather than stalling the watcher.
func (s *Store) fanOut(events []Event) {
	if len(events) == 0 {
		return
	}

	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, sub := range s.subscribers {
		select {
		case sub.ch <- events:
		default:
			s.log.Warn(context.Background(), "dropping store events for slow subscriber", "subscriber", sub.id, "events", len(events))
		}
	}
}

// Watch starts watching the store directories for changes made outside this process.
func (s *Store) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watching {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range []string{EmployeesDir, UsersDir} {
		if err := watcher.Add(filepath.Join(s.root, dir)); err != nil {
			watcher.Close()
			return err
		}
	}

	s.watching = true
	s.done = make(chan struct{})

	go s.watchLoop(watcher, s.done)

	return nil
}

// Unwatch stops watching and closes all subscriber channels.
func (s *Store) Unwatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unwatchLocked()
}

// unwatchLocked stops watching (must be called with lock held).
func (s *Store) unwatchLocked() error {
	if !s.watching {
		return nil
	}

	close(s.done)
	s.watching = false

	s.subMu.Lock()
	for id, sub := range s.subscribers {
		close(sub.ch)
		delete(s.subscribers, id)
	}
	s.subMu.Unlock()

	return nil
}

// watchLoop processes filesystem events with debouncing.
func (s *Store) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}) {
	defer watcher.Close()

	var debounceTimer *time.Timer
	var pendingMu sync.Mutex
	pendingChanges := make(map[string]fsnotify.Op)

	for {
		select {
		case <-done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if _, ok := record.ParseFilename(filepath.Base(event.Name)); !ok {
				continue
			}
			if _, ok := s.kindOf(event.Name); !ok {
				continue
			}

			relevant := event.Op&fsnotify.Create != 0 ||
				event.Op&fsnotify.Write != 0 ||
				event.Op&fsnotify.Remove != 0 ||
				event.Op&fsnotify.Rename != 0
			if !relevant {
				continue
			}

			pendingMu.Lock()
			pendingChanges[event.Name] |= event.Op
			pendingMu.Unlock()

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				pendingMu.Lock()
				changes := pendingChanges
				pendingChanges = make(map[string]fsnotify.Op)
				pendingMu.Unlock()

				s.handleChanges(changes)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn(context.Background(), "file watcher error", "error", err)
		}
	}
}

// handleChanges reloads only the files that changed.
func (s *Store) handleChanges(changes map[string]fsnotify.Op) {
	if len(changes) == 0 {
		return
	}

	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return
	}

	var events []Event
	for path := range changes {
		id, _ := record.ParseFilename(filepath.Base(path))
		collection, _ := s.kindOf(path)

		if !fileExists(path) {
			if s.forget(collection, id) {
				events = append(events, Event{Type: EventDeleted, Collection: collection, ID: id})
			}
			continue
		}

		event, err := s.reload(collection, id, path)
		if err != nil {
			s.log.Warn(context.Background(), "failed to load document", "path", path, "error", err)
			continue
		}
		events = append(events, event)
	}
	s.mu.Unlock()

	s.fanOut(events)
}

// forget drops a record from memory, reporting whether it was present
// (must be called with lock held).
func (s *Store) forget(collection, id string) bool {
	switch collection {
	case EmployeesDir:
		if _, ok := s.employees[id]; ok {
			delete(s.employees, id)
			return true
		}
	case UsersDir:
		if _, ok := s.users[id]; ok {
			delete(s.users, id)
			return true
		}
	}
	return false
}

// reload re-reads one document into memory (must be called with lock held).
func (s *Store) reload(collection, id, path string) (Event, error) {
	event := Event{Type: EventCreated, Collection: collection, ID: id}

	switch collection {
	case EmployeesDir:
		e, err := loadEmployee(path)
		if err != nil {
			return event, err
		}
		e.ID = id
		if _, existed := s.employees[id]; existed {
			event.Type = EventUpdated
		}
		s.employees[id] = e
		event.Employee = e.Clone()
	case UsersDir:
		u, err := loadUser(path)
		if err != nil {
			return event, err
		}
		u.ID = id
		if _, existed := s.users[id]; existed {
			event.Type = EventUpdated
		}
		s.users[id] = u
	}
	return event, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
