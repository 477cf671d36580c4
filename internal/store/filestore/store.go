// Package filestore is a record store that keeps every record as a front matter
// document on disk and serves reads from an in-memory copy.
//
// Layout under the root directory:
//
//	employees/<id>.md
//	users/<id>.md
//
// An optional file watcher picks up edits made by other processes.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/staffbook/staffql/internal/logging"
	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/store"
)

const (
	EmployeesDir = "employees"
	UsersDir     = "users"
)

// Store implements store.Store on a directory of documents.
type Store struct {
	root     string // absolute path to the store directory
	idLength int
	log      logging.Logger

	// In-memory state
	mu        sync.RWMutex
	employees map[string]*record.Employee // ID -> Employee
	users     map[string]*record.User     // ID -> User
	closed    bool

	// File watching (optional)
	watching bool
	done     chan struct{}

	subMu       sync.RWMutex
	subscribers map[uint64]*subscription
	nextSubID   uint64
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for watcher warnings.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDLength sets the length of generated record IDs.
func WithIDLength(n int) Option {
	return func(s *Store) { s.idLength = n }
}

// New creates a Store rooted at root. Call Init and Load (or use Open) before use.
func New(root string, opts ...Option) *Store {
	s := &Store{
		root:        root,
		idLength:    record.DefaultIDLength,
		log:         logging.Discard(),
		employees:   make(map[string]*record.Employee),
		users:       make(map[string]*record.User),
		subscribers: make(map[uint64]*subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the directory layout if needed and loads all records.
func Open(ctx context.Context, root string, opts ...Option) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, store.Wrap("open", err)
	}
	s := New(abs, opts...)
	if err := s.Init(); err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the store directory.
func (s *Store) Root() string {
	return s.root
}

// Init creates the store directories if they don't exist.
func (s *Store) Init() error {
	for _, dir := range []string{EmployeesDir, UsersDir} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
			return store.Wrap("init", err)
		}
	}
	return nil
}

// Load reads all records from disk into memory.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadFromDisk()
}

// loadFromDisk reads all records from disk (must be called with lock held).
func (s *Store) loadFromDisk() error {
	s.employees = make(map[string]*record.Employee)
	s.users = make(map[string]*record.User)

	err := s.readDir(EmployeesDir, func(id, path string) error {
		e, err := loadEmployee(path)
		if err != nil {
			return err
		}
		e.ID = id
		s.employees[id] = e
		return nil
	})
	if err != nil {
		return err
	}

	return s.readDir(UsersDir, func(id, path string) error {
		u, err := loadUser(path)
		if err != nil {
			return err
		}
		u.ID = id
		s.users[id] = u
		return nil
	})
}

func (s *Store) readDir(dir string, load func(id, path string) error) error {
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if err != nil {
		return store.Wrap("load "+dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := record.ParseFilename(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(s.root, dir, entry.Name())
		if err := load(id, path); err != nil {
			return store.Wrap("load "+dir, fmt.Errorf("loading %s: %w", path, err))
		}
	}
	return nil
}

func loadEmployee(path string) (*record.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return record.ParseEmployee(f)
}

func loadUser(path string) (*record.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return record.ParseUser(f)
}

// checkOpen returns an error if the context is done or the store closed
// (must be called with lock held).
func (s *Store) checkOpen(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(op, err)
	}
	if s.closed {
		return store.Wrap(op, store.ErrClosed)
	}
	return nil
}

// FindUserByID returns the user with the given ID, or nil.
func (s *Store) FindUserByID(ctx context.Context, id string) (*record.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx, "find user"); err != nil {
		return nil, err
	}
	return s.users[id].Clone(), nil
}

// FindUserByEmail returns the first user with the given email, or nil.
// Users are scanned in ID order so the result is stable when emails collide.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*record.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx, "find user by email"); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(s.users) {
		if u := s.users[id]; u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, nil
}

// InsertUser stores a new user under a fresh ID.
func (s *Store) InsertUser(ctx context.Context, u *record.User) (*record.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(ctx, "insert user"); err != nil {
		return nil, err
	}

	stored := u.Clone()
	stored.ID = s.newID(func(id string) bool { _, ok := s.users[id]; return ok })
	if err := s.write(UsersDir, stored.ID, stored); err != nil {
		return nil, store.Wrap("insert user", err)
	}
	s.users[stored.ID] = stored
	return stored.Clone(), nil
}

// FindEmployeeByID returns the employee with the given ID, or nil.
func (s *Store) FindEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx, "find employee"); err != nil {
		return nil, err
	}
	return s.employees[id].Clone(), nil
}

// FindEmployees returns the employees matching filter, ordered by ID.
func (s *Store) FindEmployees(ctx context.Context, filter record.EmployeeFilter) ([]*record.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx, "find employees"); err != nil {
		return nil, err
	}

	all := make([]*record.Employee, 0, len(s.employees))
	for _, id := range sortedKeys(s.employees) {
		all = append(all, s.employees[id])
	}

	matched := record.ApplyFilter(all, filter)
	result := make([]*record.Employee, len(matched))
	for i, e := range matched {
		result[i] = e.Clone()
	}
	return result, nil
}

// InsertEmployee stores a new employee under a fresh ID.
func (s *Store) InsertEmployee(ctx context.Context, e *record.Employee) (*record.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(ctx, "insert employee"); err != nil {
		return nil, err
	}

	stored := e.Clone()
	stored.ID = s.newID(func(id string) bool { _, ok := s.employees[id]; return ok })
	if err := s.write(EmployeesDir, stored.ID, stored); err != nil {
		return nil, store.Wrap("insert employee", err)
	}
	s.employees[stored.ID] = stored
	return stored.Clone(), nil
}

// UpdateEmployeeByID merges changes into an existing employee.
func (s *Store) UpdateEmployeeByID(ctx context.Context, id string, changes record.EmployeeChanges) (*record.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(ctx, "update employee"); err != nil {
		return nil, err
	}

	current, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	if changes.IsEmpty() {
		return current.Clone(), nil
	}

	updated := current.Clone()
	changes.Apply(updated)
	if err := s.write(EmployeesDir, id, updated); err != nil {
		return nil, store.Wrap("update employee", err)
	}
	s.employees[id] = updated
	return updated.Clone(), nil
}

// DeleteEmployeeByID removes an employee and its document.
func (s *Store) DeleteEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(ctx, "delete employee"); err != nil {
		return nil, err
	}

	current, ok := s.employees[id]
	if !ok {
		return nil, nil
	}

	path := filepath.Join(s.root, EmployeesDir, record.BuildFilename(id))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, store.Wrap("delete employee", err)
	}
	delete(s.employees, id)
	return current, nil
}

// Ping checks that the store directory is still there.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx, "ping"); err != nil {
		return err
	}
	info, err := os.Stat(s.root)
	if err != nil {
		return store.Wrap("ping", err)
	}
	if !info.IsDir() {
		return store.Wrap("ping", fmt.Errorf("%s is not a directory", s.root))
	}
	return nil
}

// Close stops any active file watcher. Further operations fail with store.ErrClosed.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return s.unwatchLocked()
}

type renderer interface {
	Render() ([]byte, error)
}

// write renders a record and writes it to its document file.
func (s *Store) write(dir, id string, r renderer) error {
	content, err := r.Render()
	if err != nil {
		return err
	}

	path := filepath.Join(s.root, dir, record.BuildFilename(id))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// newID generates an ID not yet taken according to exists.
func (s *Store) newID(exists func(string) bool) string {
	for {
		id := record.NewID(s.idLength)
		if !exists(id) {
			return id
		}
	}
}

// kindOf returns the collection directory a document path belongs to.
func (s *Store) kindOf(path string) (string, bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	dir := filepath.Dir(rel)
	if dir != EmployeesDir && dir != UsersDir {
		return "", false
	}
	return dir, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
