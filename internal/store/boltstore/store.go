// Package boltstore is an embedded record store on top of bbolt.
// Each collection is a bucket of JSON documents keyed by record ID.
package boltstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/store"
)

var (
	usersBucket     = []byte("users")
	employeesBucket = []byte("employees")
)

// Store implements store.Store on a bbolt database file.
type Store struct {
	db       *bolt.DB
	idLength int
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("open", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, store.Wrap("open", fmt.Errorf("opening %s: %w", path, err))
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{usersBucket, employeesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, store.Wrap("open", err)
	}

	return &Store{db: db, idLength: record.DefaultIDLength}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) view(ctx context.Context, op string, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(op, err)
	}
	return store.Wrap(op, translate(s.db.View(fn)))
}

func (s *Store) update(ctx context.Context, op string, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(op, err)
	}
	return store.Wrap(op, translate(s.db.Update(fn)))
}

func translate(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return store.ErrClosed
	}
	return err
}

// get decodes the document stored under id into v, reporting whether it exists.
func get(b *bolt.Bucket, id string, v any) (bool, error) {
	data := b.Get([]byte(id))
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", id, err)
	}
	return true, nil
}

func put(b *bolt.Bucket, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", id, err)
	}
	return b.Put([]byte(id), data)
}

// freshID returns an ID not present in b.
func (s *Store) freshID(b *bolt.Bucket) string {
	for {
		id := record.NewID(s.idLength)
		if b.Get([]byte(id)) == nil {
			return id
		}
	}
}

// FindUserByID returns the user with the given ID, or nil.
func (s *Store) FindUserByID(ctx context.Context, id string) (*record.User, error) {
	var u *record.User
	err := s.view(ctx, "find user", func(tx *bolt.Tx) error {
		var doc record.User
		ok, err := get(tx.Bucket(usersBucket), id, &doc)
		if ok {
			doc.ID = id
			u = &doc
		}
		return err
	})
	return u, err
}

// FindUserByEmail scans users in key order and returns the first match, or nil.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*record.User, error) {
	var u *record.User
	err := s.view(ctx, "find user by email", func(tx *bolt.Tx) error {
		c := tx.Bucket(usersBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var doc record.User
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}
			if doc.Email == email {
				doc.ID = string(k)
				u = &doc
				return nil
			}
		}
		return nil
	})
	return u, err
}

// InsertUser stores a new user under a fresh ID.
func (s *Store) InsertUser(ctx context.Context, u *record.User) (*record.User, error) {
	stored := u.Clone()
	err := s.update(ctx, "insert user", func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		stored.ID = s.freshID(b)
		return put(b, stored.ID, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// FindEmployeeByID returns the employee with the given ID, or nil.
func (s *Store) FindEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	var e *record.Employee
	err := s.view(ctx, "find employee", func(tx *bolt.Tx) error {
		var doc record.Employee
		ok, err := get(tx.Bucket(employeesBucket), id, &doc)
		if ok {
			doc.ID = id
			e = &doc
		}
		return err
	})
	return e, err
}

// FindEmployees returns the employees matching filter in key order.
func (s *Store) FindEmployees(ctx context.Context, filter record.EmployeeFilter) ([]*record.Employee, error) {
	result := []*record.Employee{}
	err := s.view(ctx, "find employees", func(tx *bolt.Tx) error {
		return tx.Bucket(employeesBucket).ForEach(func(k, v []byte) error {
			var doc record.Employee
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}
			doc.ID = string(k)
			if filter.Matches(&doc) {
				result = append(result, &doc)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InsertEmployee stores a new employee under a fresh ID.
func (s *Store) InsertEmployee(ctx context.Context, e *record.Employee) (*record.Employee, error) {
	stored := e.Clone()
	err := s.update(ctx, "insert employee", func(tx *bolt.Tx) error {
		b := tx.Bucket(employeesBucket)
		stored.ID = s.freshID(b)
		return put(b, stored.ID, stored)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateEmployeeByID merges changes into an existing employee in one transaction.
func (s *Store) UpdateEmployeeByID(ctx context.Context, id string, changes record.EmployeeChanges) (*record.Employee, error) {
	var e *record.Employee
	err := s.update(ctx, "update employee", func(tx *bolt.Tx) error {
		b := tx.Bucket(employeesBucket)
		var doc record.Employee
		ok, err := get(b, id, &doc)
		if err != nil || !ok {
			return err
		}
		doc.ID = id
		e = &doc
		if changes.IsEmpty() {
			return nil
		}
		changes.Apply(&doc)
		return put(b, id, &doc)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEmployeeByID removes an employee and returns it.
func (s *Store) DeleteEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	var e *record.Employee
	err := s.update(ctx, "delete employee", func(tx *bolt.Tx) error {
		b := tx.Bucket(employeesBucket)
		var doc record.Employee
		ok, err := get(b, id, &doc)
		if err != nil || !ok {
			return err
		}
		doc.ID = id
		e = &doc
		return b.Delete([]byte(id))
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Ping runs an empty read transaction.
func (s *Store) Ping(ctx context.Context) error {
	return s.view(ctx, "ping", func(tx *bolt.Tx) error {
		if tx.Bucket(employeesBucket) == nil || tx.Bucket(usersBucket) == nil {
			return errors.New("missing buckets")
		}
		return nil
	})
}

// Close closes the database file.
func (s *Store) Close(ctx context.Context) error {
	return store.Wrap("close", s.db.Close())
}
