// Package mongostore is the MongoDB record store.
//
// Records live in the "users" and "employees" collections of one database.
// Record IDs are the hex form of the documents' ObjectIDs; an ID that is not
// valid hex matches no document.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/staffbook/staffql/internal/logging"
	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/store"
)

const (
	UsersCollection     = "users"
	EmployeesCollection = "employees"

	// DefaultDatabase is used when neither the URI nor the caller names one.
	DefaultDatabase = "employees"

	connectTimeout = 10 * time.Second
)

// Store implements store.Store on a MongoDB database.
type Store struct {
	client    *mongo.Client
	users     *mongo.Collection
	employees *mongo.Collection
	log       logging.Logger
}

var _ store.Store = (*Store)(nil)

// Options configures Open.
type Options struct {
	// Database overrides the database named in the URI.
	Database string
	Logger   logging.Logger
}

// DatabaseName picks the database for uri: the explicit name wins, then the
// path component of the URI, then DefaultDatabase.
func DatabaseName(uri, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", err
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultDatabase, nil
}

// Open connects to uri and verifies the connection with a ping.
func Open(ctx context.Context, uri string, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	dbName, err := DatabaseName(uri, opts.Database)
	if err != nil {
		return nil, store.Wrap("connect", fmt.Errorf("parsing uri: %w", err))
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, store.Wrap("connect", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, store.Wrap("connect", err)
	}

	db := client.Database(dbName)
	log.Info(ctx, "connected to mongodb", "database", dbName)

	return &Store{
		client:    client,
		users:     db.Collection(UsersCollection),
		employees: db.Collection(EmployeesCollection),
		log:       log,
	}, nil
}

// FindUserByID returns the user with the given ID, or nil.
func (s *Store) FindUserByID(ctx context.Context, id string) (*record.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var doc userDoc
	found, err := findOne(ctx, s.users, bson.M{"_id": oid}, &doc)
	if err != nil || !found {
		return nil, store.Wrap("find user", err)
	}
	return doc.record(), nil
}

// FindUserByEmail returns the first user with the given email, or nil.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*record.User, error) {
	var doc userDoc
	found, err := findOne(ctx, s.users, bson.M{"email": email}, &doc)
	if err != nil || !found {
		return nil, store.Wrap("find user by email", err)
	}
	return doc.record(), nil
}

// InsertUser stores a new user under a fresh ObjectID.
func (s *Store) InsertUser(ctx context.Context, u *record.User) (*record.User, error) {
	doc := newUserDoc(u)
	doc.ID = primitive.NewObjectID()
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return nil, store.Wrap("insert user", err)
	}
	return doc.record(), nil
}

// FindEmployeeByID returns the employee with the given ID, or nil.
func (s *Store) FindEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var doc employeeDoc
	found, err := findOne(ctx, s.employees, bson.M{"_id": oid}, &doc)
	if err != nil || !found {
		return nil, store.Wrap("find employee", err)
	}
	return doc.record(), nil
}

// FindEmployees returns the employees matching filter in insertion order.
func (s *Store) FindEmployees(ctx context.Context, filter record.EmployeeFilter) ([]*record.Employee, error) {
	cursor, err := s.employees.Find(ctx, filterDoc(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, store.Wrap("find employees", err)
	}

	var docs []employeeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.Wrap("find employees", err)
	}

	result := make([]*record.Employee, len(docs))
	for i := range docs {
		result[i] = docs[i].record()
	}
	return result, nil
}

// InsertEmployee stores a new employee under a fresh ObjectID.
func (s *Store) InsertEmployee(ctx context.Context, e *record.Employee) (*record.Employee, error) {
	doc := newEmployeeDoc(e)
	doc.ID = primitive.NewObjectID()
	if _, err := s.employees.InsertOne(ctx, doc); err != nil {
		return nil, store.Wrap("insert employee", err)
	}
	return doc.record(), nil
}

// UpdateEmployeeByID applies changes with $set/$unset and returns the post-update document.
func (s *Store) UpdateEmployeeByID(ctx context.Context, id string, changes record.EmployeeChanges) (*record.Employee, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	update := updateDoc(changes)
	if update == nil {
		// An empty update is rejected by the server.
		return s.FindEmployeeByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDoc
	err := s.employees.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, store.Wrap("update employee", err)
	}
	return doc.record(), nil
}

// DeleteEmployeeByID removes an employee and returns the removed document.
func (s *Store) DeleteEmployeeByID(ctx context.Context, id string) (*record.Employee, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var doc employeeDoc
	err := s.employees.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, store.Wrap("delete employee", err)
	}
	return doc.record(), nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return store.Wrap("ping", s.client.Ping(ctx, readpref.Primary()))
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return store.Wrap("close", s.client.Disconnect(ctx))
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, v any) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
