package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staffbook/staffql/internal/record"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func newUserDoc(u *record.User) userDoc {
	return userDoc{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
}

func (d *userDoc) record() *record.User {
	return &record.User{
		ID:       d.ID.Hex(),
		Username: d.Username,
		Email:    d.Email,
		Password: d.Password,
	}
}

type employeeDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     *string            `bson:"first_name,omitempty"`
	LastName      *string            `bson:"last_name,omitempty"`
	Email         *string            `bson:"email,omitempty"`
	Gender        *string            `bson:"gender,omitempty"`
	Designation   *string            `bson:"designation,omitempty"`
	Department    *string            `bson:"department,omitempty"`
	Salary        *float64           `bson:"salary,omitempty"`
	DateOfJoining *string            `bson:"date_of_joining,omitempty"`
	EmployeePhoto *string            `bson:"employee_photo,omitempty"`
}

func newEmployeeDoc(e *record.Employee) employeeDoc {
	c := e.Clone()
	return employeeDoc{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Gender:        c.Gender,
		Designation:   c.Designation,
		Department:    c.Department,
		Salary:        c.Salary,
		DateOfJoining: c.DateOfJoining,
		EmployeePhoto: c.EmployeePhoto,
	}
}

func (d *employeeDoc) record() *record.Employee {
	return &record.Employee{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Gender:        d.Gender,
		Designation:   d.Designation,
		Department:    d.Department,
		Salary:        d.Salary,
		DateOfJoining: d.DateOfJoining,
		EmployeePhoto: d.EmployeePhoto,
	}
}

// objectID parses a record ID. Malformed IDs report false.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// filterDoc turns an employee filter into an equality query.
func filterDoc(filter record.EmployeeFilter) bson.M {
	doc := bson.M{}
	for name, value := range filter.Fields() {
		doc[name] = value
	}
	return doc
}

// updateDoc turns changes into a $set/$unset update, or nil when there is nothing to change.
func updateDoc(changes record.EmployeeChanges) bson.M {
	update := bson.M{}
	if fields := changes.Fields(); len(fields) > 0 {
		set := bson.M{}
		for name, value := range fields {
			set[name] = value
		}
		update["$set"] = set
	}
	if names := changes.UnsetFields(); len(names) > 0 {
		unset := bson.M{}
		for _, name := range names {
			unset[name] = ""
		}
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}
	return update
}
