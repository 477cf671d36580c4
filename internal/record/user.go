package record

// User is an account created by signup.
type User struct {
	ID       string `yaml:"-" json:"id"`
	Username string `yaml:"username" json:"username"`
	Email    string `yaml:"email" json:"email"`

	// Password always holds a bcrypt hash once persisted.
	Password string `yaml:"password" json:"password"`
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
