package domain

// User represents an application end-user
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser creates a new user. No validation is done on any of the fields.
func NewUser(id int64, name, email string) *User {
	return &User{id, name, email}
}
