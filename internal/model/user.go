package model

import "time"

// Roles assignable to a user account. Only "admin" may manage the catalog.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account record as persisted under the `users` key. IDs are
// numeric strings assigned as max existing id + 1; records are never
// updated or deleted once created.
//
// Password holds a bcrypt hash, never the plain text. The JSON field names
// are part of the persisted schema that other readers of the store depend
// on.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionUser is the projection of the active user cached under the
// `currentUser` key. It deliberately omits the password hash.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session returns the projection stored for an authenticated user.
func (u User) Session() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
