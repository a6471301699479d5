package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. JSON tags are omitted because these structs are used
// by the repository layer; the dto package defines the boundary
// shapes that are serialized to clients.
//
// Fields:
//
//	ID             – primary key identifier of the user.
//	Username       – unique login name (at most 50 characters).
//	Email          – unique email address (at most 100 characters).
//	HashedPassword – bcrypt hash; the plaintext never reaches this struct.
//	CreatedAt      – timestamp of creation, never updated.
type User struct {
	ID             uint64    // users.id
	Username       string    // users.username
	Email          string    // users.email
	HashedPassword string    // users.hashed_password
	CreatedAt      time.Time // users.created_at
}
