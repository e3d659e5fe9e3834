package domain

import "context"

// Database defines lifecycle operations for a storage backend.
// SQLite and PostgreSQL implementations each vend their own
// UserRepository and PostRepository.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
	Users() UserRepository
	Posts() PostRepository
}
