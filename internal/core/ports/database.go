// internal/core/ports/database.go
package ports

import "context"

// Database abstracts the connection pool for handlers that only need health
// information.
type Database interface {
	Close()
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
}
