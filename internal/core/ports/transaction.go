// internal/core/ports/transaction.go
package ports

import "context"

// TxManager runs fn inside a single transaction carried by the context.
// Nested calls join the outer transaction. Returning an error from fn rolls
// everything back.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
