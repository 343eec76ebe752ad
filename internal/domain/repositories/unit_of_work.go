package repositories

import (
	"context"
)

// UnitOfWork groups writes that must land together (fixture seeding).
// Request handlers never span entities with it.
type UnitOfWork interface {
	// Do executes fn within a transaction scope. Repositories called with
	// the ctx passed to fn join the transaction.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
