package interfaces

import (
	"context"

	"github.com/RjRDRG/sd2021-tp1/domain"
)

// UserStore persists user records for one domain, keyed by qualified user
// id. Implementations: in-memory (service) and Redis (adapters).
type UserStore interface {
	// Create inserts a new record; conflict error when the id exists.
	Create(ctx context.Context, user domain.User) error
	// Get returns the record; entity-not-found error when absent.
	Get(ctx context.Context, userID string) (domain.User, error)
	// Update replaces an existing record; entity-not-found error when absent.
	Update(ctx context.Context, user domain.User) error
	// Delete removes the record; entity-not-found error when absent.
	Delete(ctx context.Context, userID string) error
	// List returns all records in unspecified order.
	List(ctx context.Context) ([]domain.User, error)
}
