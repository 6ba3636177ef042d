package shared

import (
	"context"

	"hotel-booking-api/internal/infra/db"
)

// UnitOfWork runs a function inside a database transaction.
type UnitOfWork interface {
	// Within runs fn in a read-committed transaction.
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error

	// WithinSerializable runs fn in a serializable transaction, retrying on
	// serialization failures. Booking creation re-checks availability inside
	// this isolation level so two concurrent requests for the same rooms
	// cannot both succeed.
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}
