package db

import "context"

// Interface manages the database schema of the tagging registry.
type Interface interface {
	// Upgrade applies schema versions newer than what the database holds.
	Upgrade(ctx context.Context) error

	// Version returns the schema version the database is at.
	//
	// A database without the version table reports 0.
	Version(ctx context.Context) (int, error)

	// Context derives a context that is canceled when the database schema
	// falls behind the repository, so the service can stop instead of
	// running queries against tables it does not understand.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
