package source

import "errors"

var (
	// ErrFailedToParseConfig is returned when the Postgres connection string
	// cannot be parsed.
	ErrFailedToParseConfig = errors.New("failed to parse postgres connection config")

	// ErrFailedToConnectPostgres is returned when the pool cannot be
	// established within the configured retries.
	ErrFailedToConnectPostgres = errors.New("failed to connect to postgres")

	// ErrFailedToConnectMongo is returned when the client cannot be
	// established within the configured retries.
	ErrFailedToConnectMongo = errors.New("failed to connect to mongo")

	// ErrFailedToApplyMigrations is returned when applying schema migrations
	// fails for any reason.
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")

	// ErrMigrationPathNotProvided is returned when Migrate is called without
	// a migrations path configured.
	ErrMigrationPathNotProvided = errors.New("migrations path not provided")

	// ErrMigrationsDirNotFound is returned when the configured migrations
	// directory does not exist.
	ErrMigrationsDirNotFound = errors.New("migrations directory not found")
)
