package migrate

import (
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
)

const (
	eventsMigrationSource = "modules/events/database/postgresql/migrations"
	eventsMigrationTable  = "events_schema_migrations"
)

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

// newMigrate opens the events migrations against databaseURL, keeping their
// version in a dedicated table.
func newMigrate(databaseURL *url.URL, sourcePath string) (*migrate.Migrate, error) {
	newDatabaseURL := cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {eventsMigrationTable}})
	m, err := migrate.New("file://"+sourcePath, newDatabaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{prefix: "[Events] "}
	return m, nil
}

func parseDatabaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("--database is required")
	}
	databaseURL, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return databaseURL, nil
}
