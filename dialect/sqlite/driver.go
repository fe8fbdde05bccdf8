package sqlite

import (
	"context"
	"database/sql"
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
	_ "modernc.org/sqlite"
)

// Driver connects to SQLite files with URLs of the form
// sqlite://path/to/file.db, or sqlite://:memory: for an in-memory database.
type Driver struct {
	writer *Writer
}

func init() {
	tank.RegisterDriver(&Driver{writer: NewWriter()})
}

func (d *Driver) Name() string {
	return "sqlite"
}

func (d *Driver) Writer() tank.SqlWriter {
	return d.writer
}

func (d *Driver) Open(ctx context.Context, url string) (*sql.DB, error) {
	dsn := strings.TrimPrefix(url, "sqlite://")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
