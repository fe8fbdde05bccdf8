package tank

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Driver ties a URL scheme to a database/sql driver and the SqlWriter that
// speaks its dialect. Dialect packages register themselves in init.
type Driver interface {
	// Name is the URL scheme, e.g. "duckdb" for duckdb://path.
	Name() string
	// Writer returns the dialect's SQL printer.
	Writer() SqlWriter
	// Open dials the database named by the URL. The scheme prefix has
	// already been validated against Name.
	Open(ctx context.Context, url string) (*sql.DB, error)
}

// RowAppender is implemented by drivers with a native bulk append path
// faster than multi-row INSERT.
type RowAppender interface {
	AppendRows(ctx context.Context, conn *sql.Conn, info *TableInfo, rows [][]LabeledValue) error
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// RegisterDriver makes a driver available to Connect. Registering two
// drivers under one name panics, like database/sql.Register.
func RegisterDriver(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	name := d.Name()
	if _, dup := drivers[name]; dup {
		panic("tank: RegisterDriver called twice for driver " + name)
	}
	drivers[name] = d
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// driverFor resolves the URL scheme before any IO happens.
func driverFor(url string) (Driver, error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrConnectString, url)
	}
	driversMu.RLock()
	d, ok := drivers[scheme]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no driver registered for %q", ErrConnectString, scheme)
	}
	return d, nil
}

// Connect opens a single database connection for the URL. The scheme picks
// the driver; the rest of the URL is driver-specific.
func Connect(ctx context.Context, url string) (*Connection, error) {
	d, err := driverFor(url)
	if err != nil {
		return nil, err
	}
	db, err := d.Open(ctx, url)
	if err != nil {
		return nil, NewIOError("connect", err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, NewIOError("connect", err)
	}
	return &Connection{
		db:    db,
		conn:  conn,
		drv:   d,
		cache: NewPreparedCache(),
	}, nil
}
