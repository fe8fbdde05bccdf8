package tank

import (
	"context"
	"database/sql"
)

// Executor runs queries. Connection and Transaction both implement it, so
// CRUD helpers work the same inside and outside a transaction.
type Executor interface {
	// Driver returns the driver this executor talks through.
	Driver() Driver
	// Prepare readies a statement, reusing the connection's cache.
	Prepare(ctx context.Context, sql string) (*Query, error)
	// Run executes the query and streams every result it produces: rows
	// for row-returning statements, summaries for the rest.
	Run(ctx context.Context, q *Query) *ResultStream
	// Fetch executes the query and streams only rows.
	Fetch(ctx context.Context, q *Query) *RowStream
	// Execute runs a data-changing statement and reports its summary.
	Execute(ctx context.Context, q *Query) (*RowsAffected, error)
}

// execQuerier is the seam shared by *sql.Conn and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Connection is a single dedicated database connection with its prepared
// statement cache. It is safe for use by one goroutine at a time.
type Connection struct {
	db    *sql.DB
	conn  *sql.Conn
	drv   Driver
	cache *PreparedCache
}

// Driver returns the driver the connection was opened with.
func (c *Connection) Driver() Driver {
	return c.drv
}

// Writer returns the dialect printer of the connection's driver.
func (c *Connection) Writer() SqlWriter {
	return c.drv.Writer()
}

// Raw exposes the underlying database/sql connection for driver-specific
// paths such as native appenders.
func (c *Connection) Raw() *sql.Conn {
	return c.conn
}

// PreparedLen reports how many statements the connection has cached.
func (c *Connection) PreparedLen() int {
	return c.cache.Len()
}

// Prepare readies a statement on this connection. A statement prepared
// before is served from the cache without touching the database.
func (c *Connection) Prepare(ctx context.Context, sqlText string) (*Query, error) {
	if p, ok := c.cache.Get(sqlText); ok {
		return &Query{sql: sqlText, prep: p}, nil
	}
	stmt, err := c.conn.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, NewPrepareError(sqlText, err)
	}
	return &Query{sql: sqlText, prep: c.cache.Promote(sqlText, stmt)}, nil
}

// Run executes the query on this connection.
func (c *Connection) Run(ctx context.Context, q *Query) *ResultStream {
	return run(ctx, c.conn, nil, q)
}

// Fetch executes the query and streams its rows.
func (c *Connection) Fetch(ctx context.Context, q *Query) *RowStream {
	return fetch(ctx, c.conn, nil, q)
}

// Execute runs a data-changing statement.
func (c *Connection) Execute(ctx context.Context, q *Query) (*RowsAffected, error) {
	return execute(ctx, c.conn, nil, q)
}

// Begin starts a transaction on this connection.
func (c *Connection) Begin(ctx context.Context) (*Transaction, error) {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, NewIOError("begin transaction", err)
	}
	return &Transaction{conn: c, tx: tx}, nil
}

// Close releases the prepared statements and returns the connection to
// the pool, then closes the pool.
func (c *Connection) Close() error {
	err := c.cache.Close()
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	if derr := c.db.Close(); err == nil {
		err = derr
	}
	return err
}

// stmtFor resolves a query's statement handle for the given executor. A
// transaction rebinds connection-prepared statements onto itself.
func stmtFor(ctx context.Context, tx *sql.Tx, q *Query) *sql.Stmt {
	if q.prep == nil {
		return nil
	}
	if tx != nil {
		return tx.StmtContext(ctx, q.prep.stmt)
	}
	return q.prep.stmt
}

func run(ctx context.Context, eq execQuerier, tx *sql.Tx, q *Query) *ResultStream {
	if returnsRows(q.sql) {
		var (
			rows *sql.Rows
			err  error
		)
		if stmt := stmtFor(ctx, tx, q); stmt != nil {
			rows, err = stmt.QueryContext(ctx, q.args...)
		} else {
			rows, err = eq.QueryContext(ctx, q.sql, q.args...)
		}
		if err != nil {
			return streamFromError(NewExecuteError(q.sql, err))
		}
		return streamFromRows(rows)
	}
	res, err := execute(ctx, eq, tx, q)
	if err != nil {
		return streamFromError(err)
	}
	return streamFromExec(res)
}

func fetch(ctx context.Context, eq execQuerier, tx *sql.Tx, q *Query) *RowStream {
	var (
		rows *sql.Rows
		err  error
	)
	if stmt := stmtFor(ctx, tx, q); stmt != nil {
		rows, err = stmt.QueryContext(ctx, q.args...)
	} else {
		rows, err = eq.QueryContext(ctx, q.sql, q.args...)
	}
	if err != nil {
		return &RowStream{inner: streamFromError(NewExecuteError(q.sql, err))}
	}
	return &RowStream{inner: streamFromRows(rows)}
}

func execute(ctx context.Context, eq execQuerier, tx *sql.Tx, q *Query) (*RowsAffected, error) {
	var (
		res sql.Result
		err error
	)
	if stmt := stmtFor(ctx, tx, q); stmt != nil {
		res, err = stmt.ExecContext(ctx, q.args...)
	} else {
		res, err = eq.ExecContext(ctx, q.sql, q.args...)
	}
	if err != nil {
		return nil, NewExecuteError(q.sql, err)
	}
	out := &RowsAffected{}
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		out.LastInsertID = &id
	}
	return out, nil
}
