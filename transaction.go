package tank

import (
	"context"
	"database/sql"
)

// Transaction scopes queries to a database transaction on its parent
// connection. Commit and Rollback finalize it; a second finalization is a
// contract violation. Close rolls back when the transaction is still live,
// so `defer tx.Close()` is always safe.
type Transaction struct {
	conn *Connection
	tx   *sql.Tx
	done bool
}

// Driver returns the parent connection's driver.
func (t *Transaction) Driver() Driver {
	return t.conn.drv
}

// Writer returns the dialect printer of the parent connection.
func (t *Transaction) Writer() SqlWriter {
	return t.conn.Writer()
}

// Prepare readies a statement through the parent connection's cache. The
// handle is rebound onto the transaction at execution time.
func (t *Transaction) Prepare(ctx context.Context, sqlText string) (*Query, error) {
	if t.done {
		return nil, NewContractError("prepare on a finalized transaction")
	}
	return t.conn.Prepare(ctx, sqlText)
}

// Run executes the query inside the transaction.
func (t *Transaction) Run(ctx context.Context, q *Query) *ResultStream {
	if t.done {
		return streamFromError(ErrTxDone)
	}
	return run(ctx, t.tx, t.tx, q)
}

// Fetch executes the query inside the transaction and streams its rows.
func (t *Transaction) Fetch(ctx context.Context, q *Query) *RowStream {
	if t.done {
		return &RowStream{inner: streamFromError(ErrTxDone)}
	}
	return fetch(ctx, t.tx, t.tx, q)
}

// Execute runs a data-changing statement inside the transaction.
func (t *Transaction) Execute(ctx context.Context, q *Query) (*RowsAffected, error) {
	if t.done {
		return nil, ErrTxDone
	}
	return execute(ctx, t.tx, t.tx, q)
}

// Commit makes the transaction's changes durable and finalizes it.
func (t *Transaction) Commit() error {
	if t.done {
		return NewContractError("commit on a finalized transaction")
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return NewIOError("commit", err)
	}
	return nil
}

// Rollback discards the transaction's changes and finalizes it.
func (t *Transaction) Rollback() error {
	if t.done {
		return NewContractError("rollback on a finalized transaction")
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		return NewIOError("rollback", err)
	}
	return nil
}

// Close rolls back the transaction if it is still live. Closing a
// finalized transaction is a no-op.
func (t *Transaction) Close() error {
	if t.done {
		return nil
	}
	return t.Rollback()
}
