package tank

import (
	"database/sql"
	"strings"
)

// Query is a piece of SQL ready to run, optionally prepared and carrying
// bound arguments. A Query built by Prepare holds the cached statement
// handle; a raw Query travels as text.
type Query struct {
	sql  string
	prep *Prepared
	args []any
}

// NewQuery wraps raw SQL in a Query.
func NewQuery(sql string) *Query {
	return &Query{sql: sql}
}

// SQL returns the statement text.
func (q *Query) SQL() string {
	return q.sql
}

// Prepared reports whether the query carries a prepared statement.
func (q *Query) Prepared() bool {
	return q.prep != nil
}

// Bind appends values as positional arguments, lowering each to a driver
// type. The first value that cannot be lowered fails with its position.
func (q *Query) Bind(values ...Value) error {
	for i, v := range values {
		arg, err := driverArg(v)
		if err != nil {
			return NewBindError(len(q.args)+i, err)
		}
		q.args = append(q.args, arg)
	}
	return nil
}

// BindArgs appends raw driver arguments without conversion.
func (q *Query) BindArgs(args ...any) {
	q.args = append(q.args, args...)
}

// Args returns the bound arguments.
func (q *Query) Args() []any {
	return q.args
}

// Reset drops the bound arguments so the query can run again.
func (q *Query) Reset() {
	q.args = q.args[:0]
}

// Prepared is a statement handle shared through the per-connection cache.
type Prepared struct {
	sql  string
	stmt *sql.Stmt
}

// SQL returns the statement text.
func (p *Prepared) SQL() string {
	return p.sql
}

// Close releases the statement handle.
func (p *Prepared) Close() error {
	return p.stmt.Close()
}

// returnsRows guesses from the leading keyword whether a statement
// produces a result set.
func returnsRows(sql string) bool {
	s := strings.TrimSpace(sql)
	for {
		if strings.HasPrefix(s, "--") {
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = strings.TrimSpace(s[i+1:])
				continue
			}
			return false
		}
		if strings.HasPrefix(s, "/*") {
			if i := strings.Index(s, "*/"); i >= 0 {
				s = strings.TrimSpace(s[i+2:])
				continue
			}
			return false
		}
		break
	}
	end := 0
	for end < len(s) && (s[end] >= 'a' && s[end] <= 'z' || s[end] >= 'A' && s[end] <= 'Z') {
		end++
	}
	switch strings.ToUpper(s[:end]) {
	case "SELECT", "WITH", "VALUES", "SHOW", "PRAGMA", "DESCRIBE", "EXPLAIN", "TABLE":
		return true
	default:
		return false
	}
}
