package tank

import (
	"database/sql"
)

// QueryResult is one item produced by running a query: either a fetched
// row or the summary of a data-changing statement.
type QueryResult interface {
	queryResult()
}

// RowLabeled is a fetched row with its column labels. Labels are shared
// between all rows of one result set.
type RowLabeled struct {
	Labels []string
	Values []any
}

func (*RowLabeled) queryResult() {}

// Get returns the value under the label, ok=false when absent.
func (r *RowLabeled) Get(label string) (any, bool) {
	for i, l := range r.Labels {
		if l == label {
			return r.Values[i], true
		}
	}
	return nil, false
}

// RowsAffected summarizes a data-changing statement. LastInsertID is nil
// when the driver does not report one.
type RowsAffected struct {
	RowsAffected int64
	LastInsertID *int64
}

func (*RowsAffected) queryResult() {}

// ResultStream yields the results of Run one at a time. Iterate with Next,
// read with Result, then check Err; Close is idempotent and releases the
// underlying cursor.
type ResultStream struct {
	rows    *sql.Rows
	labels  []string
	exec    *RowsAffected
	current QueryResult
	err     error
	closed  bool
}

func streamFromRows(rows *sql.Rows) *ResultStream {
	labels, err := rows.Columns()
	if err != nil {
		rows.Close()
		return &ResultStream{err: err, closed: true}
	}
	return &ResultStream{rows: rows, labels: labels}
}

func streamFromExec(res *RowsAffected) *ResultStream {
	return &ResultStream{exec: res}
}

func streamFromError(err error) *ResultStream {
	return &ResultStream{err: err, closed: true}
}

// Next advances the stream. It returns false at the end or on error.
func (s *ResultStream) Next() bool {
	if s.err != nil || s.closed {
		return false
	}
	if s.exec != nil {
		s.current, s.exec = s.exec, nil
		return true
	}
	if s.rows == nil {
		return false
	}
	// Multi-statement queries come back as one result set per statement;
	// when a set runs out, move to the next one and pick up its labels.
	for !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			s.err = err
			s.Close()
			return false
		}
		if !s.rows.NextResultSet() {
			s.Close()
			return false
		}
		labels, err := s.rows.Columns()
		if err != nil {
			s.err = err
			s.Close()
			return false
		}
		s.labels = labels
	}
	values := make([]any, len(s.labels))
	ptrs := make([]any, len(s.labels))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		s.err = err
		s.Close()
		return false
	}
	s.current = &RowLabeled{Labels: s.labels, Values: values}
	return true
}

// Result returns the item read by the last successful Next.
func (s *ResultStream) Result() QueryResult {
	return s.current
}

// Err returns the first error the stream hit.
func (s *ResultStream) Err() error {
	return s.err
}

// Close releases the underlying cursor.
func (s *ResultStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.rows != nil {
		return s.rows.Close()
	}
	return nil
}

// RowStream yields only fetched rows, skipping statement summaries.
type RowStream struct {
	inner *ResultStream
}

// Next advances to the next row.
func (s *RowStream) Next() bool {
	for s.inner.Next() {
		if _, ok := s.inner.Result().(*RowLabeled); ok {
			return true
		}
	}
	return false
}

// Row returns the row read by the last successful Next.
func (s *RowStream) Row() *RowLabeled {
	row, _ := s.inner.Result().(*RowLabeled)
	return row
}

// Err returns the first error the stream hit.
func (s *RowStream) Err() error {
	return s.inner.Err()
}

// Close releases the underlying cursor.
func (s *RowStream) Close() error {
	return s.inner.Close()
}

// One drains the stream into at most one row, closing it.
func (s *RowStream) One() (*RowLabeled, error) {
	defer s.Close()
	if !s.Next() {
		return nil, s.Err()
	}
	return s.Row(), nil
}

// All drains the stream into a slice, closing it.
func (s *RowStream) All() ([]*RowLabeled, error) {
	defer s.Close()
	var rows []*RowLabeled
	for s.Next() {
		rows = append(rows, s.Row())
	}
	return rows, s.Err()
}
