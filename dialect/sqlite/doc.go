// Package sqlite provides the SQLite driver and SQL dialect.
package sqlite
