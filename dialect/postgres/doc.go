// Package postgres provides the PostgreSQL driver and SQL dialect.
package postgres
