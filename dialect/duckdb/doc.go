// Package duckdb provides the DuckDB driver and SQL dialect.
package duckdb
