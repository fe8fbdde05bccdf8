// Package tank is a typed SQL access layer with pluggable database drivers.
//
// Entities are plain Go structs annotated with `tank:"..."` tags. The
// package derives table metadata from them, renders dialect-correct SQL
// through a driver's SqlWriter and maps rows back onto struct fields with
// checked conversions. Connections, transactions and prepared statement
// caching sit on top of database/sql, so every driver with a database/sql
// implementation can be plugged in by registering a Driver for its URL
// scheme.
package tank
