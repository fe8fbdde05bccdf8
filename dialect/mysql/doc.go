// Package mysql provides the MySQL and MariaDB driver and SQL dialect.
package mysql
