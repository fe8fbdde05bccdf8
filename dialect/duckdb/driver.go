package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
	duckdbgo "github.com/duckdb/duckdb-go/v2"
)

// Driver connects to DuckDB files and in-memory databases with URLs of the
// form duckdb://path/to/file.db, or duckdb:// for a transient database.
type Driver struct {
	writer *Writer
}

func init() {
	tank.RegisterDriver(&Driver{writer: NewWriter()})
}

func (d *Driver) Name() string {
	return "duckdb"
}

func (d *Driver) Writer() tank.SqlWriter {
	return d.writer
}

func (d *Driver) Open(ctx context.Context, url string) (*sql.DB, error) {
	dsn := strings.TrimPrefix(url, "duckdb://")
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// AppendRows loads rows through DuckDB's native appender, which is much
// faster than multi-row INSERT for bulk loads. Rows must carry every column
// of the table in declaration order.
func (d *Driver) AppendRows(ctx context.Context, conn *sql.Conn, info *tank.TableInfo, rows [][]tank.LabeledValue) error {
	if len(rows) == 0 {
		return nil
	}
	return conn.Raw(func(dc any) error {
		raw, ok := dc.(driver.Conn)
		if !ok {
			return tank.NewContractError("connection %T does not expose a duckdb handle", dc)
		}
		appender, err := duckdbgo.NewAppenderFromConn(raw, info.Table.Schema, info.Table.Name)
		if err != nil {
			return tank.NewIOError("append", err)
		}
		args := make([]driver.Value, len(info.Columns))
		for _, row := range rows {
			if len(row) != len(args) {
				appender.Close()
				return tank.NewContractError("append row has %d values, table %s has %d columns", len(row), info.Table.Name, len(args))
			}
			for i, f := range row {
				v, err := appendArg(f.Value)
				if err != nil {
					appender.Close()
					return tank.NewBindError(i, err)
				}
				args[i] = v
			}
			if err := appender.AppendRow(args...); err != nil {
				appender.Close()
				return tank.NewIOError("append", err)
			}
		}
		if err := appender.Close(); err != nil {
			return tank.NewIOError("append", err)
		}
		return nil
	})
}

// appendArg converts a value to the native representation the appender
// expects for its column.
func appendArg(v tank.Value) (driver.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Kind() {
	case tank.KindInterval:
		iv := v.Payload().(tank.Interval)
		return duckdbgo.Interval{
			Months: int32(iv.Months),
			Days:   int32(iv.Days),
			Micros: iv.Nanos / 1_000,
		}, nil
	case tank.KindChar:
		return string(v.Payload().(rune)), nil
	case tank.KindUUID:
		return fmt.Sprint(v.Payload()), nil
	case tank.KindDecimal, tank.KindInt128, tank.KindUInt128:
		return fmt.Sprint(v.Payload()), nil
	case tank.KindList, tank.KindArray:
		items := v.Items()
		out := make([]driver.Value, len(items))
		for i, item := range items {
			a, err := appendArg(item)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	case tank.KindMap, tank.KindStruct:
		return nil, tank.NewConversionError(v.Kind().String(), "appender value")
	default:
		return v.Payload(), nil
	}
}
