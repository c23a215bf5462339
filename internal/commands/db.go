package commands

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/object"
	"tide/internal/sig"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Db struct{}

func (d *Db) Name() string { return "db" }

func (d *Db) Signature() *sig.Signature {
	return sig.Build("db").
		Required("dsn", sig.String, "the data source name to connect with").
		Required("query", sig.String, "the SQL query to run").
		NamedFlag("driver", sig.String, "the database driver (default sqlite3)", 'd')
}

func (d *Db) Usage() string { return "Run a SQL query and stream the result rows." }

func (d *Db) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	dsn := args.StringAt(0)
	query := args.StringAt(1)
	driver := "sqlite3"
	if v, ok := args.Flag("driver"); ok {
		if s, ok := v.(*object.String); ok {
			driver = s.Value
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errs.NewLabeled(fmt.Sprintf("failed to open connection: %v", err),
			"connection failed", args.Span)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		db.Close()
		return nil, errs.NewLabeled(fmt.Sprintf("query failed: %v", err),
			"query failed", args.Span)
	}

	out := make(chan object.Object)
	go func() {
		defer close(out)
		defer db.Close()
		defer rows.Close()
		streamRows(ctx, out, rows)
	}()
	return out, nil
}

func streamRows(ctx context.Context, out chan<- object.Object, rows *sql.Rows) {
	columns, err := rows.Columns()
	if err != nil {
		emit(ctx, out, object.NewError("failed to read columns: %v", err))
		return
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			emit(ctx, out, object.NewError("scan failed: %v", err))
			return
		}

		row := object.NewRow()
		for i, col := range columns {
			row.Set(col, columnValue(values[i]))
		}
		select {
		case out <- row:
		case <-ctx.Done():
			return
		}
	}
	if err := rows.Err(); err != nil {
		emit(ctx, out, object.NewError("row iteration failed: %v", err))
	}
}

func emit(ctx context.Context, out chan<- object.Object, obj object.Object) {
	select {
	case out <- obj:
	case <-ctx.Done():
	}
}

func columnValue(v any) object.Object {
	if v == nil {
		return object.NIL
	}
	switch x := v.(type) {
	case int64:
		return &object.Integer{Value: x}
	case float64:
		return &object.Decimal{Value: x}
	case []byte:
		return &object.String{Value: string(x)}
	case string:
		return &object.String{Value: x}
	case bool:
		return object.NativeBoolToBooleanObject(x)
	case time.Time:
		return &object.Date{Value: x}
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}
