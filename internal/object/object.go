// Package object defines the dynamically-typed value model that flows
// through pipelines.
package object

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"tide/internal/ast"
	"tide/internal/token"
)

const (
	NIL_OBJ     = "NIL"
	BOOLEAN_OBJ = "BOOLEAN"
	INTEGER_OBJ = "INTEGER"
	DECIMAL_OBJ = "DECIMAL"
	STRING_OBJ  = "STRING"
	LIST_OBJ    = "LIST"
	ROW_OBJ     = "ROW"
	BLOCK_OBJ   = "BLOCK"
	DATE_OBJ    = "DATE"
	ERROR_OBJ   = "ERROR"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Decimal struct {
	Value float64
}

func (d *Decimal) Type() ObjectType { return DECIMAL_OBJ }
func (d *Decimal) Inspect() string  { return strconv.FormatFloat(d.Value, 'g', -1, 64) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type List struct {
	Items []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		parts = append(parts, item.Inspect())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Row is one record of a table value: ordered column names with a value per
// column. Streams of rows are what table-shaped commands produce.
type Row struct {
	Cols    []string
	Entries map[string]Object
}

func NewRow() *Row {
	return &Row{Entries: make(map[string]Object)}
}

func (r *Row) Set(col string, value Object) *Row {
	if _, ok := r.Entries[col]; !ok {
		r.Cols = append(r.Cols, col)
	}
	r.Entries[col] = value
	return r
}

func (r *Row) Get(col string) (Object, bool) {
	v, ok := r.Entries[col]
	return v, ok
}

func (r *Row) Type() ObjectType { return ROW_OBJ }
func (r *Row) Inspect() string {
	parts := make([]string, 0, len(r.Cols))
	for _, col := range r.Cols {
		parts = append(parts, fmt.Sprintf("%s: %s", col, r.Entries[col].Inspect()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Block is a parsed but not yet evaluated block of code, carried as a value
// so commands like alias and def can hold on to their bodies.
type Block struct {
	Block *ast.Block
	Raw   string
}

func (b *Block) Type() ObjectType { return BLOCK_OBJ }
func (b *Block) Inspect() string {
	if b.Raw != "" {
		return b.Raw
	}
	return "{ ... }"
}

type Date struct {
	Value time.Time
}

func (d *Date) Type() ObjectType { return DATE_OBJ }
func (d *Date) Inspect() string  { return d.Value.Format(time.RFC3339) }

// Error is a failed invocation surfaced as a value in the output sequence
// instead of crashing the pipeline.
type Error struct {
	Message string
	Label   string
	Span    token.Span
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	if e.Label != "" {
		return fmt.Sprintf("error: %s (%s)", e.Message, e.Label)
	}
	return "error: " + e.Message
}

func NewError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: token.UnknownSpan()}
}

func IsError(obj Object) bool {
	return obj != nil && obj.Type() == ERROR_OBJ
}

// SortedColumns returns the union of column names across rows, sorted.
// Used for introspection output, not for resolution order.
func SortedColumns(rows []*Row) []string {
	seen := map[string]struct{}{}
	var cols []string
	for _, row := range rows {
		for _, col := range row.Cols {
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
