package object

import "testing"

func TestListInspect(t *testing.T) {
	list := &List{Items: []Object{
		&Integer{Value: 1},
		&String{Value: "two"},
		TRUE,
	}}
	want := "[1, two, true]"
	if got := list.Inspect(); got != want {
		t.Errorf("wrong inspect. got=%q, want=%q", got, want)
	}
}

func TestRowInspectKeepsColumnOrder(t *testing.T) {
	row := NewRow().
		Set("name", &String{Value: "go.mod"}).
		Set("size", &Integer{Value: 120})

	want := "{name: go.mod, size: 120}"
	if got := row.Inspect(); got != want {
		t.Errorf("wrong inspect. got=%q, want=%q", got, want)
	}
}

func TestRowSetOverwriteKeepsSingleColumn(t *testing.T) {
	row := NewRow().
		Set("a", &Integer{Value: 1}).
		Set("a", &Integer{Value: 2})

	if len(row.Cols) != 1 {
		t.Fatalf("overwrite must not duplicate the column. got=%v", row.Cols)
	}
	v, _ := row.Get("a")
	if v.(*Integer).Value != 2 {
		t.Errorf("overwrite must keep the newer value. got=%s", v.Inspect())
	}
}

func TestBooleanSingletons(t *testing.T) {
	if NativeBoolToBooleanObject(true) != TRUE {
		t.Errorf("true must map to the TRUE singleton")
	}
	if NativeBoolToBooleanObject(false) != FALSE {
		t.Errorf("false must map to the FALSE singleton")
	}
}

func TestIsError(t *testing.T) {
	if !IsError(NewError("boom")) {
		t.Errorf("error object not recognized")
	}
	if IsError(&Integer{Value: 1}) {
		t.Errorf("integer misclassified as error")
	}
	if IsError(nil) {
		t.Errorf("nil misclassified as error")
	}
}

func TestSortedColumns(t *testing.T) {
	rows := []*Row{
		NewRow().Set("b", NIL).Set("a", NIL),
		NewRow().Set("c", NIL).Set("a", NIL),
	}
	cols := SortedColumns(rows)
	want := []string{"a", "b", "c"}
	if len(cols) != len(want) {
		t.Fatalf("wrong column count. got=%v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("cols[%d] wrong. got=%q, want=%q", i, cols[i], want[i])
		}
	}
}
