// Package sig defines the argument type system of the language (syntax
// shapes), command signatures, and the parser for the compact signature
// literal grammar used by def and friends.
package sig

// SyntaxShape is the closed set of argument kinds the grammar understands.
// It is used both to declare the expected shape of an argument and as the
// unit of shape deduction for alias parameters.
type SyntaxShape int

const (
	Any SyntaxShape = iota
	String
	Int
	Number
	// Math marks a value used inside an arithmetic expression.
	Math
	Block
	Table
	ColumnPath
	FilePath
	Pattern
	Range
)

var shapeNames = map[SyntaxShape]string{
	Any:        "any",
	String:     "string",
	Int:        "int",
	Number:     "number",
	Math:       "math",
	Block:      "block",
	Table:      "table",
	ColumnPath: "column-path",
	FilePath:   "path",
	Pattern:    "pattern",
	Range:      "range",
}

func (s SyntaxShape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ShapeFromName resolves a type annotation in a signature literal.
func ShapeFromName(name string) (SyntaxShape, bool) {
	for shape, shapeName := range shapeNames {
		if shapeName == name {
			return shape, true
		}
	}
	return Any, false
}
