// Package deduce statically infers syntax shapes for the untyped free
// variables of an alias by walking every command invocation in its block and
// recording what shape each variable's syntactic position expects.
package deduce

import (
	"log/slog"

	"tide/internal/ast"
	"tide/internal/sig"
	"tide/internal/token"
)

// VarDeclaration is one free variable from an alias's bracketed parameter
// list. Names are stored dollar-prefixed, matching how the variable is
// referenced inside the block.
type VarDeclaration struct {
	Name     string
	IsVarArg bool
	Span     token.Span
}

// VarShapeDeduction is one hypothesis about a variable's shape, tagged with
// the source locations that produced it. ManyOfShapes marks a hypothesis
// from a variadic position, where the variable stands for several values.
type VarShapeDeduction struct {
	Deduction    sig.SyntaxShape
	DeductedFrom []token.Span
	ManyOfShapes bool
}

// VarDeduction pairs a declaration with its collected hypotheses. A nil
// Deductions slice means the variable was never referenced in a position
// deduction could analyze; a referenced variable always records at least one
// hypothesis, if only the catch-all Any.
type VarDeduction struct {
	Decl       VarDeclaration
	Deductions []VarShapeDeduction
}

// SignatureLookup resolves callee signatures during the walk; the evaluation
// scope implements it.
type SignatureLookup interface {
	GetSignature(name string) (*sig.Signature, bool)
}

// InferVars walks the block and collects shape hypotheses for each declared
// variable.
func InferVars(decls []VarDeclaration, block *ast.Block, lookup SignatureLookup) []VarDeduction {
	d := &deductor{
		declared: make(map[string]int, len(decls)),
		found:    make([][]VarShapeDeduction, len(decls)),
		lookup:   lookup,
	}
	for idx, decl := range decls {
		d.declared[decl.Name] = idx
	}

	d.walkBlock(block)

	results := make([]VarDeduction, len(decls))
	for idx, decl := range decls {
		results[idx] = VarDeduction{Decl: decl, Deductions: d.found[idx]}
		slog.Debug("deduction collected",
			slog.String("var", decl.Name),
			slog.Int("hypotheses", len(d.found[idx])))
	}
	return results
}

type deductor struct {
	declared map[string]int
	found    [][]VarShapeDeduction
	lookup   SignatureLookup
}

func (d *deductor) record(name string, shape sig.SyntaxShape, span token.Span, manyOf bool) {
	idx, ok := d.declared[name]
	if !ok {
		return
	}
	d.found[idx] = append(d.found[idx], VarShapeDeduction{
		Deduction:    shape,
		DeductedFrom: []token.Span{span},
		ManyOfShapes: manyOf,
	})
}

func (d *deductor) walkBlock(block *ast.Block) {
	if block == nil {
		return
	}
	for _, pipeline := range block.Pipelines {
		for _, call := range pipeline.Calls {
			d.walkCall(call)
		}
	}
}

func (d *deductor) walkCall(call *ast.Call) {
	signature, known := d.lookup.GetSignature(call.Name.Item)

	posIdx := 0
	skipNext := false
	for k, arg := range call.Args {
		if skipNext {
			skipNext = false
			continue
		}
		switch a := arg.(type) {
		case *ast.BlockArg:
			d.walkBlock(a.Block)
			posIdx++
		case *ast.Word:
			switch {
			case a.IsFlag():
				entry, valued := d.flagEntry(signature, known, a.Text)
				if !valued {
					continue
				}
				// the next argument is the flag's value
				if k+1 < len(call.Args) {
					switch next := call.Args[k+1].(type) {
					case *ast.Word:
						if next.IsVar() {
							d.record(next.Text, entry.Type.Shape, next.Span(), false)
						}
					case *ast.BlockArg:
						d.walkBlock(next.Block)
					}
					skipNext = true
				}
			case a.IsOperator():
				// operators occupy no positional slot
			case a.IsVar():
				d.recordPositionalUse(call, signature, known, k, posIdx, a)
				posIdx++
			default:
				posIdx++
			}
		}
	}
}

// recordPositionalUse records the hypothesis for one variable occurrence in
// a positional slot. An arithmetic context outranks the slot's declared
// shape; an unresolvable callee or an out-of-signature position degrades to
// the catch-all Any.
func (d *deductor) recordPositionalUse(call *ast.Call, signature *sig.Signature, known bool, argIdx, posIdx int, word *ast.Word) {
	if d.adjacentToOperator(call, argIdx) {
		d.record(word.Text, sig.Math, word.Span(), false)
		return
	}
	switch {
	case !known:
		d.record(word.Text, sig.Any, word.Span(), false)
	case posIdx < len(signature.Positional):
		d.record(word.Text, signature.Positional[posIdx].Type.Shape, word.Span(), false)
	case signature.Rest != nil:
		d.record(word.Text, signature.Rest.Shape, word.Span(), true)
	default:
		d.record(word.Text, sig.Any, word.Span(), false)
	}
}

func (d *deductor) adjacentToOperator(call *ast.Call, argIdx int) bool {
	if argIdx > 0 {
		if w, ok := call.Args[argIdx-1].(*ast.Word); ok && w.IsOperator() {
			return true
		}
	}
	if argIdx+1 < len(call.Args) {
		if w, ok := call.Args[argIdx+1].(*ast.Word); ok && w.IsOperator() {
			return true
		}
	}
	return false
}

func (d *deductor) flagEntry(signature *sig.Signature, known bool, text string) (sig.NamedEntry, bool) {
	if !known {
		return sig.NamedEntry{}, false
	}
	if len(text) > 2 && text[0] == '-' && text[1] == '-' {
		entry, ok := signature.Named[text[2:]]
		return entry, ok && entry.Type.Kind == sig.OptionalValue
	}
	if len(text) == 2 && text[0] == '-' {
		_, entry, ok := signature.FindShort(rune(text[1]))
		return entry, ok && entry.Type.Kind == sig.OptionalValue
	}
	return sig.NamedEntry{}, false
}
