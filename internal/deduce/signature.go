package deduce

import (
	"tide/internal/sig"
	"tide/internal/token"
)

// Resolve picks one shape from a variable's collected hypotheses. The
// tie-break is deliberate and ordered: Any subsumes everything and wins
// outright; otherwise an arithmetic-context hypothesis outranks a single
// literal-positional use; otherwise the first hypothesis in source-scan
// order stands. Conflicting shapes are never intersected or rejected.
func Resolve(deductions []VarShapeDeduction) VarShapeDeduction {
	for _, d := range deductions {
		if d.Deduction == sig.Any {
			return d
		}
	}
	for _, d := range deductions {
		if d.Deduction == sig.Math {
			return d
		}
	}
	return deductions[0]
}

// ToSignature translates resolved deductions into the alias's signature:
// each variable becomes a mandatory positional parameter carrying its
// deduced shape; a never-referenced variable defaults to Any. A trailing
// var-arg declaration gives up its positional slot for the signature's
// single rest-parameter slot.
func ToSignature(name string, results []VarDeduction) *sig.Signature {
	signature := sig.Build(name)

	resolved := make([]VarShapeDeduction, len(results))
	for idx, result := range results {
		if result.Deductions == nil {
			resolved[idx] = VarShapeDeduction{
				Deduction:    sig.Any,
				DeductedFrom: []token.Span{token.UnknownSpan()},
			}
		} else {
			resolved[idx] = Resolve(result.Deductions)
		}
		signature.Positional = append(signature.Positional, sig.Positional{
			Type: sig.MandatoryPositional(results[idx].Decl.Name, resolved[idx].Deduction),
		})
	}

	if len(results) > 0 && results[len(results)-1].Decl.IsVarArg {
		last := len(results) - 1
		signature.Positional = signature.Positional[:last]
		signature.WithRest(results[last].Decl.Name, resolved[last].Deduction, "")
	}

	return signature
}
