package eval

import (
	"fmt"
	"strconv"
	"strings"

	"tide/internal/ast"
	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/lexer"
	"tide/internal/object"
	"tide/internal/sig"
	"tide/internal/token"
)

// bindArgs classifies a call's raw arguments against the callee signature:
// flags are matched to named entries, everything else fills positional
// slots typed by the declared shape. Violations are semantic errors that
// abort the invocation.
func bindArgs(call *ast.Call, signature *sig.Signature, ns command.NameSpace) (*command.Args, *errs.LabeledError) {
	args := &command.Args{Named: make(map[string]object.Object)}

	// --help anywhere wins before any binding can fail
	for _, arg := range call.Args {
		if w, ok := arg.(*ast.Word); ok && (w.Text == "--help" || w.Text == "-h") {
			args.Named["help"] = object.TRUE
			return args, nil
		}
	}

	posIdx := 0
	skipNext := false
	for k, arg := range call.Args {
		if skipNext {
			skipNext = false
			continue
		}

		word, isWord := arg.(*ast.Word)
		if isWord && word.IsFlag() {
			name, entry, flagErr := resolveFlag(signature, word)
			if flagErr != nil {
				return nil, flagErr
			}
			if entry.Type.Kind == sig.Switch {
				args.Named[name] = object.TRUE
				continue
			}
			if k+1 >= len(call.Args) {
				return nil, errs.NewLabeled(
					fmt.Sprintf("flag --%s requires a value", name),
					"missing flag value", word.Span())
			}
			value, valueErr := evalArg(call.Args[k+1], entry.Type.Shape, ns)
			if valueErr != nil {
				return nil, valueErr
			}
			args.Named[name] = value
			skipNext = true
			continue
		}

		shape, shapeErr := positionalShape(signature, posIdx, arg.Span())
		if shapeErr != nil {
			return nil, shapeErr
		}
		value, valueErr := evalArg(arg, shape, ns)
		if valueErr != nil {
			return nil, valueErr
		}
		args.Positional = append(args.Positional, value)
		args.RawPositional = append(args.RawPositional, rawArg(arg))
		posIdx++
	}

	if posIdx < signature.MandatoryCount() {
		missing := signature.Positional[posIdx].Type.Name
		return nil, errs.NewLabeled(
			fmt.Sprintf("missing mandatory positional argument '%s'", missing),
			"required parameter", call.Span)
	}

	return args, nil
}

func resolveFlag(signature *sig.Signature, word *ast.Word) (string, sig.NamedEntry, *errs.LabeledError) {
	if name, ok := strings.CutPrefix(word.Text, "--"); ok {
		if entry, found := signature.Named[name]; found {
			return name, entry, nil
		}
		return "", sig.NamedEntry{}, unknownFlag(word)
	}
	short := strings.TrimPrefix(word.Text, "-")
	if len(short) == 1 {
		if name, entry, found := signature.FindShort(rune(short[0])); found {
			return name, entry, nil
		}
	}
	return "", sig.NamedEntry{}, unknownFlag(word)
}

func unknownFlag(word *ast.Word) *errs.LabeledError {
	return errs.NewLabeled(
		fmt.Sprintf("unknown flag '%s'", word.Text),
		"unknown flag", word.Span())
}

func positionalShape(signature *sig.Signature, posIdx int, span token.Span) (sig.SyntaxShape, *errs.LabeledError) {
	if posIdx < len(signature.Positional) {
		return signature.Positional[posIdx].Type.Shape, nil
	}
	if signature.Rest != nil {
		return signature.Rest.Shape, nil
	}
	return sig.Any, errs.NewLabeled("extra positional argument", "unexpected argument", span)
}

func evalArg(arg ast.Arg, shape sig.SyntaxShape, ns command.NameSpace) (object.Object, *errs.LabeledError) {
	switch a := arg.(type) {
	case *ast.BlockArg:
		return &object.Block{Block: a.Block, Raw: a.Raw}, nil
	case *ast.Word:
		return evalWord(a, shape, ns)
	}
	return nil, errs.NewLabeled("unsupported argument", "internal error", arg.Span())
}

func evalWord(word *ast.Word, shape sig.SyntaxShape, ns command.NameSpace) (object.Object, *errs.LabeledError) {
	if word.IsVar() {
		value, ok := ns.GetVar(word.Text)
		if !ok {
			return nil, errs.NewLabeled(
				fmt.Sprintf("variable '%s' not found", word.Text),
				"unknown variable", word.Span())
		}
		return value, nil
	}

	text := lexer.Unquote(word.Text)
	switch shape {
	case sig.Int:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, shapeMismatch(word, shape)
		}
		return &object.Integer{Value: n}, nil
	case sig.Number, sig.Math:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return &object.Integer{Value: n}, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return &object.Decimal{Value: f}, nil
		}
		return nil, shapeMismatch(word, shape)
	case sig.Block:
		return nil, shapeMismatch(word, shape)
	case sig.Table:
		return evalTableLiteral(word)
	case sig.Any:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return &object.Integer{Value: n}, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return &object.Decimal{Value: f}, nil
		}
		return &object.String{Value: text}, nil
	default:
		// String, FilePath, Pattern, ColumnPath, Range
		return &object.String{Value: text}, nil
	}
}

func shapeMismatch(word *ast.Word, shape sig.SyntaxShape) *errs.LabeledError {
	return errs.NewLabeled(
		fmt.Sprintf("expected %s, got %q", shape, word.Text),
		"type mismatch", word.Span())
}

// evalTableLiteral turns a bracketed list `[a b 3]` into a list value.
func evalTableLiteral(word *ast.Word) (object.Object, *errs.LabeledError) {
	text := word.Text
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, shapeMismatch(word, sig.Table)
	}
	tokens, _ := lexer.Lex(text[1:len(text)-1], word.Span().Start+1)
	tokens = sig.SplitBaselineOn(tokens, ",")

	list := &object.List{}
	for _, tok := range tokens {
		if !tok.IsBaseline() || tok.Text == "," {
			continue
		}
		item := lexer.Unquote(tok.Text)
		if n, err := strconv.ParseInt(item, 10, 64); err == nil {
			list.Items = append(list.Items, &object.Integer{Value: n})
		} else {
			list.Items = append(list.Items, &object.String{Value: item})
		}
	}
	return list, nil
}

func rawArg(arg ast.Arg) token.Spanned {
	switch a := arg.(type) {
	case *ast.Word:
		return token.NewSpanned(a.Text, a.WordSpan)
	case *ast.BlockArg:
		return token.NewSpanned(a.Raw, a.Block.Span)
	}
	return token.Spanned{}
}
