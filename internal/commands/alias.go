// Package commands holds the builtin leaf commands of the shell. Each is a
// consumer of the engine: signatures declare their contract, the evaluator
// binds arguments, and bodies stream values.
package commands

import (
	"context"
	"log/slog"
	"strings"

	"tide/internal/ast"
	"tide/internal/command"
	"tide/internal/config"
	"tide/internal/deduce"
	"tide/internal/errs"
	"tide/internal/lexer"
	"tide/internal/object"
	"tide/internal/sig"
	"tide/internal/token"
)

// Alias defines a shortcut command from a parameter list and a block. The
// parameters are bare names; their shapes are deduced from how each is used
// inside the block.
type Alias struct {
	// ConfigPath overrides the config file used by --save; empty means
	// the default location.
	ConfigPath string
}

func (a *Alias) Name() string { return "alias" }

func (a *Alias) Signature() *sig.Signature {
	return sig.Build("alias").
		Required("name", sig.String, "the name of the alias").
		Required("args", sig.Table, "the arguments to the alias").
		Required("block", sig.Block, "the block to run as the body of the alias").
		SwitchFlag("infer", "infer argument types", 'i').
		SwitchFlag("save", "save the alias to your config", 's')
}

func (a *Alias) Usage() string { return "Define a shortcut for another command." }

func (a *Alias) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	if len(args.Positional) < 3 {
		return nil, errs.NewLabeled("alias expects a name, an argument list and a block",
			"missing arguments", args.Span)
	}
	name := args.StringAt(0)

	decls, err := parseVarDeclarations(args.RawPositional[1])
	if err != nil {
		return nil, err
	}

	blockObj, ok := args.Positional[2].(*object.Block)
	if !ok {
		return nil, errs.NewLabeled("expected a block", "expected a block",
			args.RawPositional[2].Span)
	}

	if args.HasFlag("save") {
		if saveErr := a.save(args.RawInput); saveErr != nil {
			return nil, saveErr
		}
	}

	// A parameterless alias over a single plain call is a pure head
	// rewrite: store it textually so extra arguments pass through to the
	// target. Anything with parameters or pipelines gets a deduced
	// signature and a block-backed command.
	if len(decls) == 0 {
		if words, ok := headRewrite(blockObj.Block); ok {
			slog.Debug("alias registered as head rewrite", slog.String("name", name))
			args.Scope.AddAlias(name, words)
			return object.EmptyStream(), nil
		}
	}

	deductions := deduce.InferVars(decls, blockObj.Block, args.Scope)
	signature := deduce.ToSignature(name, deductions)
	signature.Usage = "alias for: " + blockObj.Inspect()
	slog.Debug("alias registered",
		slog.String("name", name),
		slog.Int("positionals", len(signature.Positional)))

	args.Scope.AddCommand(name, command.FromWholeStream(&BlockCommand{
		Sig:   signature,
		Block: blockObj,
	}))
	return object.EmptyStream(), nil
}

// headRewrite reduces a block to the spanned words of its single call,
// when the block is exactly one pipeline of one call with plain word
// arguments. Blocks with pipes, semicolons or nested blocks do not reduce.
func headRewrite(block *ast.Block) ([]token.Spanned, bool) {
	if block == nil || len(block.Pipelines) != 1 || len(block.Pipelines[0].Calls) != 1 {
		return nil, false
	}
	call := block.Pipelines[0].Calls[0]
	words := []token.Spanned{call.Name}
	for _, arg := range call.Args {
		word, ok := arg.(*ast.Word)
		if !ok {
			return nil, false
		}
		words = append(words, token.NewSpanned(word.Text, word.Span()))
	}
	return words, true
}

// parseVarDeclarations lexes the bracketed parameter list of an alias into
// variable declarations. A trailing `...` marks the sole variadic
// parameter; a var-arg anywhere but last is a hard error at definition
// time, citing the offending variable.
func parseVarDeclarations(raw token.Spanned) ([]deduce.VarDeclaration, *errs.LabeledError) {
	text := raw.Item
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") || len(text) < 2 {
		return nil, errs.NewLabeled("expected a bracketed parameter list", "expected parameters", raw.Span)
	}

	tokens, _ := lexer.Lex(text[1:len(text)-1], raw.Span.Start+1)
	tokens = sig.SplitBaselineOn(tokens, ",")

	var decls []deduce.VarDeclaration
	for _, tok := range tokens {
		if !tok.IsBaseline() || tok.Text == "," {
			continue
		}
		if len(decls) > 0 && decls[len(decls)-1].IsVarArg {
			return nil, errs.NewLabeled(
				"var-args variables are only allowed as the last argument",
				"var-arg must be last argument",
				decls[len(decls)-1].Span)
		}
		name := tok.Text
		isVarArg := strings.HasSuffix(name, "...")
		if isVarArg {
			name = strings.TrimSuffix(name, "...")
		}
		if name == "" {
			return nil, errs.NewLabeled("expected a parameter name", "expected a string", tok.Span)
		}
		decls = append(decls, deduce.VarDeclaration{
			Name:     "$" + name,
			IsVarArg: isVarArg,
			Span:     tok.Span,
		})
	}
	return decls, nil
}

// save persists the alias definition, with the save flag text stripped,
// into the config startup table.
func (a *Alias) save(rawInput string) *errs.LabeledError {
	path := a.ConfigPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return errs.Untagged("could not locate config: %v", err)
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return errs.Untagged("could not read config: %v", err)
	}

	cfg.UpsertStartup(stripSaveFlag(rawInput))
	if err := cfg.Save(path); err != nil {
		return errs.Untagged("could not write config: %v", err)
	}
	return nil
}

// stripSaveFlag removes the --save/-s flag text from the raw alias
// invocation so the saved startup line does not save itself again on
// replay. Only the text outside the block braces is rewritten.
func stripSaveFlag(rawInput string) string {
	leftBrace := strings.Index(rawInput, "{")
	if leftBrace < 0 {
		leftBrace = 0
	}
	rightBrace := strings.LastIndex(rawInput, "}")
	if rightBrace < 0 {
		rightBrace = len(rawInput)
	}

	strip := func(s string) string {
		s = strings.ReplaceAll(s, "--save", "")
		s = strings.ReplaceAll(s, "-si", "-i")
		s = strings.ReplaceAll(s, "-is", "-i")
		s = strings.ReplaceAll(s, "-s ", "")
		return s
	}

	left := strip(rawInput[:leftBrace])
	right := strip(rawInput[rightBrace:])
	result := left + rawInput[leftBrace:rightBrace] + right
	return strings.TrimSpace(result)
}
