// Package eval executes parsed blocks against a scope, streaming values
// between chained commands. Pipelines run in order; within a pipeline each
// stage pulls from its upstream, and every producing loop checks for
// cancellation between items.
package eval

import (
	"context"
	"log/slog"

	"tide/internal/ast"
	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/object"
	"tide/internal/token"
)

// Run evaluates a block. src is the text the block's spans index into, used
// to recover the raw text of an invocation. Grammar-level problems inside a
// pipeline surface as a single error value in the output sequence; the
// remaining pipelines still run.
func Run(ctx context.Context, block *ast.Block, ns command.NameSpace, input object.Stream, src string) (object.Stream, error) {
	if block.IsEmpty() {
		return object.EmptyStream(), nil
	}

	out := make(chan object.Object)
	go func() {
		defer close(out)
		current := input
		for n, pipeline := range block.Pipelines {
			if ctx.Err() != nil {
				return
			}
			// only the first pipeline sees the caller's input
			if n > 0 {
				current = object.EmptyStream()
			}
			stream, err := runPipeline(ctx, pipeline, ns, current, src)
			if err != nil {
				slog.Debug("pipeline failed", slog.String("error", err.Error()))
				select {
				case out <- errorValue(err):
				case <-ctx.Done():
				}
				continue
			}
			object.Forward(ctx, out, stream)
		}
	}()
	return out, nil
}

// RunCollect evaluates a block and drains its output. Convenient for
// callers that must finish evaluation before tearing down a scope frame.
func RunCollect(ctx context.Context, block *ast.Block, ns command.NameSpace, input object.Stream, src string) ([]object.Object, error) {
	stream, err := Run(ctx, block, ns, input, src)
	if err != nil {
		return nil, err
	}
	return object.Collect(ctx, stream), nil
}

func runPipeline(ctx context.Context, pipeline *ast.Pipeline, ns command.NameSpace, input object.Stream, src string) (object.Stream, error) {
	current := input
	for _, call := range pipeline.Calls {
		stream, err := evalCall(ctx, call, ns, current, src)
		if err != nil {
			return nil, err
		}
		current = stream
	}
	return current, nil
}

// evalCall resolves and invokes one command. Semantic errors in argument
// binding abort the call and propagate; a failure of the command body
// instead yields a single error value so the pipeline's consumer sees it as
// data.
func evalCall(ctx context.Context, call *ast.Call, ns command.NameSpace, input object.Stream, src string) (object.Stream, error) {
	call = expandAlias(call, ns)

	cmd, err := ns.ExpectCommand(call.Name.Item)
	if err != nil {
		return nil, errs.NewLabeled(err.Error(), "unknown command", call.Name.Span)
	}

	args, bindErr := bindArgs(call, cmd.Signature(), ns)
	if bindErr != nil {
		return nil, bindErr
	}
	args.Input = input
	args.Scope = ns
	args.Span = call.Span
	args.RawInput = rawSlice(src, call.Span)

	stream, runErr := cmd.Run(ctx, args)
	if runErr != nil {
		return object.One(errorValue(runErr)), nil
	}
	return stream, nil
}

// expandAlias splices a stored alias expansion in place of the call head.
// Expansion is applied once; an alias naming another alias is resolved on
// the next evaluation of the rewritten call, and a self-reference simply
// fails command lookup.
func expandAlias(call *ast.Call, ns command.NameSpace) *ast.Call {
	expansion, ok := ns.GetAlias(call.Name.Item)
	if !ok || len(expansion) == 0 {
		return call
	}
	expanded := &ast.Call{
		Name: expansion[0],
		Span: call.Span,
	}
	for _, item := range expansion[1:] {
		expanded.Args = append(expanded.Args, &ast.Word{Text: item.Item, WordSpan: item.Span})
	}
	expanded.Args = append(expanded.Args, call.Args...)
	return expanded
}

func errorValue(err error) object.Object {
	if labeled, ok := err.(*errs.LabeledError); ok {
		return &object.Error{Message: labeled.Message, Label: labeled.Label, Span: labeled.Span}
	}
	return object.NewError("%s", err.Error())
}

func rawSlice(src string, span token.Span) string {
	if span.Start < 0 || span.End > len(src) || span.Start >= span.End {
		return ""
	}
	return src[span.Start:span.End]
}
