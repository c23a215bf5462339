package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tide/internal/command"
	"tide/internal/config"
	"tide/internal/errs"
	"tide/internal/eval"
	"tide/internal/object"
	"tide/internal/parser"
	"tide/internal/token"
)

const PROMPT = ">> "

// Start runs the read-eval-print loop. Startup lines from the config are
// replayed into the scope before the first prompt.
func Start(ctx context.Context, in io.Reader, out io.Writer, ns command.NameSpace, cfg *config.Config) {
	if cfg != nil {
		replayStartup(ctx, out, ns, cfg.Startup)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		EvalLine(ctx, out, ns, line)
	}
}

// EvalLine parses and runs one line of input, printing every resulting
// value on its own line.
func EvalLine(ctx context.Context, out io.Writer, ns command.NameSpace, line string) {
	block, parseErr := parser.Parse(line, 0)
	if parseErr != nil {
		printError(out, line, parseErr.Error(), parseErr.Span)
		return
	}

	values, err := eval.RunCollect(ctx, block, ns, object.EmptyStream(), line)
	if err != nil {
		if labeled, ok := err.(*errs.LabeledError); ok {
			printError(out, line, labeled.Message, labeled.Span)
		} else {
			fmt.Fprintf(out, "error: %s\n", err)
		}
		return
	}

	for _, v := range values {
		if errObj, ok := v.(*object.Error); ok {
			printError(out, line, errObj.Message, errObj.Span)
			continue
		}
		io.WriteString(out, v.Inspect())
		io.WriteString(out, "\n")
	}
}

func replayStartup(ctx context.Context, out io.Writer, ns command.NameSpace, lines []string) {
	for _, line := range lines {
		slog.Debug("startup line", slog.String("line", line))
		EvalLine(ctx, out, ns, line)
	}
}

// printError renders a message with a caret line pointing at the span,
// when the span falls inside the offending source line.
func printError(out io.Writer, src, message string, span token.Span) {
	fmt.Fprintf(out, "error: %s\n", message)
	if span.IsUnknown() || span.Start >= len(src) {
		return
	}
	end := span.End
	if end > len(src) {
		end = len(src)
	}
	width := end - span.Start
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(out, "  %s\n", src)
	fmt.Fprintf(out, "  %s%s\n", strings.Repeat(" ", span.Start), strings.Repeat("^", width))
}
