package command

import (
	"fmt"
	"strings"

	"tide/internal/sig"
)

// HelpText renders a command's usage and signature for --help and the help
// builtin.
func HelpText(cmd Command) string {
	signature := cmd.Signature()
	var b strings.Builder

	if usage := cmd.Usage(); usage != "" {
		b.WriteString(usage)
		b.WriteString("\n\n")
	}

	b.WriteString("Usage:\n  ")
	b.WriteString(cmd.Name())
	for _, pos := range signature.Positional {
		if pos.Type.Kind == sig.Optional {
			fmt.Fprintf(&b, " (%s)", pos.Type.Name)
		} else {
			fmt.Fprintf(&b, " <%s>", pos.Type.Name)
		}
	}
	if signature.Rest != nil {
		fmt.Fprintf(&b, " ...%s", restName(signature.Rest))
	}
	if len(signature.Named) > 0 {
		b.WriteString(" {flags}")
	}
	b.WriteString("\n")

	if len(signature.Positional) > 0 || signature.Rest != nil {
		b.WriteString("\nParameters:\n")
		for _, pos := range signature.Positional {
			optional := ""
			if pos.Type.Kind == sig.Optional {
				optional = " (optional)"
			}
			fmt.Fprintf(&b, "  %s: %s%s", pos.Type.Name, pos.Type.Shape, optional)
			if pos.Desc != "" {
				fmt.Fprintf(&b, " - %s", pos.Desc)
			}
			b.WriteString("\n")
		}
		if signature.Rest != nil {
			fmt.Fprintf(&b, "  ...%s: %s", restName(signature.Rest), signature.Rest.Shape)
			if signature.Rest.Desc != "" {
				fmt.Fprintf(&b, " - %s", signature.Rest.Desc)
			}
			b.WriteString("\n")
		}
	}

	if len(signature.Named) > 0 {
		b.WriteString("\nFlags:\n")
		for _, name := range signature.NamedNames() {
			entry := signature.Named[name]
			b.WriteString("  ")
			if entry.Type.Short != 0 {
				fmt.Fprintf(&b, "-%c, ", entry.Type.Short)
			}
			fmt.Fprintf(&b, "--%s", name)
			if entry.Type.Kind == sig.OptionalValue {
				fmt.Fprintf(&b, " <%s>", entry.Type.Shape)
			}
			if entry.Desc != "" {
				fmt.Fprintf(&b, ": %s", entry.Desc)
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func restName(rest *sig.RestPositional) string {
	if rest.Name == "" {
		return "args"
	}
	return strings.TrimPrefix(rest.Name, "$")
}
