package commands

import (
	"context"
	"os"
	"path/filepath"

	"tide/internal/command"
	"tide/internal/errs"
	"tide/internal/object"
	"tide/internal/sig"
)

type Ls struct{}

func (l *Ls) Name() string { return "ls" }

func (l *Ls) Signature() *sig.Signature {
	return sig.Build("ls").
		OptionalPos("path", sig.Pattern, "the path or glob to list")
}

func (l *Ls) Usage() string { return "List the files in a directory." }

func (l *Ls) Run(ctx context.Context, args *command.Args) (object.Stream, error) {
	pattern := "."
	if len(args.Positional) > 0 {
		pattern = args.StringAt(0)
	}

	paths, err := expandPattern(pattern)
	if err != nil {
		return nil, errs.NewLabeled(err.Error(), "invalid pattern", args.Span)
	}
	if len(paths) == 0 {
		return nil, errs.NewLabeled("no matches for '"+pattern+"'", "nothing found", args.Span)
	}

	out := make(chan object.Object)
	go func() {
		defer close(out)
		for _, p := range paths {
			info, err := os.Lstat(p)
			if err != nil {
				continue
			}
			row := fileRow(p, info)
			select {
			case out <- row:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// expandPattern lists a directory's entries, or resolves a glob when the
// argument is not a directory.
func expandPattern(pattern string) ([]string, error) {
	info, err := os.Stat(pattern)
	if err == nil && info.IsDir() {
		entries, err := os.ReadDir(pattern)
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(entries))
		for _, entry := range entries {
			paths = append(paths, filepath.Join(pattern, entry.Name()))
		}
		return paths, nil
	}
	return filepath.Glob(pattern)
}

func fileRow(path string, info os.FileInfo) *object.Row {
	kind := "file"
	switch {
	case info.IsDir():
		kind = "dir"
	case info.Mode()&os.ModeSymlink != 0:
		kind = "symlink"
	}
	row := object.NewRow()
	row.Set("name", &object.String{Value: filepath.ToSlash(path)})
	row.Set("type", &object.String{Value: kind})
	row.Set("size", &object.Integer{Value: info.Size()})
	row.Set("modified", &object.Date{Value: info.ModTime()})
	return row
}
