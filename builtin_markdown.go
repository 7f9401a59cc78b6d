// builtin_markdown.go — the Clarice/Extra Markdown capability.
//
// Markdown.Convert renders a Markdown string to an HTML string;
// Markdown.ConvertHTML additionally writes the result to a destination path.
// The conversion itself is goldmark's; this file only adapts it to the
// module callable interface.
package clarice

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
)

func markdownModule() *Module {
	m := NewModule("Markdown")
	md := goldmark.New()

	render := func(source string) (string, error) {
		var buf bytes.Buffer
		if err := md.Convert([]byte(source), &buf); err != nil {
			return "", fmt.Errorf("markdown conversion failed: %w", err)
		}
		return buf.String(), nil
	}

	m.DefineFun(&Builtin{
		Name:   "Convert",
		Params: []string{"markdown"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			source, err := wantStrArg("Convert", args, 0)
			if err != nil {
				return Null, err
			}
			html, err := render(source)
			if err != nil {
				return Null, err
			}
			return Str(html), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "ConvertHTML",
		Params: []string{"markdown", "destination"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			source, err := wantStrArg("ConvertHTML", args, 0)
			if err != nil {
				return Null, err
			}
			dest, err := wantStrArg("ConvertHTML", args, 1)
			if err != nil {
				return Null, err
			}
			html, err := render(source)
			if err != nil {
				return Null, err
			}
			if err := os.WriteFile(dest, []byte(html), 0o644); err != nil {
				return Null, fmt.Errorf("cannot write %s: %w", dest, err)
			}
			return Str(dest), nil
		},
	})

	return m
}
