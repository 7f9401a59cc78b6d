// builtin_file.go — the Clarice/IO File module.
package clarice

import (
	"fmt"
	"os"
)

func fileModule() *Module {
	m := NewModule("File")

	m.DefineFun(&Builtin{
		Name:   "WriteText",
		Params: []string{"path", "text"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			path, err := wantStrArg("WriteText", args, 0)
			if err != nil {
				return Null, err
			}
			text, err := wantStrArg("WriteText", args, 1)
			if err != nil {
				return Null, err
			}
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return Null, fmt.Errorf("cannot write %s: %w", path, err)
			}
			return Str(path), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "ReadText",
		Params: []string{"path"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			path, err := wantStrArg("ReadText", args, 0)
			if err != nil {
				return Null, err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return Null, fmt.Errorf("cannot read %s: %w", path, err)
			}
			return Str(string(b)), nil
		},
	})

	return m
}
