// builtin_clock.go — the Clarice/IO Clock module.
package clarice

import (
	"fmt"
	"time"
)

func clockModule() *Module {
	m := NewModule("Clock")

	m.DefineFun(&Builtin{
		Name:   "Now",
		Params: []string{},
		Impl: func(_ *Interpreter, _ []Value) (Value, error) {
			return Str(time.Now().Format(time.RFC3339)), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "UnixMillis",
		Params: []string{},
		Impl: func(_ *Interpreter, _ []Value) (Value, error) {
			return Int(time.Now().UnixMilli()), nil
		},
	})

	// Sleep pauses the script; the argument is whole milliseconds.
	m.DefineFun(&Builtin{
		Name:   "Sleep",
		Params: []string{"ms"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			if args[0].Tag != VTInt {
				return Null, fmt.Errorf("argument 1 must be Int, got %s", args[0].Tag)
			}
			ms := args[0].Data.(int64)
			if ms < 0 {
				return Null, fmt.Errorf("cannot sleep for %d milliseconds", ms)
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return Null, nil
		},
	})

	return m
}
