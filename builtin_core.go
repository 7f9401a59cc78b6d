// builtin_core.go — the Clarice/Core built-in module: Text, Math, List.
package clarice

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

func wantStrArg(fn string, args []Value, i int) (string, error) {
	if args[i].Tag != VTStr {
		return "", fmt.Errorf("argument %d must be String, got %s", i+1, args[i].Tag)
	}
	return args[i].Data.(string), nil
}

func wantListArg(fn string, args []Value, i int) ([]Value, error) {
	if args[i].Tag != VTList {
		return nil, fmt.Errorf("argument %d must be List, got %s", i+1, args[i].Tag)
	}
	return args[i].Data.([]Value), nil
}

// textModule exposes string helpers.
func textModule() *Module {
	m := NewModule("Text")

	m.DefineFun(&Builtin{
		Name:   "Upper",
		Params: []string{"text"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, err := wantStrArg("Upper", args, 0)
			if err != nil {
				return Null, err
			}
			return Str(strings.ToUpper(s)), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Lower",
		Params: []string{"text"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, err := wantStrArg("Lower", args, 0)
			if err != nil {
				return Null, err
			}
			return Str(strings.ToLower(s)), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Length",
		Params: []string{"text"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, err := wantStrArg("Length", args, 0)
			if err != nil {
				return Null, err
			}
			return Int(int64(len([]rune(s)))), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Reverse",
		Params: []string{"text"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, err := wantStrArg("Reverse", args, 0)
			if err != nil {
				return Null, err
			}
			rs := []rune(s)
			for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
				rs[i], rs[j] = rs[j], rs[i]
			}
			return Str(string(rs)), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Contains",
		Params: []string{"text", "needle"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			s, err := wantStrArg("Contains", args, 0)
			if err != nil {
				return Null, err
			}
			needle, err := wantStrArg("Contains", args, 1)
			if err != nil {
				return Null, err
			}
			return Bool(strings.Contains(s, needle)), nil
		},
	})

	return m
}

// mathModule exposes numeric helpers. Every entry accepts Int or Float and
// widens like the arithmetic operators do.
func mathModule() *Module {
	m := NewModule("Math")

	m.DefineFun(&Builtin{
		Name:   "Abs",
		Params: []string{"n"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			switch args[0].Tag {
			case VTInt:
				n := args[0].Data.(int64)
				if n < 0 {
					n = -n
				}
				return Int(n), nil
			case VTNum:
				return Num(math.Abs(args[0].Data.(float64))), nil
			default:
				return Null, fmt.Errorf("argument 1 must be numeric, got %s", args[0].Tag)
			}
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Min",
		Params: []string{"a", "b"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			return pickNumeric("Min", args, func(a, b float64) bool { return a <= b })
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Max",
		Params: []string{"a", "b"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			return pickNumeric("Max", args, func(a, b float64) bool { return a >= b })
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Sqrt",
		Params: []string{"n"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			n, ok := numeric(args[0])
			if !ok {
				return Null, fmt.Errorf("argument 1 must be numeric, got %s", args[0].Tag)
			}
			if n < 0 {
				return Null, errors.New("square root of a negative number")
			}
			return Num(math.Sqrt(n)), nil
		},
	})

	return m
}

// pickNumeric returns whichever of the two numeric arguments wins, keeping
// the original value (and hence its Int/Float kind).
func pickNumeric(fn string, args []Value, wins func(a, b float64) bool) (Value, error) {
	a, aok := numeric(args[0])
	b, bok := numeric(args[1])
	if !aok || !bok {
		return Null, fmt.Errorf("%s needs two numeric arguments, got %s and %s", fn, args[0].Tag, args[1].Tag)
	}
	if wins(a, b) {
		return args[0], nil
	}
	return args[1], nil
}

// listModule exposes list helpers.
func listModule() *Module {
	m := NewModule("List")

	m.DefineFun(&Builtin{
		Name:   "Length",
		Params: []string{"list"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			xs, err := wantListArg("Length", args, 0)
			if err != nil {
				return Null, err
			}
			return Int(int64(len(xs))), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Append",
		Params: []string{"list", "value"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			xs, err := wantListArg("Append", args, 0)
			if err != nil {
				return Null, err
			}
			out := make([]Value, len(xs), len(xs)+1)
			copy(out, xs)
			return List(append(out, args[1])), nil
		},
	})

	m.DefineFun(&Builtin{
		Name:   "Join",
		Params: []string{"list", "separator"},
		Impl: func(_ *Interpreter, args []Value) (Value, error) {
			xs, err := wantListArg("Join", args, 0)
			if err != nil {
				return Null, err
			}
			sep, err := wantStrArg("Join", args, 1)
			if err != nil {
				return Null, err
			}
			parts := make([]string, len(xs))
			for i, v := range xs {
				parts[i] = DisplayValue(v)
			}
			return Str(strings.Join(parts, sep)), nil
		},
	})

	return m
}
