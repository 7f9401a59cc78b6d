// interpreter.go — public API surface of the Clarice interpreter.
//
// This file exposes the runtime value model, the lexical environment, and
// the Interpreter entry points. The evaluation algorithm itself lives in
// interpreter_exec.go; built-in modules live in modules.go and the
// builtin_*.go files.
//
// SCOPING
// -------
// Clarice code evaluates in environments (*Env) that form a lexical chain
// via parent. The Interpreter exposes one well-known frame, Global. Entry
// points differ only in which environment they target:
//   - EvalSource runs in a fresh child of Global (ephemeral; script-like).
//   - EvalPersistentSource runs in Global itself (REPL-style).
//
// Bindings carry a durability tag. `with` pushes a scope and binds
// transiently: when the construct finishes — however it exits — the scope is
// popped and its table released, so the binding's exclusively-owned value is
// immediately unreachable and collectable. `let` binds durably in the
// current scope and lives until that scope itself ends.
//
// ERRORS
// ------
// All Eval* methods return (Value, error). Failures are one of the typed
// errors below (NameError, RuntimeTypeError, ...), each carrying a 1-based
// line and 0-based column; errors.go renders them with a caret snippet.
package clarice

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull   ValueTag = iota // null (no payload)
	VTBool                   // bool
	VTInt                    // int64
	VTNum                    // float64
	VTStr                    // string
	VTList                   // []Value
	VTFun                    // *Builtin (callable reference)
	VTModule                 // *Module
)

func (t ValueTag) String() string {
	switch t {
	case VTNull:
		return "Null"
	case VTBool:
		return "Bool"
	case VTInt:
		return "Int"
	case VTNum:
		return "Float"
	case VTStr:
		return "String"
	case VTList:
		return "List"
	case VTFun:
		return "Callable"
	case VTModule:
		return "Module"
	default:
		return "<unknown>"
	}
}

// Value is the universal runtime carrier used by the interpreter. Tag is the
// discriminant; Data holds the Go value appropriate for the tag (int64 for
// VTInt, float64 for VTNum, and so on). When Tag==VTNull, Data is nil.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors for convenience.
func Bool(b bool) Value       { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value       { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value     { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value      { return Value{Tag: VTStr, Data: s} }
func List(xs []Value) Value   { return Value{Tag: VTList, Data: xs} }
func FunVal(b *Builtin) Value { return Value{Tag: VTFun, Data: b} }

// String renders a short debug representation (see printer.go for the
// user-facing formatting).
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTList:
		return fmt.Sprintf("<list len=%d>", len(v.Data.([]Value)))
	case VTFun:
		return "<fun>"
	case VTModule:
		return "<module>"
	default:
		return "<unknown>"
	}
}

// Equal reports structural equality of two values. Int and Float compare
// numerically across kinds; lists compare element-wise; callables and
// modules compare by reference identity.
func Equal(a, b Value) bool {
	if an, aok := numeric(a); aok {
		if bn, bok := numeric(b); bok {
			return an == bn
		}
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !Equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case VTFun, VTModule:
		return a.Data == b.Data
	default:
		return false
	}
}

// numeric widens Int and Float to float64 for mixed-kind arithmetic and
// comparison.
func numeric(v Value) (float64, bool) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), true
	case VTNum:
		return v.Data.(float64), true
	default:
		return 0, false
	}
}

// Builtin is a host-implemented callable exposed through a module. Params
// documents the expected arguments; arity is enforced on call.
type Builtin struct {
	Name   string
	Params []string
	Impl   func(ip *Interpreter, args []Value) (Value, error)
}

// Arity returns the number of declared parameters.
func (b *Builtin) Arity() int { return len(b.Params) }

// Invoke applies the builtin to already-evaluated arguments.
func (b *Builtin) Invoke(ip *Interpreter, args []Value) (Value, error) {
	return b.Impl(ip, args)
}

// ─────────────────────────────── environment ───────────────────────────────

// binding pairs a value with its durability tag.
type binding struct {
	value     Value
	transient bool
}

// Env is a lexical environment frame with a parent link. The parent
// reference is lookup-only; a frame never outlives its construct, and
// Release drops its table so transient values become unreachable as soon as
// the owning construct completes.
type Env struct {
	parent *Env
	table  map[string]binding
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]binding)}
}

// Declare binds name in the current frame, shadowing any outer binding.
// It reports false when the name is already bound in this frame: within one
// scope, `let` redeclaration is an error.
func (e *Env) Declare(name string, v Value, transient bool) bool {
	if _, exists := e.table[name]; exists {
		return false
	}
	e.table[name] = binding{value: v, transient: transient}
	return true
}

// Define binds name unconditionally in the current frame, replacing any
// existing binding. Used by `using` (re-imports rebind) and by hosts.
func (e *Env) Define(name string, v Value) {
	e.table[name] = binding{value: v}
}

// Set updates the nearest existing binding of name. It reports false when no
// binding exists in any visible frame: `set` is assignment, not declaration.
func (e *Env) Set(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if b, ok := f.table[name]; ok {
			b.value = v
			f.table[name] = b
			return true
		}
	}
	return false
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if b, ok := f.table[name]; ok {
			return b.value, true
		}
	}
	return Value{}, false
}

// Release drops every binding in this frame. Called when the frame's owning
// construct finishes, so values owned exclusively by transient bindings are
// reclaimable immediately rather than when the frame itself is collected.
func (e *Env) Release() {
	e.table = nil
}

// ─────────────────────────────── interpreter ───────────────────────────────

// Interpreter is the entry point for evaluating Clarice programs.
//
// Out receives all `print` and `prompt` text; In supplies the single line
// `prompt` blocks on. Registry resolves `using` paths and is immutable after
// construction. Global is the persistent top-level scope.
type Interpreter struct {
	Global   *Env
	Registry *Registry
	Out      io.Writer
	In       *bufio.Reader
}

// NewInterpreter constructs an interpreter wired to stdin/stdout with the
// default built-in module registry.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Global:   NewEnv(nil),
		Registry: DefaultRegistry(),
		Out:      os.Stdout,
		In:       bufio.NewReader(os.Stdin),
	}
}

// EvalSource parses and evaluates source in a fresh child of Global. Names
// bound during evaluation land in that ephemeral child; Global is unchanged.
// Returns the value of the last statement, and an error wrapped with a
// caret-style source snippet on failure.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	v, err := ip.RunProgram(prog, NewEnv(ip.Global))
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	return v, nil
}

// EvalPersistentSource parses and evaluates source in Global (REPL-style):
// `let` and `set` effects persist across calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	v, err := ip.RunProgram(prog, ip.Global)
	if err != nil {
		return Null, WrapErrorWithSource(err, src)
	}
	return v, nil
}

// RunProgram evaluates a parsed program in the provided environment and
// returns the value of its last statement. A break signal that survives to
// the top level is a ControlFlowError.
func (ip *Interpreter) RunProgram(prog *Program, env *Env) (Value, error) {
	last := Null
	for _, s := range prog.Stmts {
		v, fl, err := ip.execStmt(s, env)
		if err != nil {
			return Null, err
		}
		if fl.kind == ctrlBreak {
			return Null, &ControlFlowError{
				Line: fl.pos.Line,
				Col:  fl.pos.Col,
				Msg:  "'break' outside of a loop",
			}
		}
		last = v
	}
	return last, nil
}

// ───────────────────────────── runtime errors ──────────────────────────────

// NameError reports an undefined identifier on lookup or `set`, or a `let`
// redeclaration within one scope.
type NameError struct {
	Line int
	Col  int
	Msg  string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// RuntimeTypeError reports an operation applied to incompatible runtime
// kinds. Clarice has no declared types, but every operation checks the kinds
// it is given.
type RuntimeTypeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeTypeError) Error() string {
	return fmt.Sprintf("type error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ModuleNotFoundError reports an unresolved `using` path or member.
type ModuleNotFoundError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ControlFlowError reports a `break` with no enclosing loop.
type ControlFlowError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ControlFlowError) Error() string {
	return fmt.Sprintf("control flow error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// RuntimeError reports a failure inside an operation whose operands were
// kind-compatible (division by zero, a failing module callable, and so on).
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Col, e.Msg)
}
