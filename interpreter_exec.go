// interpreter_exec.go — the tree-walking evaluator.
//
// Evaluation is structurally recursive over the AST. Every step returns
// (Value, flow, error): flow is the explicit control signal that threads
// `break` through enclosing constructs until the nearest loop absorbs it.
// Control signals are data, not host panics, so `with`/`if` propagate them
// and the scope discipline (push, run, release) holds on every exit path.
package clarice

import (
	"fmt"
	"strings"
)

// flow is the control signal attached to every evaluation result.
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlBreak
)

type flow struct {
	kind ctrlKind
	pos  Pos // where the signal originated, for top-level diagnostics
}

var flowNone = flow{}

// ─────────────────────────────── statements ────────────────────────────────

func (ip *Interpreter) execStmt(s Stmt, env *Env) (Value, flow, error) {
	switch st := s.(type) {
	case *WithStmt:
		v, fl, err := ip.evalExpr(st.Value, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		scope := NewEnv(env)
		scope.Declare(st.Name, v, true)
		res, fl, err := ip.execStmt(st.Body, scope)
		scope.Release() // the transient binding dies here on every exit path
		return res, fl, err

	case *AliasStmt:
		target, fl, err := ip.evalExpr(st.Target, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		scope := NewEnv(env)
		scope.Declare(st.Alias, target, true)
		res, fl, err := ip.execStmt(st.Body, scope)
		scope.Release()
		return res, fl, err

	case *LetStmt:
		if !env.Declare(st.Name, Null, false) {
			return Null, flowNone, &NameError{
				Line: st.Pos.Line, Col: st.Pos.Col,
				Msg: fmt.Sprintf("'%s' is already declared in this scope", st.Name),
			}
		}
		return Null, flowNone, nil

	case *SetStmt:
		v, fl, err := ip.evalExpr(st.Value, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		if !env.Set(st.Name, v) {
			return Null, flowNone, &NameError{
				Line: st.Pos.Line, Col: st.Pos.Col,
				Msg: fmt.Sprintf("cannot set undeclared variable '%s' (declare it with 'let' first)", st.Name),
			}
		}
		return Null, flowNone, nil

	case *IfStmt:
		cond, fl, err := ip.evalExpr(st.Cond, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		if cond.Tag != VTBool {
			return Null, flowNone, &RuntimeTypeError{
				Line: st.Pos.Line, Col: st.Pos.Col,
				Msg: fmt.Sprintf("'if' condition must be Bool, got %s", cond.Tag),
			}
		}
		scope := NewEnv(env)
		defer scope.Release()
		if cond.Data.(bool) {
			return ip.execStmt(st.Then, scope)
		}
		if st.Else != nil {
			return ip.execStmt(st.Else, scope)
		}
		return Null, flowNone, nil

	case *LoopStmt:
		for {
			scope := NewEnv(env)
			for _, body := range st.Body {
				_, fl, err := ip.execStmt(body, scope)
				if err != nil {
					scope.Release()
					return Null, flowNone, err
				}
				if fl.kind == ctrlBreak {
					scope.Release()
					return Null, flowNone, nil // the loop absorbs the signal
				}
			}
			scope.Release()
		}

	case *IterStmt:
		return ip.execIter(st, env)

	case *BreakStmt:
		return Null, flow{kind: ctrlBreak, pos: st.Pos}, nil

	case *PrintStmt:
		v, fl, err := ip.evalExpr(st.Value, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		fmt.Fprintln(ip.Out, DisplayValue(v))
		return Null, flowNone, nil

	case *PromptStmt:
		fmt.Fprint(ip.Out, st.Text)
		// The read line is discarded: `prompt` is a synchronization barrier,
		// not data input.
		if ip.In != nil {
			_, _ = ip.In.ReadString('\n')
		}
		return ip.execStmt(st.Body, env)

	case *UsingStmt:
		mod, ok := ip.Registry.Resolve(st.Path)
		if !ok {
			return Null, flowNone, &ModuleNotFoundError{
				Line: st.Pos.Line, Col: st.Pos.Col,
				Msg: fmt.Sprintf("no module at path '%s'", st.Path),
			}
		}
		member, ok := mod.Member(st.Name)
		if !ok {
			return Null, flowNone, &ModuleNotFoundError{
				Line: st.Pos.Line, Col: st.Pos.Col,
				Msg: fmt.Sprintf("module '%s' has no member '%s'", st.Path, st.Name),
			}
		}
		env.Define(st.Name, member) // durable; re-imports rebind
		return Null, flowNone, nil

	case *ExprStmt:
		return ip.evalExpr(st.Value, env)

	default:
		return Null, flowNone, &RuntimeError{
			Line: s.Position().Line, Col: s.Position().Col,
			Msg: fmt.Sprintf("unsupported statement: %T", s),
		}
	}
}

// execIter walks the evaluated source, binding the loop variable transiently
// in a fresh scope per element. Like `loop`, `iter` absorbs break signals.
func (ip *Interpreter) execIter(st *IterStmt, env *Env) (Value, flow, error) {
	src, fl, err := ip.evalExpr(st.Source, env)
	if err != nil || fl.kind != ctrlNone {
		return Null, fl, err
	}

	step := func(elem Value) (bool, error) {
		scope := NewEnv(env)
		scope.Declare(st.Name, elem, true)
		_, fl, err := ip.execStmt(st.Body, scope)
		scope.Release()
		if err != nil {
			return false, err
		}
		return fl.kind != ctrlBreak, nil
	}

	switch src.Tag {
	case VTList:
		for _, elem := range src.Data.([]Value) {
			cont, err := step(elem)
			if err != nil {
				return Null, flowNone, err
			}
			if !cont {
				break
			}
		}
	case VTStr:
		for _, r := range src.Data.(string) {
			cont, err := step(Str(string(r)))
			if err != nil {
				return Null, flowNone, err
			}
			if !cont {
				break
			}
		}
	case VTInt:
		n := src.Data.(int64)
		for i := int64(0); i < n; i++ {
			cont, err := step(Int(i))
			if err != nil {
				return Null, flowNone, err
			}
			if !cont {
				break
			}
		}
	default:
		return Null, flowNone, &RuntimeTypeError{
			Line: st.Pos.Line, Col: st.Pos.Col,
			Msg: fmt.Sprintf("cannot iterate over %s", src.Tag),
		}
	}
	return Null, flowNone, nil
}

// ─────────────────────────────── expressions ───────────────────────────────

func (ip *Interpreter) evalExpr(e Expr, env *Env) (Value, flow, error) {
	switch ex := e.(type) {
	case *IntLit:
		return Int(ex.Value), flowNone, nil
	case *FloatLit:
		return Num(ex.Value), flowNone, nil
	case *StringLit:
		return Str(ex.Value), flowNone, nil
	case *BoolLit:
		return Bool(ex.Value), flowNone, nil

	case *ListLit:
		elems := make([]Value, 0, len(ex.Elems))
		for _, el := range ex.Elems {
			v, fl, err := ip.evalExpr(el, env)
			if err != nil || fl.kind != ctrlNone {
				return Null, fl, err
			}
			elems = append(elems, v)
		}
		return List(elems), flowNone, nil

	case *Ident:
		v, ok := env.Get(ex.Name)
		if !ok {
			return Null, flowNone, &NameError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("undefined variable '%s'", ex.Name),
			}
		}
		return v, flowNone, nil

	case *UnaryExpr:
		v, fl, err := ip.evalExpr(ex.Operand, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		switch v.Tag {
		case VTInt:
			return Int(-v.Data.(int64)), flowNone, nil
		case VTNum:
			return Num(-v.Data.(float64)), flowNone, nil
		default:
			return Null, flowNone, &RuntimeTypeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("unary '-' needs a numeric operand, got %s", v.Tag),
			}
		}

	case *BinaryExpr:
		lhs, fl, err := ip.evalExpr(ex.Left, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		rhs, fl, err := ip.evalExpr(ex.Right, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		return ip.applyBinary(ex, lhs, rhs)

	case *CallExpr:
		callee, fl, err := ip.evalExpr(ex.Callee, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		if callee.Tag != VTFun {
			return Null, flowNone, &RuntimeTypeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("cannot call a %s value", callee.Tag),
			}
		}
		fn := callee.Data.(*Builtin)
		args := make([]Value, 0, len(ex.Args))
		for _, a := range ex.Args {
			v, fl, err := ip.evalExpr(a, env)
			if err != nil || fl.kind != ctrlNone {
				return Null, fl, err
			}
			args = append(args, v)
		}
		if len(args) != fn.Arity() {
			return Null, flowNone, &RuntimeTypeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("%s expects %d argument(s), got %d", fn.Name, fn.Arity(), len(args)),
			}
		}
		res, err := fn.Invoke(ip, args)
		if err != nil {
			return Null, flowNone, &RuntimeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("%s: %v", fn.Name, err),
			}
		}
		return res, flowNone, nil

	case *MemberExpr:
		obj, fl, err := ip.evalExpr(ex.Object, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		if obj.Tag != VTModule {
			return Null, flowNone, &RuntimeTypeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("cannot read member '%s' of a %s value", ex.Name, obj.Tag),
			}
		}
		mod := obj.Data.(*Module)
		member, ok := mod.Member(ex.Name)
		if !ok {
			return Null, flowNone, &NameError{
				Line: ex.Pos.Line, Col: ex.Pos.Col,
				Msg: fmt.Sprintf("module '%s' has no member '%s'", mod.Name, ex.Name),
			}
		}
		return member, flowNone, nil

	case *TemplateExpr:
		var b strings.Builder
		for _, part := range ex.Parts {
			v, fl, err := ip.evalExpr(part, env)
			if err != nil || fl.kind != ctrlNone {
				return Null, fl, err
			}
			b.WriteString(DisplayValue(v))
		}
		return Str(b.String()), flowNone, nil

	case *AndExpr:
		v, fl, err := ip.evalExpr(ex.Value, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		_, fl, err = ip.execStmt(ex.Then, env)
		if err != nil || fl.kind != ctrlNone {
			return Null, fl, err
		}
		return v, flowNone, nil

	default:
		return Null, flowNone, &RuntimeError{
			Line: e.Position().Line, Col: e.Position().Col,
			Msg: fmt.Sprintf("unsupported expression: %T", e),
		}
	}
}

// applyBinary dispatches a binary operator on the runtime kinds of its
// operands. Arithmetic needs two numerics (widening Int to Float when
// mixed); `+` additionally concatenates two Strings; equality is structural
// over every kind; ordering needs two numerics.
func (ip *Interpreter) applyBinary(ex *BinaryExpr, lhs, rhs Value) (Value, flow, error) {
	typeErr := func(format string, args ...interface{}) (Value, flow, error) {
		return Null, flowNone, &RuntimeTypeError{
			Line: ex.Pos.Line, Col: ex.Pos.Col,
			Msg: fmt.Sprintf(format, args...),
		}
	}

	switch ex.Op {
	case "=":
		return Bool(Equal(lhs, rhs)), flowNone, nil
	case "/=":
		return Bool(!Equal(lhs, rhs)), flowNone, nil
	}

	if ex.Op == "+" && lhs.Tag == VTStr && rhs.Tag == VTStr {
		return Str(lhs.Data.(string) + rhs.Data.(string)), flowNone, nil
	}

	ln, lok := numeric(lhs)
	rn, rok := numeric(rhs)
	if !lok || !rok {
		return typeErr("'%s' is not defined for %s and %s", ex.Op, lhs.Tag, rhs.Tag)
	}

	bothInt := lhs.Tag == VTInt && rhs.Tag == VTInt

	switch ex.Op {
	case "+":
		if bothInt {
			return Int(lhs.Data.(int64) + rhs.Data.(int64)), flowNone, nil
		}
		return Num(ln + rn), flowNone, nil
	case "-":
		if bothInt {
			return Int(lhs.Data.(int64) - rhs.Data.(int64)), flowNone, nil
		}
		return Num(ln - rn), flowNone, nil
	case "*":
		if bothInt {
			return Int(lhs.Data.(int64) * rhs.Data.(int64)), flowNone, nil
		}
		return Num(ln * rn), flowNone, nil
	case "/":
		if bothInt {
			d := rhs.Data.(int64)
			if d == 0 {
				return Null, flowNone, &RuntimeError{
					Line: ex.Pos.Line, Col: ex.Pos.Col, Msg: "division by zero",
				}
			}
			return Int(lhs.Data.(int64) / d), flowNone, nil
		}
		if rn == 0 {
			return Null, flowNone, &RuntimeError{
				Line: ex.Pos.Line, Col: ex.Pos.Col, Msg: "division by zero",
			}
		}
		return Num(ln / rn), flowNone, nil
	case "<":
		return Bool(ln < rn), flowNone, nil
	case "<=":
		return Bool(ln <= rn), flowNone, nil
	case ">":
		return Bool(ln > rn), flowNone, nil
	case ">=":
		return Bool(ln >= rn), flowNone, nil
	default:
		return typeErr("unknown operator '%s'", ex.Op)
	}
}
