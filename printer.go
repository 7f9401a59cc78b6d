// printer.go — canonical source rendering for ASTs and value formatting.
//
// FormatProgram is the inverse of Parse up to positions: re-parsing its
// output yields a structurally identical AST. FormatValue renders values for
// REPL echo (strings quoted); DisplayValue renders them for `print` and
// string templates (strings verbatim).
package clarice

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatProgram renders a program as canonical Clarice source, one top-level
// statement per line.
func FormatProgram(prog *Program) string {
	var b strings.Builder
	for i, s := range prog.Stmts {
		if i > 0 {
			b.WriteByte('\n')
			// A leading expression statement could merge into the previous
			// line on re-parse; an explicit separator keeps it standalone.
			if _, isExpr := s.(*ExprStmt); isExpr {
				b.WriteString("then ")
			}
		}
		b.WriteString(FormatStmt(s))
	}
	return b.String()
}

// FormatStmt renders one statement.
func FormatStmt(s Stmt) string {
	switch st := s.(type) {
	case *WithStmt:
		return fmt.Sprintf("with %s as %s %s", st.Name, FormatExpr(st.Value), FormatStmt(st.Body))
	case *AliasStmt:
		return fmt.Sprintf("with %s as %s do %s", FormatExpr(st.Target), st.Alias, FormatStmt(st.Body))
	case *LetStmt:
		if st.TypeHint != "" {
			return fmt.Sprintf("let %s as %s", st.Name, st.TypeHint)
		}
		return fmt.Sprintf("let %s", st.Name)
	case *SetStmt:
		return fmt.Sprintf("set %s to %s", st.Name, FormatExpr(st.Value))
	case *IfStmt:
		out := fmt.Sprintf("if %s then %s", FormatExpr(st.Cond), FormatStmt(st.Then))
		if st.Else != nil {
			out += " else " + FormatStmt(st.Else)
		}
		return out
	case *LoopStmt:
		var b strings.Builder
		b.WriteString("loop do")
		for _, body := range st.Body {
			b.WriteByte(' ')
			b.WriteString(FormatStmt(body))
			b.WriteString(" then")
		}
		out := strings.TrimSuffix(b.String(), " then")
		return out + " end"
	case *IterStmt:
		return fmt.Sprintf("iter %s in %s do %s", st.Name, FormatExpr(st.Source), FormatStmt(st.Body))
	case *BreakStmt:
		return "break"
	case *PrintStmt:
		return "print " + FormatExpr(st.Value)
	case *PromptStmt:
		return fmt.Sprintf("prompt %s then %s", quoteString(st.Text), FormatStmt(st.Body))
	case *UsingStmt:
		return fmt.Sprintf("using %s from %s", st.Name, st.Path)
	case *ExprStmt:
		return FormatExpr(st.Value)
	default:
		return fmt.Sprintf("<?stmt %T>", s)
	}
}

// Operator precedence levels for parenthesization.
const (
	precAnd = iota + 1
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

func opPrec(op string) int {
	switch op {
	case "=", "/=":
		return precEquality
	case "<", "<=", ">", ">=":
		return precComparison
	case "+", "-":
		return precAdditive
	case "*", "/":
		return precMultiplicative
	default:
		return precPostfix
	}
}

// FormatExpr renders one expression.
func FormatExpr(e Expr) string {
	return fmtExpr(e, precAnd)
}

func fmtExpr(e Expr, min int) string {
	switch ex := e.(type) {
	case *IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case *FloatLit:
		s := strconv.FormatFloat(ex.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case *BoolLit:
		return strconv.FormatBool(ex.Value)
	case *StringLit:
		return quoteString(ex.Value)
	case *ListLit:
		parts := make([]string, len(ex.Elems))
		for i, el := range ex.Elems {
			parts[i] = fmtExpr(el, precAnd)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Ident:
		return ex.Name
	case *UnaryExpr:
		out := "-" + fmtExpr(ex.Operand, precUnary)
		if precUnary < min {
			return "(" + out + ")"
		}
		return out
	case *BinaryExpr:
		prec := opPrec(ex.Op)
		out := fmt.Sprintf("%s %s %s", fmtExpr(ex.Left, prec), ex.Op, fmtExpr(ex.Right, prec+1))
		if prec < min {
			return "(" + out + ")"
		}
		return out
	case *CallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = fmtExpr(a, precAnd)
		}
		return fmtExpr(ex.Callee, precPostfix) + "(" + strings.Join(args, ", ") + ")"
	case *MemberExpr:
		return fmtExpr(ex.Object, precPostfix) + "." + ex.Name
	case *TemplateExpr:
		var b strings.Builder
		b.WriteByte('"')
		for _, part := range ex.Parts {
			if lit, ok := part.(*StringLit); ok {
				b.WriteString(escapeString(lit.Value, true))
				continue
			}
			b.WriteByte('{')
			b.WriteString(FormatExpr(part))
			b.WriteByte('}')
		}
		b.WriteByte('"')
		return b.String()
	case *AndExpr:
		out := fmt.Sprintf("%s and %s", fmtExpr(ex.Value, precAnd+1), FormatStmt(ex.Then))
		if precAnd < min {
			return "(" + out + ")"
		}
		return out
	default:
		return fmt.Sprintf("<?expr %T>", e)
	}
}

// quoteString renders a double-quoted literal. Braces are doubled so the
// output re-parses as a plain string, never a template.
func quoteString(s string) string {
	return `"` + escapeString(s, true) + `"`
}

func escapeString(s string, escapeBraces bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '{':
			if escapeBraces {
				b.WriteString("{{")
			} else {
				b.WriteByte(c)
			}
		case '}':
			if escapeBraces {
				b.WriteString("}}")
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ─────────────────────────── value formatting ──────────────────────────────

// DisplayValue renders a value the way `print` and templates show it:
// strings verbatim, numbers in canonical decimal form, booleans as words.
func DisplayValue(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return FormatValue(v)
}

// FormatValue renders a value for REPL echo: strings are quoted, list
// elements are formatted recursively.
func FormatValue(v Value) string {
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
		return quoteString(v.Data.(string))
	case VTList:
		xs := v.Data.([]Value)
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = FormatValue(x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTFun:
		return "<fun " + v.Data.(*Builtin).Name + ">"
	case VTModule:
		return "<module " + v.Data.(*Module).Name + ">"
	default:
		return "<unknown>"
	}
}
