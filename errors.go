// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// WrapErrorWithSource turns the diagnostics produced by the lexer, parser,
// and evaluator into readable snippets with a caret pointing at the offending
// column:
//
//	NAME ERROR in game.clrs at 3:11: undefined variable 'scoer'
//
//	   2 | let score
//	   3 | print scoer
//	     |           ^
//	   4 | set score to 1
//
// All error types in this package carry 0-based columns; rendering is
// 1-based. Unknown error kinds pass through untouched.
package clarice

import (
	"errors"
	"fmt"
	"strings"
)

// WrapErrorWithSource augments a diagnostic with a caret-annotated snippet of
// the source it came from. Errors without a position pass through unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source label ("in <name>")
// in the header, typically a file name or "<repl>".
func WrapErrorWithName(err error, srcName string, src string) error {
	header, line, col, msg, ok := classify(err)
	if !ok {
		return err
	}
	return errors.New(renderSnippet(src, header, srcName, line, col+1, msg))
}

func classify(err error) (header string, line, col int, msg string, ok bool) {
	switch e := err.(type) {
	case *LexError:
		return "LEX ERROR", e.Line, e.Col, e.Msg, true
	case *ParseError:
		m := e.Expected
		if e.Found != "" {
			m = fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
		}
		return "PARSE ERROR", e.Line, e.Col, m, true
	case *NameError:
		return "NAME ERROR", e.Line, e.Col, e.Msg, true
	case *RuntimeTypeError:
		return "TYPE ERROR", e.Line, e.Col, e.Msg, true
	case *ModuleNotFoundError:
		return "MODULE ERROR", e.Line, e.Col, e.Msg, true
	case *ControlFlowError:
		return "CONTROL FLOW ERROR", e.Line, e.Col, e.Msg, true
	case *RuntimeError:
		return "RUNTIME ERROR", e.Line, e.Col, e.Msg, true
	default:
		return "", 0, 0, "", false
	}
}

// IsIncomplete reports whether err signals that the input ended mid-construct
// (unterminated string, missing 'end', trailing operator). The REPL uses it
// to keep reading continuation lines instead of reporting a failure.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.Incomplete
	case *ParseError:
		return e.Incomplete
	default:
		return false
	}
}

// renderSnippet builds the snippet with up to one line of context on each
// side. Line is 1-based, col is 1-based, both clamped to the source bounds.
func renderSnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
