package clarice

import (
	"strings"
	"testing"
)

func Test_ErrorWrap_Parse_ShowsCaretAndContext(t *testing.T) {
	src := "let x\nset y 1\nprint x"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	if !strings.HasPrefix(msg, "PARSE ERROR at 2:") {
		t.Fatalf("bad header: %q", msg)
	}
	for _, want := range []string{"   1 | let x", "   2 | set y 1", "   3 | print x", "^"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in:\n%s", want, msg)
		}
	}
}

func Test_ErrorWrap_Lex_ShowsCaret(t *testing.T) {
	src := `let x @ 1`
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatalf("want lex error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.HasPrefix(msg, "LEX ERROR at 1:") {
		t.Fatalf("bad header: %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret in:\n%s", msg)
	}
}

func Test_ErrorWrap_Name_Includes_SourceName(t *testing.T) {
	src := "print ghost"
	ip := NewInterpreter()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	_, rerr := ip.RunProgram(prog, NewEnv(ip.Global))
	if rerr == nil {
		t.Fatalf("want name error")
	}
	msg := WrapErrorWithName(rerr, "ghost.clrs", src).Error()
	if !strings.HasPrefix(msg, "NAME ERROR in ghost.clrs at 1:") {
		t.Fatalf("bad header: %q", msg)
	}
	if !strings.Contains(msg, "undefined variable 'ghost'") {
		t.Fatalf("missing message in:\n%s", msg)
	}
}

func Test_ErrorWrap_Runtime_Caret_Points_At_Operator(t *testing.T) {
	src := `1 / 0`
	ip := NewInterpreter()
	prog, _ := Parse(src)
	_, rerr := ip.RunProgram(prog, NewEnv(ip.Global))
	msg := WrapErrorWithSource(rerr, src).Error()
	if !strings.HasPrefix(msg, "RUNTIME ERROR at 1:") {
		t.Fatalf("bad header: %q", msg)
	}
	if !strings.Contains(msg, "division by zero") {
		t.Fatalf("missing message in:\n%s", msg)
	}
}

func Test_ErrorWrap_Unknown_Errors_Pass_Through(t *testing.T) {
	err := WrapErrorWithSource(errSentinel, "src")
	if err != errSentinel {
		t.Fatalf("unknown error must pass through, got %v", err)
	}
}

var errSentinel = &sentinelError{}

type sentinelError struct{}

func (*sentinelError) Error() string { return "sentinel" }

func Test_IsIncomplete(t *testing.T) {
	if !IsIncomplete(&ParseError{Incomplete: true}) {
		t.Fatalf("incomplete parse error must report true")
	}
	if IsIncomplete(&ParseError{}) {
		t.Fatalf("complete parse error must report false")
	}
	if !IsIncomplete(&LexError{Incomplete: true}) {
		t.Fatalf("incomplete lex error must report true")
	}
	if IsIncomplete(errSentinel) {
		t.Fatalf("foreign errors are never incomplete")
	}
}

func Test_ErrorTypes_Render_Position(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&NameError{Line: 2, Col: 4, Msg: "undefined variable 'x'"}, "name error at 2:4"},
		{&RuntimeTypeError{Line: 1, Col: 0, Msg: "no"}, "type error at 1:0"},
		{&ModuleNotFoundError{Line: 3, Col: 7, Msg: "no"}, "module error at 3:7"},
		{&ControlFlowError{Line: 1, Col: 1, Msg: "no"}, "control flow error at 1:1"},
		{&RuntimeError{Line: 9, Col: 9, Msg: "no"}, "runtime error at 9:9"},
	}
	for _, c := range cases {
		if !strings.Contains(c.err.Error(), c.want) {
			t.Fatalf("want %q in %q", c.want, c.err.Error())
		}
	}
}
