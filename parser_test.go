package clarice

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return prog
}

func parseOne(t *testing.T, src string) Stmt {
	t.Helper()
	prog := parse(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d\nsource:\n%s", len(prog.Stmts), src)
	}
	return prog.Stmts[0]
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error, got none\nsource:\n%s", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	return pe
}

func Test_Parser_With_Binding_Form(t *testing.T) {
	st, ok := parseOne(t, `with x as 6 print x`).(*WithStmt)
	if !ok {
		t.Fatalf("want *WithStmt")
	}
	if st.Name != "x" {
		t.Fatalf("want name x, got %q", st.Name)
	}
	if _, ok := st.Value.(*IntLit); !ok {
		t.Fatalf("want IntLit value, got %T", st.Value)
	}
	if _, ok := st.Body.(*PrintStmt); !ok {
		t.Fatalf("want PrintStmt body, got %T", st.Body)
	}
}

func Test_Parser_With_Alias_Form(t *testing.T) {
	st, ok := parseOne(t, `with score + 1 as bumped do print bumped`).(*AliasStmt)
	if !ok {
		t.Fatalf("want *AliasStmt")
	}
	if st.Alias != "bumped" {
		t.Fatalf("want alias bumped, got %q", st.Alias)
	}
	if _, ok := st.Target.(*BinaryExpr); !ok {
		t.Fatalf("want BinaryExpr target, got %T", st.Target)
	}
}

// `with a as b print b` is the binding form even though the value is an
// identifier: the alias form needs `do` after the alias.
func Test_Parser_With_Ident_Value_Is_Binding_Form(t *testing.T) {
	if _, ok := parseOne(t, `with a as b print b`).(*WithStmt); !ok {
		t.Fatalf("want *WithStmt")
	}
}

func Test_Parser_With_NonIdent_Binder_Is_Error(t *testing.T) {
	parseErr(t, `with 1 + 2 as 3 print x`)
}

func Test_Parser_Let_With_And_Without_Hint(t *testing.T) {
	st := parseOne(t, `let x`).(*LetStmt)
	if st.Name != "x" || st.TypeHint != "" {
		t.Fatalf("got %#v", st)
	}
	st = parseOne(t, `let y as int`).(*LetStmt)
	if st.Name != "y" || st.TypeHint != "int" {
		t.Fatalf("got %#v", st)
	}
}

func Test_Parser_Set(t *testing.T) {
	st := parseOne(t, `set x to 1 + 2`).(*SetStmt)
	if st.Name != "x" {
		t.Fatalf("got %#v", st)
	}
	if _, ok := st.Value.(*BinaryExpr); !ok {
		t.Fatalf("want BinaryExpr, got %T", st.Value)
	}
}

func Test_Parser_Set_Requires_To(t *testing.T) {
	pe := parseErr(t, `set x 1`)
	if !strings.Contains(pe.Error(), "'to'") {
		t.Fatalf("unexpected message: %v", pe)
	}
}

func Test_Parser_If_Then_Else(t *testing.T) {
	st := parseOne(t, `if a < b then print a else print b`).(*IfStmt)
	if _, ok := st.Cond.(*BinaryExpr); !ok {
		t.Fatalf("want BinaryExpr cond, got %T", st.Cond)
	}
	if st.Else == nil {
		t.Fatalf("want else branch")
	}
	st = parseOne(t, `if a then print a`).(*IfStmt)
	if st.Else != nil {
		t.Fatalf("want no else branch")
	}
}

func Test_Parser_Loop_Do_End(t *testing.T) {
	st := parseOne(t, "loop do\n  print 1\n  break\nend").(*LoopStmt)
	if len(st.Body) != 2 {
		t.Fatalf("want 2 body statements, got %d", len(st.Body))
	}
	if _, ok := st.Body[1].(*BreakStmt); !ok {
		t.Fatalf("want BreakStmt, got %T", st.Body[1])
	}
}

func Test_Parser_Loop_End_Is_Optional(t *testing.T) {
	st := parseOne(t, "loop do\n  break").(*LoopStmt)
	if len(st.Body) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(st.Body))
	}
}

func Test_Parser_Loop_Empty_Body_Is_Error(t *testing.T) {
	parseErr(t, "loop do end")
}

func Test_Parser_Iter(t *testing.T) {
	st := parseOne(t, `iter x in [1, 2] do print x`).(*IterStmt)
	if st.Name != "x" {
		t.Fatalf("got %#v", st)
	}
	if _, ok := st.Source.(*ListLit); !ok {
		t.Fatalf("want ListLit source, got %T", st.Source)
	}
}

func Test_Parser_Prompt(t *testing.T) {
	st := parseOne(t, `prompt "Ready? " then print "go"`).(*PromptStmt)
	if st.Text != "Ready? " {
		t.Fatalf("got text %q", st.Text)
	}
	if _, ok := st.Body.(*PrintStmt); !ok {
		t.Fatalf("want PrintStmt body, got %T", st.Body)
	}
}

func Test_Parser_Using_Path(t *testing.T) {
	st := parseOne(t, `using Markdown from Clarice/Extra`).(*UsingStmt)
	if st.Name != "Markdown" || st.Path != "Clarice/Extra" {
		t.Fatalf("got %#v", st)
	}
}

func Test_Parser_Then_Separates_Statements(t *testing.T) {
	prog := parse(t, `let x then set x to 1 then print x`)
	if len(prog.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(prog.Stmts))
	}
}

func Test_Parser_Newlines_Separate_Statements(t *testing.T) {
	prog := parse(t, "let x\nset x to 1\nprint x")
	if len(prog.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(prog.Stmts))
	}
}

func Test_Parser_Equals_Is_Equality(t *testing.T) {
	st := parseOne(t, `x = 1`).(*ExprStmt)
	be, ok := st.Value.(*BinaryExpr)
	if !ok || be.Op != "=" {
		t.Fatalf("want equality BinaryExpr, got %#v", st.Value)
	}
}

func Test_Parser_And_Sequencing(t *testing.T) {
	st := parseOne(t, `x + 1 and print x`).(*ExprStmt)
	ae, ok := st.Value.(*AndExpr)
	if !ok {
		t.Fatalf("want AndExpr, got %T", st.Value)
	}
	if _, ok := ae.Value.(*BinaryExpr); !ok {
		t.Fatalf("want BinaryExpr lead, got %T", ae.Value)
	}
	if _, ok := ae.Then.(*PrintStmt); !ok {
		t.Fatalf("want PrintStmt tail, got %T", ae.Then)
	}
}

func Test_Parser_Call_And_Member_Chains(t *testing.T) {
	st := parseOne(t, `Text.Upper("abc")`).(*ExprStmt)
	call, ok := st.Value.(*CallExpr)
	if !ok {
		t.Fatalf("want CallExpr, got %T", st.Value)
	}
	mem, ok := call.Callee.(*MemberExpr)
	if !ok || mem.Name != "Upper" {
		t.Fatalf("want MemberExpr Upper, got %#v", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("want 1 arg, got %d", len(call.Args))
	}
}

func Test_Parser_Template_Parts(t *testing.T) {
	st := parseOne(t, `"a {x + 1} b"`).(*ExprStmt)
	tpl, ok := st.Value.(*TemplateExpr)
	if !ok {
		t.Fatalf("want TemplateExpr, got %T", st.Value)
	}
	if len(tpl.Parts) != 3 {
		t.Fatalf("want 3 parts, got %d", len(tpl.Parts))
	}
	if lit, ok := tpl.Parts[0].(*StringLit); !ok || lit.Value != "a " {
		t.Fatalf("part 0: %#v", tpl.Parts[0])
	}
	if _, ok := tpl.Parts[1].(*BinaryExpr); !ok {
		t.Fatalf("part 1: %#v", tpl.Parts[1])
	}
}

func Test_Parser_Template_Brace_Escapes(t *testing.T) {
	st := parseOne(t, `"{{x}}"`).(*ExprStmt)
	lit, ok := st.Value.(*StringLit)
	if !ok || lit.Value != "{x}" {
		t.Fatalf("want plain string {x}, got %#v", st.Value)
	}
}

func Test_Parser_Template_Unclosed_Brace_Is_Error(t *testing.T) {
	parseErr(t, `"oops {x"`)
}

func Test_Parser_Incomplete_Detection(t *testing.T) {
	cases := []string{
		"loop do\n  print 1",
		"if a then",
		"with x as",
		"1 +",
	}
	for _, src := range cases {
		_, err := ParseInteractive(src)
		if err == nil {
			if src == "loop do\n  print 1" {
				// A loop without `end` parses; the REPL submits it as-is.
				continue
			}
			t.Fatalf("want error for %q", src)
		}
		if !IsIncomplete(err) {
			t.Fatalf("want incomplete for %q, got %v", src, err)
		}
	}

	_, err := ParseInteractive("let 5")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("genuine syntax error must not be incomplete, got %v", err)
	}
}

func Test_Parser_Positions_Reported(t *testing.T) {
	pe := parseErr(t, "let x\nset y 1")
	if pe.Line != 2 {
		t.Fatalf("want error on line 2, got %d", pe.Line)
	}
}
