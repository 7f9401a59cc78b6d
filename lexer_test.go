package clarice

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_HelloWorld(t *testing.T) {
	src := `
# greet the user
with greeting as "Hello, world!" print greeting
`
	wantTypes(t, src, []TokenType{
		WITH, ID, AS, STRING, PRINT, ID,
	})
}

func Test_Lexer_Keywords_Vs_Identifiers(t *testing.T) {
	ts := wantTypes(t, `let letter set settle to together`, []TokenType{
		LET, ID, SET, ID, TO, ID,
	})
	if ts[1].Lexeme != "letter" || ts[3].Lexeme != "settle" || ts[5].Lexeme != "together" {
		t.Fatalf("unexpected lexemes: %v", ts)
	}
}

func Test_Lexer_Operators(t *testing.T) {
	wantTypes(t, `a = b /= c < d <= e > f >= g + h - i * j / k`, []TokenType{
		ID, EQUALS, ID, NEQ, ID, LESS, ID, LESS_EQ, ID, GREATER, ID,
		GREATER_EQ, ID, PLUS, ID, MINUS, ID, MULT, ID, DIV, ID,
	})
}

func Test_Lexer_Numbers(t *testing.T) {
	ts := wantTypes(t, `42 2.5 1e3`, []TokenType{INTEGER, NUMBER, NUMBER})
	if ts[0].Literal.(int64) != 42 {
		t.Fatalf("want 42, got %#v", ts[0].Literal)
	}
	if ts[1].Literal.(float64) != 2.5 {
		t.Fatalf("want 2.5, got %#v", ts[1].Literal)
	}
	if ts[2].Literal.(float64) != 1000 {
		t.Fatalf("want 1000, got %#v", ts[2].Literal)
	}
}

func Test_Lexer_String_Escapes(t *testing.T) {
	ts := wantTypes(t, `"a\"b\\c\nd\te"`, []TokenType{STRING})
	if ts[0].Literal.(string) != "a\"b\\c\nd\te" {
		t.Fatalf("bad decode: %q", ts[0].Literal)
	}
}

func Test_Lexer_String_Newline_Is_Error(t *testing.T) {
	_, err := NewLexer("\"broken\nstring\"").Scan()
	if err == nil {
		t.Fatalf("want lex error for newline in string")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
}

func Test_Lexer_Unterminated_String(t *testing.T) {
	_, err := NewLexer(`"open`).Scan()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if le.Incomplete {
		t.Fatalf("batch mode must not be incomplete")
	}

	_, err = NewLexerInteractive(`"open`).Scan()
	le, ok = err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if !le.Incomplete {
		t.Fatalf("interactive unterminated string must be incomplete")
	}
}

func Test_Lexer_TextBlock_Verbatim(t *testing.T) {
	ts := wantTypes(t, "\"\"\"one\ntwo \"quoted\" {braces}\"\"\"", []TokenType{TEXTBLOCK})
	want := "one\ntwo \"quoted\" {braces}"
	if ts[0].Literal.(string) != want {
		t.Fatalf("want %q, got %q", want, ts[0].Literal)
	}
}

func Test_Lexer_Comments_Discarded(t *testing.T) {
	wantTypes(t, "print 1 # trailing comment\n# whole line\nprint 2", []TokenType{
		PRINT, INTEGER, PRINT, INTEGER,
	})
}

func Test_Lexer_Booleans(t *testing.T) {
	ts := wantTypes(t, `true false trueish`, []TokenType{BOOLEAN, BOOLEAN, ID})
	if ts[0].Literal.(bool) != true || ts[1].Literal.(bool) != false {
		t.Fatalf("bad boolean literals: %v", ts)
	}
}

func Test_Lexer_Punctuation(t *testing.T) {
	wantTypes(t, `f(a, b).c [1, 2]`, []TokenType{
		ID, LROUND, ID, COMMA, ID, RROUND, PERIOD, ID,
		LSQUARE, INTEGER, COMMA, INTEGER, RSQUARE,
	})
}

func Test_Lexer_Positions_Are_Tracked(t *testing.T) {
	ts := toks(t, "let x\nset x to 1")
	if ts[0].Line != 1 || ts[0].Col != 0 {
		t.Fatalf("let at %d:%d", ts[0].Line, ts[0].Col)
	}
	var set Token
	for _, tok := range ts {
		if tok.Type == SET {
			set = tok
		}
	}
	if set.Line != 2 || set.Col != 0 {
		t.Fatalf("set at %d:%d", set.Line, set.Col)
	}
}

func Test_Lexer_Illegal_Character(t *testing.T) {
	_, err := NewLexer("let x @ 1").Scan()
	if err == nil {
		t.Fatalf("want lex error for '@'")
	}
	if !strings.Contains(err.Error(), "lex error") {
		t.Fatalf("unexpected message: %v", err)
	}
}
