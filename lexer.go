// lexer.go — tokenizer for Clarice source text.
//
// Clarice is whitespace-agnostic: newlines and indentation are token
// separators only, never grammar. The lexer recognizes keywords, identifiers,
// integer and float literals, single-line `"..."` strings, triple-quoted
// `"""..."""` text blocks, and `#` comments (discarded). Every token carries
// its 1-based line and 0-based column for diagnostics.
package clarice

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	COMMA   // ","
	PERIOD  // "."

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	EQUALS // "=" (equality; assignment is `set ... to`)
	NEQ    // "/="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING    // "..." (template-capable)
	TEXTBLOCK // """...""" (verbatim)
	INTEGER
	NUMBER
	BOOLEAN

	// Keywords
	WITH
	AS
	LET
	SET
	TO
	IF
	THEN
	ELSE
	LOOP
	DO
	END
	BREAK
	PRINT
	PROMPT
	USING
	FROM
	AND
	ITER
	IN
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"with":   WITH,
	"as":     AS,
	"let":    LET,
	"set":    SET,
	"to":     TO,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"loop":   LOOP,
	"do":     DO,
	"end":    END,
	"break":  BREAK,
	"print":  PRINT,
	"prompt": PROMPT,
	"using":  USING,
	"from":   FROM,
	"and":    AND,
	"iter":   ITER,
	"in":     IN,
	"true":   BOOLEAN,
	"false":  BOOLEAN,
}

// LexError reports a malformed token or an invalid character.
// Incomplete marks errors that only interactive callers should treat as
// "keep reading" (an unterminated literal at end of input).
type LexError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans a Clarice source string into tokens.
type Lexer struct {
	src         string
	start       int // start index of current token
	cur         int // current index
	line        int // 1-based
	col         int // 0-based column within line
	tokens      []Token
	interactive bool

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// NewLexerInteractive creates a lexer whose end-of-input errors are marked
// incomplete, so a REPL can keep prompting for more lines.
func NewLexerInteractive(src string) *Lexer {
	return &Lexer{src: src, line: 1, interactive: true}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// rewindToStart puts the cursor back on the first byte of the current token
// so a scanner can re-consume it, keeping line/col in sync.
func (l *Lexer) rewindToStart() {
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

func (l *Lexer) errAtEnd(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg, Incomplete: l.interactive}
}

// ───────────────────────────── scanners ────────────────────────────────────

// scanString parses a `"..."` literal. Backslash escapes are decoded here;
// brace escapes (`{{`/`}}`) are left intact for the template parser.
func (l *Lexer) scanString() (string, error) {
	var out []byte
	for !l.isAtEnd() {
		ch, _ := l.advance()
		switch ch {
		case '"':
			return string(out), nil
		case '\n':
			return "", l.err("string was not terminated before end of line")
		case '\\':
			esc, ok := l.advance()
			if !ok {
				return "", l.errAtEnd("unfinished escape sequence")
			}
			switch esc {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				return "", l.err(fmt.Sprintf("invalid escape sequence: \\%c", esc))
			}
		default:
			out = append(out, ch)
		}
	}
	return "", l.errAtEnd("string was not terminated")
}

// scanTextBlock parses a `"""..."""` block verbatim (no escapes, no
// templates). The opening delimiter has already been consumed.
func (l *Lexer) scanTextBlock() (string, error) {
	startByte := l.cur
	for !l.isAtEnd() {
		if b0, _ := l.peek(); b0 == '"' {
			b1, ok1 := l.peekN(1)
			b2, ok2 := l.peekN(2)
			if ok1 && ok2 && b1 == '"' && b2 == '"' {
				text := l.src[startByte:l.cur]
				l.advance()
				l.advance()
				l.advance()
				return text, nil
			}
		}
		l.advance()
	}
	return "", l.errAtEnd("text block was not terminated")
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses an integer or a float (1, 12.5, 3.0e2).
func (l *Lexer) scanNumber() (TokenType, interface{}, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	sawDot := false
	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			sawDot = true
			l.advance()
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	sawExp := false
	if b, ok := l.peek(); ok && (b == 'e' || b == 'E') {
		save, saveCol := l.cur, l.col
		l.advance()
		if b2, ok := l.peek(); ok && (b2 == '+' || b2 == '-') {
			l.advance()
		}
		if b3, ok := l.peek(); ok && isDigit(b3) {
			sawExp = true
			for {
				b4, ok := l.peek()
				if !ok || !isDigit(b4) {
					break
				}
				l.advance()
			}
		} else {
			l.cur, l.col = save, saveCol
		}
	}

	lex := l.src[l.start:l.cur]
	if !sawDot && !sawExp {
		v, convErr := strconv.ParseInt(lex, 10, 64)
		if convErr != nil {
			return ILLEGAL, nil, l.err("invalid integer literal")
		}
		return INTEGER, v, nil
	}
	vf, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.err("invalid float literal")
	}
	return NUMBER, vf, nil
}

// ignoreUntilNewline eats a `#` comment.
func (l *Lexer) ignoreUntilNewline() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// ───────────────────────────── main scanner ────────────────────────────────

func (l *Lexer) scanToken() (Token, error) {
	for {
		l.skipWhitespace()
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		l.start = l.cur

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		ch, _ := l.advance()

		switch ch {
		case '(':
			return l.addToken(LROUND, "("), nil
		case ')':
			return l.addToken(RROUND, ")"), nil
		case '[':
			return l.addToken(LSQUARE, "["), nil
		case ']':
			return l.addToken(RSQUARE, "]"), nil
		case ',':
			return l.addToken(COMMA, ","), nil
		case '+':
			return l.addToken(PLUS, "+"), nil
		case '-':
			return l.addToken(MINUS, "-"), nil
		case '*':
			return l.addToken(MULT, "*"), nil
		case '=':
			return l.addToken(EQUALS, "="), nil
		}

		if ch == '/' {
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(NEQ, "/="), nil
			}
			return l.addToken(DIV, "/"), nil
		}
		if ch == '<' {
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(LESS_EQ, "<="), nil
			}
			return l.addToken(LESS, "<"), nil
		}
		if ch == '>' {
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(GREATER_EQ, ">="), nil
			}
			return l.addToken(GREATER, ">"), nil
		}

		// '.' : decimal-starting float or member access
		if ch == '.' {
			if b, ok := l.peek(); ok && isDigit(b) {
				l.rewindToStart()
				tt, lit, err := l.scanNumber()
				if err != nil {
					return Token{}, err
				}
				return l.addToken(tt, lit), nil
			}
			return l.addToken(PERIOD, "."), nil
		}

		// Comments: `#` through end of line, discarded.
		if ch == '#' {
			l.ignoreUntilNewline()
			l.start = l.cur
			continue
		}

		// Strings & text blocks
		if ch == '"' {
			if b1, ok1 := l.peek(); ok1 && b1 == '"' {
				if b2, ok2 := l.peekN(1); ok2 && b2 == '"' {
					l.advance()
					l.advance()
					text, err := l.scanTextBlock()
					if err != nil {
						return Token{}, err
					}
					return l.addToken(TEXTBLOCK, text), nil
				}
				// empty string: `""` not followed by a third quote
				l.advance()
				return l.addToken(STRING, ""), nil
			}
			text, err := l.scanString()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(STRING, text), nil
		}

		// Numbers
		if isDigit(ch) {
			l.rewindToStart()
			tt, lit, err := l.scanNumber()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(tt, lit), nil
		}

		// Identifiers / keywords
		if isAlpha(ch) {
			l.rewindToStart()
			lex := l.scanIdentifier()
			if tt, ok := keywords[lex]; ok {
				if tt == BOOLEAN {
					return l.addToken(BOOLEAN, lex == "true"), nil
				}
				return l.addToken(tt, lex), nil
			}
			return l.addToken(ID, lex), nil
		}

		return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
