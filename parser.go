// parser.go — recursive-descent parser for Clarice.
//
// The parser consumes the token stream from lexer.go and builds the typed AST
// defined in ast.go. It performs no semantic checks beyond syntactic
// well-formedness; the first structural mismatch aborts the whole parse.
//
// The two `with` forms are disambiguated with single-token lookahead after
// `as`: an identifier directly followed by `do` selects the alias form
// (`with EXPR as IDENT do STMT`), anything else the binding form
// (`with IDENT as EXPR STMT`). This avoids backtracking a full expression.
//
// `then` between statements is a plain separator, like `;` elsewhere. The
// `then` that introduces an `if` branch or a `prompt` body is consumed by
// those constructs before statement-separator skipping applies.
package clarice

import (
	"fmt"
	"strings"
)

// ParseError reports a grammar violation: what the parser expected and what
// it found, with the position of the offending token. Incomplete marks
// end-of-input errors in interactive mode (REPL continuation).
type ParseError struct {
	Line       int
	Col        int
	Expected   string
	Found      string
	Incomplete bool
}

func (e *ParseError) Error() string {
	if e.Found != "" {
		return fmt.Sprintf("parse error at %d:%d: expected %s, found %s", e.Line, e.Col, e.Expected, e.Found)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Expected)
}

// Parse tokenizes and parses a complete Clarice source string.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses in REPL-friendly mode: unterminated constructs at
// end of input produce errors for which IsIncomplete reports true.
func ParseInteractive(src string) (*Program, error) {
	toks, err := NewLexerInteractive(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

// ─────────────────────── token basics & helpers ────────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, expected string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errExpected(expected)
}

func (p *parser) errExpected(expected string) error {
	g := p.peek()
	e := &ParseError{Line: g.Line, Col: g.Col, Expected: expected, Found: tokenDesc(g)}
	if g.Type == EOF && p.interactive {
		e.Incomplete = true
	}
	return e
}

func tokenDesc(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING, TEXTBLOCK:
		return "string literal"
	case INTEGER, NUMBER:
		return fmt.Sprintf("number %s", t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}

func tokPos(t Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

// skipSeparators eats `then` used as a statement separator.
func (p *parser) skipSeparators() {
	for p.match(THEN) {
	}
}

// ─────────────────────────────── program ───────────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	p.skipSeparators()
	for !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, s)
		p.skipSeparators()
	}
	return prog, nil
}

// ────────────────────────────── statements ─────────────────────────────────

func (p *parser) statement() (Stmt, error) {
	p.skipSeparators()
	tok := p.peek()
	switch tok.Type {
	case WITH:
		return p.withStatement()
	case LET:
		return p.letStatement()
	case SET:
		return p.setStatement()
	case IF:
		return p.ifStatement()
	case LOOP:
		return p.loopStatement()
	case ITER:
		return p.iterStatement()
	case BREAK:
		p.i++
		return &BreakStmt{Pos: tokPos(tok)}, nil
	case PRINT:
		p.i++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &PrintStmt{Pos: tokPos(tok), Value: e}, nil
	case PROMPT:
		return p.promptStatement()
	case USING:
		return p.usingStatement()
	case EOF:
		return nil, p.errExpected("a statement")
	default:
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Pos: tokPos(tok), Value: e}, nil
	}
}

func (p *parser) withStatement() (Stmt, error) {
	with := p.peek()
	p.i++

	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(AS, "'as'"); err != nil {
		return nil, err
	}

	// Alias form: `with EXPR as IDENT do STMT`. Decided by the token pair
	// right after `as`, per the grammar's lookahead rule.
	if p.peek().Type == ID && p.peekN(1).Type == DO {
		alias := p.peek().Literal.(string)
		p.i += 2 // identifier + `do`
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &AliasStmt{Pos: tokPos(with), Target: first, Alias: alias, Body: body}, nil
	}

	// Binding form: `with IDENT as EXPR STMT`.
	id, ok := first.(*Ident)
	if !ok {
		return nil, &ParseError{
			Line:     with.Line,
			Col:      with.Col,
			Expected: "an identifier after 'with'",
			Found:    "an expression",
		}
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WithStmt{Pos: tokPos(with), Name: id.Name, Value: value, Body: body}, nil
}

func (p *parser) letStatement() (Stmt, error) {
	let := p.peek()
	p.i++
	id, err := p.need(ID, "an identifier after 'let'")
	if err != nil {
		return nil, err
	}
	st := &LetStmt{Pos: tokPos(let), Name: id.Literal.(string)}
	// Optional `as TYPE`: the type token is recorded but never checked.
	if p.match(AS) {
		hint, err := p.need(ID, "a type name after 'as'")
		if err != nil {
			return nil, err
		}
		st.TypeHint = hint.Literal.(string)
	}
	return st, nil
}

func (p *parser) setStatement() (Stmt, error) {
	set := p.peek()
	p.i++
	id, err := p.need(ID, "an identifier after 'set'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(TO, "'to'"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &SetStmt{Pos: tokPos(set), Name: id.Literal.(string), Value: value}, nil
}

func (p *parser) ifStatement() (Stmt, error) {
	ifTok := p.peek()
	p.i++
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "'then'"); err != nil {
		return nil, err
	}
	thenStmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	st := &IfStmt{Pos: tokPos(ifTok), Cond: cond, Then: thenStmt}
	if p.match(ELSE) {
		elseStmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		st.Else = elseStmt
	}
	return st, nil
}

func (p *parser) loopStatement() (Stmt, error) {
	loop := p.peek()
	p.i++
	if _, err := p.need(DO, "'do'"); err != nil {
		return nil, err
	}
	st := &LoopStmt{Pos: tokPos(loop)}
	p.skipSeparators()
	for !p.atEnd() && p.peek().Type != END {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		st.Body = append(st.Body, s)
		p.skipSeparators()
	}
	// `end` is optional at end of input; a loop needs at least one statement.
	if len(st.Body) == 0 {
		return nil, p.errExpected("a statement in the loop body")
	}
	p.match(END)
	return st, nil
}

func (p *parser) iterStatement() (Stmt, error) {
	iter := p.peek()
	p.i++
	id, err := p.need(ID, "an identifier after 'iter'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(IN, "'in'"); err != nil {
		return nil, err
	}
	source, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &IterStmt{Pos: tokPos(iter), Name: id.Literal.(string), Source: source, Body: body}, nil
}

func (p *parser) promptStatement() (Stmt, error) {
	prompt := p.peek()
	p.i++
	lit, err := p.need(STRING, "a string literal after 'prompt'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "'then'"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &PromptStmt{Pos: tokPos(prompt), Text: lit.Literal.(string), Body: body}, nil
}

func (p *parser) usingStatement() (Stmt, error) {
	using := p.peek()
	p.i++
	id, err := p.need(ID, "an identifier after 'using'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(FROM, "'from'"); err != nil {
		return nil, err
	}
	path, err := p.modulePath()
	if err != nil {
		return nil, err
	}
	return &UsingStmt{Pos: tokPos(using), Name: id.Literal.(string), Path: path}, nil
}

// modulePath parses `IDENT ("/" IDENT)*` into a slash-joined path.
func (p *parser) modulePath() (string, error) {
	seg, err := p.need(ID, "a module path after 'from'")
	if err != nil {
		return "", err
	}
	parts := []string{seg.Literal.(string)}
	for p.match(DIV) {
		seg, err := p.need(ID, "a path segment after '/'")
		if err != nil {
			return "", err
		}
		parts = append(parts, seg.Literal.(string))
	}
	return strings.Join(parts, "/"), nil
}

// ────────────────────────────── expressions ────────────────────────────────

// expression parses the full expression grammar, including the `EXPR and
// STMT` sequencing sugar at the lowest binding strength.
func (p *parser) expression() (Expr, error) {
	e, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		andTok := p.prev()
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		e = &AndExpr{Pos: tokPos(andTok), Value: e, Then: s}
	}
	return e, nil
}

func (p *parser) equality() (Expr, error) {
	e, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQUALS, NEQ) {
		op := p.prev()
		rhs, err := p.comparison()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Pos: tokPos(op), Op: op.Lexeme, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *parser) comparison() (Expr, error) {
	e, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQ, GREATER, GREATER_EQ) {
		op := p.prev()
		rhs, err := p.additive()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Pos: tokPos(op), Op: op.Lexeme, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *parser) additive() (Expr, error) {
	e, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		rhs, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Pos: tokPos(op), Op: op.Lexeme, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *parser) multiplicative() (Expr, error) {
	e, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(MULT, DIV) {
		op := p.prev()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Pos: tokPos(op), Op: op.Lexeme, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: tokPos(op), Op: "-", Operand: operand}, nil
	}
	return p.postfix()
}

// postfix parses calls and member access on a primary expression.
func (p *parser) postfix() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LROUND):
			open := p.prev()
			var args []Expr
			if p.peek().Type != RROUND {
				for {
					a, err := p.expression()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.match(COMMA) {
						break
					}
				}
			}
			if _, err := p.need(RROUND, "')' to close the call"); err != nil {
				return nil, err
			}
			e = &CallExpr{Pos: tokPos(open), Callee: e, Args: args}
		case p.match(PERIOD):
			dot := p.prev()
			name, err := p.need(ID, "a member name after '.'")
			if err != nil {
				return nil, err
			}
			e = &MemberExpr{Pos: tokPos(dot), Object: e, Name: name.Literal.(string)}
		default:
			return e, nil
		}
	}
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.i++
		return &IntLit{Pos: tokPos(tok), Value: tok.Literal.(int64)}, nil
	case NUMBER:
		p.i++
		return &FloatLit{Pos: tokPos(tok), Value: tok.Literal.(float64)}, nil
	case BOOLEAN:
		p.i++
		return &BoolLit{Pos: tokPos(tok), Value: tok.Literal.(bool)}, nil
	case TEXTBLOCK:
		p.i++
		return &StringLit{Pos: tokPos(tok), Value: tok.Literal.(string)}, nil
	case STRING:
		p.i++
		return parseTemplate(tokPos(tok), tok.Literal.(string))
	case ID:
		p.i++
		return &Ident{Pos: tokPos(tok), Name: tok.Literal.(string)}, nil
	case LSQUARE:
		p.i++
		lit := &ListLit{Pos: tokPos(tok)}
		if p.peek().Type != RSQUARE {
			for {
				e, err := p.expression()
				if err != nil {
					return nil, err
				}
				lit.Elems = append(lit.Elems, e)
				if !p.match(COMMA) {
					break
				}
			}
		}
		if _, err := p.need(RSQUARE, "']' to close the list"); err != nil {
			return nil, err
		}
		return lit, nil
	case LROUND:
		p.i++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errExpected("an expression")
	}
}

// ─────────────────────────── string templates ──────────────────────────────

// parseTemplate splits a double-quoted literal into literal and `{expr}`
// segments. `{{` and `}}` are brace escapes. A literal with no active brace
// stays a plain StringLit.
func parseTemplate(pos Pos, text string) (Expr, error) {
	var parts []Expr
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, &StringLit{Pos: pos, Value: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, &ParseError{
					Line:     pos.Line,
					Col:      pos.Col,
					Expected: "'}' to close the template expression",
					Found:    "end of string",
				}
			}
			inner := text[i+1 : i+1+end]
			e, err := parseTemplateExpr(pos, inner)
			if err != nil {
				return nil, err
			}
			flush()
			parts = append(parts, e)
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &ParseError{
				Line:     pos.Line,
				Col:      pos.Col,
				Expected: "'{' before '}' in template (use '}}' for a literal brace)",
				Found:    "'}'",
			}
		default:
			lit.WriteByte(c)
		}
	}

	if len(parts) == 0 {
		return &StringLit{Pos: pos, Value: lit.String()}, nil
	}
	flush()
	return &TemplateExpr{Pos: pos, Parts: parts}, nil
}

// parseTemplateExpr parses the contents of one `{...}` segment as a complete
// expression.
func parseTemplateExpr(pos Pos, inner string) (Expr, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, &ParseError{Line: pos.Line, Col: pos.Col, Expected: "an expression inside '{...}'"}
	}
	toks, err := NewLexer(inner).Scan()
	if err != nil {
		return nil, &ParseError{
			Line:     pos.Line,
			Col:      pos.Col,
			Expected: fmt.Sprintf("a valid template expression (%v)", err),
		}
	}
	sub := &parser{toks: toks}
	e, perr := sub.expression()
	if perr != nil {
		return nil, perr
	}
	if !sub.atEnd() {
		return nil, &ParseError{
			Line:     pos.Line,
			Col:      pos.Col,
			Expected: "a single expression inside '{...}'",
			Found:    tokenDesc(sub.peek()),
		}
	}
	return e, nil
}
