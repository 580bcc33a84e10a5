package core

import "strings"

type exprKind int

const (
	exprRaw exprKind = iota
	exprString
	exprNumber
	exprBool
	exprNull
	exprChain
)

// segment is one link of a dotted reference such as
// signingConfigs.getByName("debug").
type segment struct {
	name string
	call bool
	args []argument
}

type argument struct {
	name  string
	value expr
}

// expr is a parsed right-hand side. Literals keep their text; references
// keep their chain. Literals followed by method calls ("17".toInt()) carry
// those calls in chain as well. Anything the reader does not model is
// exprRaw and evaluates to nothing.
type expr struct {
	kind  exprKind
	text  string
	chain []segment
	line  int
}

type stmtKind int

const (
	stmtAssign stmtKind = iota
	stmtCall
	stmtBlock
	stmtDecl
)

type statement struct {
	kind  stmtKind
	chain []segment
	name  string
	value expr
	args  []argument
	body  []statement
	line  int
}

// header returns the dotted name of the statement target without call
// arguments, e.g. "compileOptions" or "kotlinOptions.jvmTarget".
func (s statement) header() string {
	return chainPath(s.chain)
}

// callArgs returns the arguments of a call statement in either DSL:
// Kotlin puts them in parentheses, Groovy command syntax after the name.
func (s statement) callArgs() []argument {
	if len(s.args) > 0 {
		return s.args
	}
	if n := len(s.chain); n > 0 {
		return s.chain[n-1].args
	}
	return nil
}

func chainPath(chain []segment) string {
	names := make([]string, 0, len(chain))
	for _, seg := range chain {
		names = append(names, seg.name)
	}
	return strings.Join(names, ".")
}

// parseScript parses the Gradle DSL subset used by Flutter app modules
// into a statement tree.
func parseScript(src string) ([]statement, error) {
	toks, err := lexScript(src)
	if err != nil {
		return nil, err
	}
	p := &scriptParser{toks: toks}
	return p.statements(false)
}

type scriptParser struct {
	toks []token
	pos  int
}

func (p *scriptParser) cur() token {
	return p.toks[p.pos]
}

func (p *scriptParser) peekKind(offset int) tokenKind {
	return p.peek(offset).kind
}

func (p *scriptParser) peek(offset int) token {
	if p.pos+offset >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+offset]
}

// atIndex reports a literal index such as ["release"].
func (p *scriptParser) atIndex() bool {
	open, key, closing := p.peek(0), p.peek(1), p.peek(2)
	return open.kind == tokOther && open.text == "[" &&
		key.kind == tokString &&
		closing.kind == tokOther && closing.text == "]"
}

func (p *scriptParser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *scriptParser) skipNewlines() {
	for p.cur().kind == tokNewline {
		p.pos++
	}
}

func (p *scriptParser) statements(nested bool) ([]statement, error) {
	var out []statement
	for {
		p.skipNewlines()
		tok := p.cur()
		switch tok.kind {
		case tokEOF:
			if nested {
				return nil, NewParseError(tok.line, "unexpected end of file, missing '}'")
			}
			return out, nil
		case tokRBrace:
			if !nested {
				return nil, NewParseError(tok.line, "unexpected '}'")
			}
			p.advance()
			return out, nil
		}
		stmt, ok, err := p.statement()
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, stmt)
		}
	}
}

func (p *scriptParser) statement() (statement, bool, error) {
	tok := p.cur()
	if tok.kind != tokIdent {
		return statement{}, false, p.skipStatement()
	}
	switch tok.text {
	case "val", "var", "def":
		if p.peekKind(1) == tokIdent {
			return p.declaration()
		}
	case "import", "package":
		return statement{}, false, p.skipStatement()
	}

	chain, err := p.chain()
	if err != nil {
		return statement{}, false, err
	}
	stmt := statement{chain: chain, line: tok.line}
	switch p.cur().kind {
	case tokAssign:
		p.advance()
		value, err := p.expression()
		if err != nil {
			return statement{}, false, err
		}
		stmt.kind = stmtAssign
		stmt.value = value
		return stmt, true, p.endOfStatement()
	case tokLBrace:
		p.advance()
		body, err := p.statements(true)
		if err != nil {
			return statement{}, false, err
		}
		stmt.kind = stmtBlock
		stmt.body = body
		return stmt, true, nil
	case tokNewline, tokEOF, tokRBrace:
		stmt.kind = stmtCall
		return stmt, true, nil
	}

	args, err := p.commandArgs()
	if err != nil {
		return statement{}, false, err
	}
	stmt.kind = stmtCall
	stmt.args = args
	if p.cur().kind == tokLBrace {
		p.advance()
		body, err := p.statements(true)
		if err != nil {
			return statement{}, false, err
		}
		stmt.kind = stmtBlock
		stmt.body = body
		return stmt, true, nil
	}
	return stmt, true, p.endOfStatement()
}

func (p *scriptParser) declaration() (statement, bool, error) {
	line := p.advance().line
	name := p.advance().text
	if p.cur().kind == tokColon {
		for k := p.cur().kind; k != tokAssign && k != tokNewline && k != tokEOF && k != tokRBrace; k = p.cur().kind {
			p.advance()
		}
	}
	if p.cur().kind != tokAssign {
		return statement{}, false, p.skipStatement()
	}
	p.advance()
	value, err := p.expression()
	if err != nil {
		return statement{}, false, err
	}
	return statement{kind: stmtDecl, name: name, value: value, line: line}, true, p.endOfStatement()
}

// endOfStatement drops whatever trails a parsed statement on the same
// line, e.g. Groovy's `id 'x' version '1.0' apply false`.
func (p *scriptParser) endOfStatement() error {
	switch p.cur().kind {
	case tokNewline, tokEOF, tokRBrace:
		return nil
	}
	return p.skipStatement()
}

// skipStatement consumes tokens up to the end of the current line while
// keeping braces balanced. A closing brace of the enclosing block is left
// in place.
func (p *scriptParser) skipStatement() error {
	depth := 0
	for {
		tok := p.cur()
		switch tok.kind {
		case tokEOF:
			if depth > 0 {
				return NewParseError(tok.line, "unexpected end of file, missing '}'")
			}
			return nil
		case tokNewline:
			if depth == 0 {
				return nil
			}
		case tokLBrace:
			depth++
		case tokRBrace:
			if depth == 0 {
				return nil
			}
			depth--
		}
		p.advance()
	}
}

func (p *scriptParser) chain() ([]segment, error) {
	var segs []segment
	for {
		tok := p.cur()
		if tok.kind != tokIdent {
			return nil, NewParseError(tok.line, "expected identifier, found %q", tok.text)
		}
		p.advance()
		seg := segment{name: tok.text}
		if p.cur().kind == tokLParen {
			args, err := p.parenArgs()
			if err != nil {
				return nil, err
			}
			seg.call = true
			seg.args = args
		}
		segs = append(segs, seg)
		// name["key"] is the Kotlin operator form of name.getAt("key").
		for p.atIndex() {
			p.advance()
			key := p.advance()
			p.advance()
			segs = append(segs, segment{
				name: "getAt",
				call: true,
				args: []argument{{value: expr{kind: exprString, text: key.text, line: key.line}}},
			})
		}
		if p.cur().kind == tokDot && p.peekKind(1) == tokIdent {
			p.advance()
			continue
		}
		return segs, nil
	}
}

func (p *scriptParser) parenArgs() ([]argument, error) {
	open := p.advance()
	var args []argument
	p.skipNewlines()
	if p.cur().kind == tokRParen {
		p.advance()
		return args, nil
	}
	for {
		p.skipNewlines()
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		switch tok := p.cur(); tok.kind {
		case tokComma:
			p.advance()
		case tokRParen:
			p.advance()
			return args, nil
		case tokEOF:
			return nil, NewParseError(open.line, "unterminated argument list")
		default:
			return nil, NewParseError(tok.line, "expected ',' or ')', found %q", tok.text)
		}
	}
}

func (p *scriptParser) commandArgs() ([]argument, error) {
	var args []argument
	for {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().kind != tokComma {
			return args, nil
		}
		p.advance()
		p.skipNewlines()
	}
}

func (p *scriptParser) argument() (argument, error) {
	var arg argument
	if p.cur().kind == tokIdent && (p.peekKind(1) == tokColon || p.peekKind(1) == tokAssign) {
		arg.name = p.advance().text
		p.advance()
	}
	value, err := p.expression()
	if err != nil {
		return argument{}, err
	}
	arg.value = value
	return arg, nil
}

func (p *scriptParser) expression() (expr, error) {
	tok := p.cur()
	e := expr{line: tok.line}
	switch tok.kind {
	case tokString:
		p.advance()
		e.kind = exprString
		e.text = tok.text
	case tokNumber:
		p.advance()
		e.kind = exprNumber
		e.text = tok.text
	case tokIdent:
		switch tok.text {
		case "true", "false":
			p.advance()
			e.kind = exprBool
			e.text = tok.text
		case "null":
			p.advance()
			e.kind = exprNull
		default:
			chain, err := p.chain()
			if err != nil {
				return expr{}, err
			}
			e.kind = exprChain
			e.chain = chain
		}
	case tokOther:
		if tok.text == "-" && p.peekKind(1) == tokNumber {
			p.advance()
			e.kind = exprNumber
			e.text = "-" + p.advance().text
			break
		}
		return p.rawExpression(e)
	default:
		return p.rawExpression(e)
	}
	if e.kind != exprChain && p.cur().kind == tokDot && p.peekKind(1) == tokIdent {
		p.advance()
		chain, err := p.chain()
		if err != nil {
			return expr{}, err
		}
		e.chain = chain
	}
	if tok := p.cur(); tok.kind == tokIdent && tok.text == "as" {
		return p.rawExpression(e)
	}
	switch p.cur().kind {
	case tokNewline, tokEOF, tokRBrace, tokRParen, tokComma, tokIdent, tokLBrace:
		return e, nil
	}
	return p.rawExpression(e)
}

// rawExpression consumes an expression the reader does not model (string
// templates with operators, elvis, indexing, casts) up to the next
// top-level delimiter.
func (p *scriptParser) rawExpression(e expr) (expr, error) {
	var b strings.Builder
	if e.text != "" {
		b.WriteString(e.text)
	} else if len(e.chain) > 0 {
		b.WriteString(chainPath(e.chain))
	}
	depth := 0
	for {
		tok := p.cur()
		switch tok.kind {
		case tokEOF:
			if depth > 0 {
				return expr{}, NewParseError(e.line, "unterminated expression")
			}
			return expr{kind: exprRaw, text: b.String(), line: e.line}, nil
		case tokNewline, tokComma:
			if depth == 0 {
				return expr{kind: exprRaw, text: b.String(), line: e.line}, nil
			}
		case tokRParen, tokRBrace:
			if depth == 0 {
				return expr{kind: exprRaw, text: b.String(), line: e.line}, nil
			}
			depth--
		case tokLParen, tokLBrace:
			depth++
		case tokOther:
			switch tok.text {
			case "[":
				depth++
			case "]":
				if depth > 0 {
					depth--
				}
			}
		}
		b.WriteString(tok.text)
		p.advance()
	}
}
