package core

import (
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokString
	tokNumber
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokAssign
	tokDot
	tokComma
	tokColon
	tokOther
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexScript splits a Gradle build script (Kotlin or Groovy DSL) into
// tokens. Consecutive line breaks collapse into one tokNewline and
// semicolons count as line breaks.
func lexScript(src string) ([]token, error) {
	lx := scriptLexer{src: []rune(src), line: 1}
	return lx.run()
}

type scriptLexer struct {
	src    []rune
	pos    int
	line   int
	tokens []token
}

func (l *scriptLexer) run() ([]token, error) {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case ch == '\n' || ch == ';':
			l.newline()
			if ch == '\n' {
				l.line++
			}
			l.pos++
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f':
			l.pos++
		case ch == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case ch == '/' && l.peek(1) == '*':
			if err := l.blockComment(); err != nil {
				return nil, err
			}
		case ch == '"' || ch == '\'':
			if err := l.stringLiteral(ch); err != nil {
				return nil, err
			}
		case ch == '`':
			if err := l.backtickIdent(); err != nil {
				return nil, err
			}
		case isDigit(ch):
			l.number()
		case isIdentStart(ch):
			l.ident()
		default:
			l.punct(ch)
		}
	}
	l.emit(tokEOF, "")
	return l.tokens, nil
}

func (l *scriptLexer) peek(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *scriptLexer) emit(kind tokenKind, text string) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, line: l.line})
}

func (l *scriptLexer) newline() {
	if n := len(l.tokens); n == 0 || l.tokens[n-1].kind == tokNewline {
		return
	}
	l.emit(tokNewline, "")
}

func (l *scriptLexer) blockComment() error {
	start := l.line
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			return nil
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	return NewParseError(start, "unterminated block comment")
}

func (l *scriptLexer) stringLiteral(quote rune) error {
	start := l.line
	if quote == '"' && l.peek(1) == '"' && l.peek(2) == '"' {
		l.pos += 3
		var b strings.Builder
		for l.pos < len(l.src) {
			if l.src[l.pos] == '"' && l.peek(1) == '"' && l.peek(2) == '"' {
				l.pos += 3
				l.tokens = append(l.tokens, token{kind: tokString, text: b.String(), line: start})
				return nil
			}
			if l.src[l.pos] == '\n' {
				l.line++
			}
			b.WriteRune(l.src[l.pos])
			l.pos++
		}
		return NewParseError(start, "unterminated raw string")
	}
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case ch == quote:
			l.pos++
			l.emit(tokString, b.String())
			return nil
		case ch == '\n':
			return NewParseError(start, "unterminated string literal")
		case ch == '\\' && l.pos+1 < len(l.src):
			b.WriteRune(unescape(l.src[l.pos+1]))
			l.pos += 2
		default:
			b.WriteRune(ch)
			l.pos++
		}
	}
	return NewParseError(start, "unterminated string literal")
}

func (l *scriptLexer) backtickIdent() error {
	l.pos++
	begin := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '`' {
		if l.src[l.pos] == '\n' {
			return NewParseError(l.line, "unterminated backtick identifier")
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return NewParseError(l.line, "unterminated backtick identifier")
	}
	l.emit(tokIdent, string(l.src[begin:l.pos]))
	l.pos++
	return nil
}

func (l *scriptLexer) number() {
	begin := l.pos
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := strings.ReplaceAll(string(l.src[begin:l.pos]), "_", "")
	// Kotlin/Groovy long suffix.
	if l.pos < len(l.src) && (l.src[l.pos] == 'L' || l.src[l.pos] == 'l') {
		l.pos++
	}
	l.emit(tokNumber, text)
}

func (l *scriptLexer) ident() {
	begin := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.emit(tokIdent, string(l.src[begin:l.pos]))
}

func (l *scriptLexer) punct(ch rune) {
	l.pos++
	switch ch {
	case '{':
		l.emit(tokLBrace, "{")
	case '}':
		l.emit(tokRBrace, "}")
	case '(':
		l.emit(tokLParen, "(")
	case ')':
		l.emit(tokRParen, ")")
	case ',':
		l.emit(tokComma, ",")
	case '.':
		l.emit(tokDot, ".")
	case ':':
		l.emit(tokColon, ":")
	case '=':
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			l.emit(tokOther, "==")
			return
		}
		l.emit(tokAssign, "=")
	default:
		l.emit(tokOther, string(ch))
	}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
