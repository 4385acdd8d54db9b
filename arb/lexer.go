package arb

import "strconv"

// Lexer tokenizes ARB program text lazily, one token per Next call.
//
// Whitespace is skipped, '#' comments run to the end of the line and
// newlines are reported as TokenNewline. The lexer never fails: anything it
// cannot classify is returned as TokenUnknown for the parser to reject.
type Lexer struct {
	source string
	pos    int
	start  int
}

// NewLexer creates a lexer that scans source from the beginning.
func NewLexer(source string) *Lexer {
	return NewLexerAt(source, 0)
}

// NewLexerAt creates a lexer that starts scanning at byte offset pos.
// Token offsets remain relative to the beginning of source.
func NewLexerAt(source string, pos int) *Lexer {
	if pos > len(source) {
		pos = len(source)
	}
	return &Lexer{source: source, pos: pos}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	l.skipBlank()
	l.start = l.pos
	if l.isAtEnd() {
		return l.token(TokenEOF)
	}

	c := l.advance()
	switch c {
	case '\n':
		return l.token(TokenNewline)
	case ',':
		return l.token(TokenComma)
	case ';':
		return l.token(TokenSemicolon)
	case '=':
		return l.token(TokenEquals)
	case '+':
		return l.token(TokenPlus)
	case '-':
		return l.token(TokenMinus)
	case '[':
		return l.token(TokenLBracket)
	case ']':
		return l.token(TokenRBracket)
	case '{':
		return l.token(TokenLBrace)
	case '}':
		return l.token(TokenRBrace)
	case '(':
		return l.token(TokenLParen)
	case ')':
		return l.token(TokenRParen)
	case '.':
		if l.match('.') {
			return l.token(TokenDotDot)
		}
		if isDigit(l.peek()) {
			return l.number()
		}
		return l.token(TokenDot)
	}

	switch {
	case isDigit(c):
		return l.number()
	case isIdentStart(c):
		return l.identifier()
	}
	return l.token(TokenUnknown)
}

// skipBlank skips spaces, tabs, carriage returns and comments. Newlines are
// significant and left in place.
func (l *Lexer) skipBlank() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\f', '\v':
			l.pos++
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// number scans an integer or floating literal. The first character (a digit
// or the leading '.') has already been consumed.
func (l *Lexer) number() Token {
	isFloat := l.source[l.start] == '.'
	for isDigit(l.peek()) {
		l.advance()
	}

	// A '.' starts a fraction unless it begins a ".." range operator.
	if !isFloat && l.peek() == '.' && l.peekNext() != '.' {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			// "1e" and "1e+" are malformed exponents.
			l.skipIdentChars()
			return l.token(TokenUnknown)
		}
		for isDigit(l.peek()) {
			l.advance()
		}
		isFloat = true
	}

	// Texture targets such as "2D" begin with a digit.
	if !isFloat && isIdentChar(l.peek()) {
		l.skipIdentChars()
		return l.token(TokenIdent)
	}

	tok := l.token(TokenInteger)
	if isFloat {
		tok.Kind = TokenFloat
	}
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		tok.Kind = TokenUnknown
		return tok
	}
	tok.Value = v
	return tok
}

func (l *Lexer) identifier() Token {
	l.skipIdentChars()
	return l.token(TokenIdent)
}

func (l *Lexer) skipIdentChars() {
	for isIdentChar(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) token(kind TokenKind) Token {
	return Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Offset: l.start,
		End:    l.pos,
	}
}

func (l *Lexer) advance() byte {
	c := l.source[l.pos]
	l.pos++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.pos] != expected {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_' || c == '$'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
