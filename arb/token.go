package arb

import "fmt"

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenUnknown
	TokenNewline

	// Literals
	TokenIdent
	TokenInteger
	TokenFloat

	// Punctuation
	TokenComma     // ,
	TokenSemicolon // ;
	TokenDot       // .
	TokenDotDot    // ..
	TokenEquals    // =
	TokenPlus      // +
	TokenMinus     // -

	// Delimiters
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLParen   // (
	TokenRParen   // )
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenUnknown:
		return "Unknown"
	case TokenNewline:
		return "Newline"
	case TokenIdent:
		return "Ident"
	case TokenInteger:
		return "Integer"
	case TokenFloat:
		return "Float"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenDot:
		return "."
	case TokenDotDot:
		return ".."
	case TokenEquals:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is a lexical token. Offset and End are absolute byte offsets into the
// translated source, End exclusive.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Offset int
	End    int
	// Value is the decoded value of Integer and Float tokens.
	Value float64
}

// String returns a short description used in diagnostics and traces.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenIdent, TokenInteger, TokenFloat, TokenUnknown:
		return fmt.Sprintf("%q", t.Lexeme)
	default:
		return fmt.Sprintf("'%s'", t.Kind)
	}
}
