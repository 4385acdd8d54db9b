package arb

import (
	"fmt"
	"strings"
)

// ErrorKind classifies front-end failures.
type ErrorKind uint8

const (
	// KindStructural: missing or malformed program header.
	KindStructural ErrorKind = iota
	// KindLexical: a token the lexer could not classify.
	KindLexical
	// KindGrammar: a token sequence the grammar does not accept.
	KindGrammar
	// KindSemantic: undeclared names, type or target mismatches, arity errors.
	KindSemantic
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindLexical:
		return "lexical"
	case KindGrammar:
		return "grammar"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// SourceError is a front-end error with the byte offset of the offending
// token or instruction.
type SourceError struct {
	Kind    ErrorKind
	Message string
	Offset  int
	Source  string // Original source code (for context display)
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *SourceError) FormatWithContext() string {
	return FormatContext(e.Source, e.Offset, e.Message)
}

// FormatContext renders message with the source line containing offset and
// a caret under the offending byte. It falls back to the bare message when
// the offset lies outside source.
func FormatContext(source string, offset int, message string) string {
	if source == "" || offset < 0 || offset > len(source) {
		return "error: " + message
	}
	line, col := LineColumn(source, offset)

	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	lineEnd := strings.IndexByte(source[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += offset
	}
	text := strings.TrimRight(source[lineStart:lineEnd], "\r")

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", line, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", line, text)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// LineColumn converts a byte offset to a 1-based line and column.
func LineColumn(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1 + strings.Count(source[:offset], "\n")
	column = offset - (strings.LastIndexByte(source[:offset], '\n') + 1) + 1
	return line, column
}

func newError(kind ErrorKind, offset int, format string, args ...any) *SourceError {
	return &SourceError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}
