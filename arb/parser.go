package arb

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/arbconv/ir"
)

type stmtKind uint8

const (
	stmtNone stmtKind = iota
	stmtOption
	stmtTemp
	stmtAddress
	stmtAttrib
	stmtOutput
	stmtParam
	stmtAlias
	stmtInstruction
)

// valueContext says where a parsed value (constant, vector or binding) goes.
type valueContext uint8

const (
	valueParam valueContext = iota
	valueArrayItem
	valueAttrib
	valueOutput
	valueOperand
)

type slotKind uint8

const (
	slotDst slotKind = iota
	slotVector
	slotScalar
	slotTexture
)

// statement holds the statement under construction.
type statement struct {
	kind  stmtKind
	start int

	name       string
	nameOffset int

	array bool
	sized bool
	size  int
	elems []ir.Element
	alias *ir.Variable

	value       valueContext
	valueOffset int
	negative    bool
	vector      []string
	path        []pathPart

	inst    *ir.Instruction
	slots   []slotKind
	slot    int
	operand *ir.Operand
	extComp int
	extNeg  bool
	addrNeg bool
	unit    int
}

// Parser is the ARB program state machine. It consumes one token per Step
// and builds an ir.Program. Once it reaches StateError it ignores further
// tokens.
type Parser struct {
	source string
	prog   *ir.Program
	state  State
	err    *SourceError
	logger *slog.Logger
	trace  bool

	// statements counts statements other than OPTION.
	statements int
	stmt       statement
}

// NewParser creates a parser for a program of the given stage. The first
// token it expects is the newline that follows the header.
func NewParser(source string, stage ir.Stage, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		source: source,
		prog:   ir.NewProgram(stage),
		state:  StateHeader,
		logger: logger,
		trace:  logger.Enabled(context.Background(), slog.LevelDebug),
	}
}

// Parse parses source from offset start, which must point just past the
// program header, and returns the resulting program.
func Parse(source string, start int, stage ir.Stage, logger *slog.Logger) (*ir.Program, error) {
	p := NewParser(source, stage, logger)
	lex := NewLexerAt(source, start)
	for !p.state.Finished() {
		p.Step(lex.Next())
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.prog, nil
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// Err returns the error that moved the parser to StateError, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Program returns the program built so far.
func (p *Parser) Program() *ir.Program {
	return p.prog
}

// Step consumes one token.
func (p *Parser) Step(tok Token) {
	if p.state.Finished() {
		return
	}
	if p.trace {
		p.logger.Debug("arb step",
			slog.String("state", p.state.String()),
			slog.String("token", tok.Kind.String()),
			slog.String("lexeme", tok.Lexeme),
			slog.Int("offset", tok.Offset))
	}

	switch tok.Kind {
	case TokenUnknown:
		p.fail(KindLexical, tok.Offset, "unrecognized token %q", tok.Lexeme)
		return
	case TokenEOF:
		p.fail(KindGrammar, tok.Offset, "unexpected end of program, missing END")
		return
	case TokenNewline:
		if p.state != StateHeader {
			return
		}
	}

	// A handler returns true when tok must be handled again in the new state.
	for p.dispatch(tok) && !p.state.Finished() {
	}
}

func (p *Parser) dispatch(tok Token) bool {
	switch p.state {
	case StateHeader:
		if tok.Kind != TokenNewline {
			return p.unexpected(tok, "a newline after the program header")
		}
		p.state = StateLineStart
	case StateLineStart:
		return p.lineStart(tok)
	case StateOption:
		return p.option(tok)
	case StateTerminator:
		if tok.Kind != TokenSemicolon {
			return p.unexpected(tok, "';'")
		}
		p.finishStatement()
	case StateTempName:
		return p.tempName(tok)
	case StateTempNext:
		switch tok.Kind {
		case TokenComma:
			p.state = StateTempName
		case TokenSemicolon:
			p.state = StateLineStart
		default:
			return p.unexpected(tok, "',' or ';'")
		}
	case StateDeclName:
		return p.declName(tok)
	case StateParamShape:
		switch tok.Kind {
		case TokenLBracket:
			p.stmt.array = true
			p.state = StateArraySize
		case TokenEquals:
			p.beginValue(valueParam)
		default:
			return p.unexpected(tok, "'[' or '='")
		}
	case StateArraySize:
		switch tok.Kind {
		case TokenInteger:
			if tok.Value < 1 {
				p.fail(KindSemantic, tok.Offset, "array size must be positive")
				return false
			}
			size, ok := p.intValue(tok)
			if !ok {
				return false
			}
			p.stmt.sized = true
			p.stmt.size = size
			p.state = StateArraySizeEnd
		case TokenRBracket:
			p.state = StateDeclEquals
		default:
			return p.unexpected(tok, "an array size or ']'")
		}
	case StateArraySizeEnd:
		if tok.Kind != TokenRBracket {
			return p.unexpected(tok, "']'")
		}
		p.state = StateDeclEquals
	case StateDeclEquals:
		return p.declEquals(tok)
	case StateAliasTarget:
		return p.aliasTarget(tok)
	case StateArrayOpen:
		if tok.Kind != TokenLBrace {
			return p.unexpected(tok, "'{'")
		}
		p.beginValue(valueArrayItem)
	case StateArrayNext:
		switch tok.Kind {
		case TokenComma:
			p.beginValue(valueArrayItem)
		case TokenRBrace:
			p.state = StateTerminator
		default:
			return p.unexpected(tok, "',' or '}'")
		}
	case StateValue, StateNumber, StateVectorItem, StateVectorNumber, StateVectorNext:
		return p.constant(tok)
	case StateBinding, StateBindingMember, StateBindingIndex, StateBindingIndexEnd,
		StateBindingRangeEnd, StateBindingRangeClose:
		return p.binding(tok)
	default:
		return p.instruction(tok)
	}
	return false
}

func (p *Parser) fail(kind ErrorKind, offset int, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = newError(kind, offset, format, args...)
	p.err.Source = p.source
	p.state = StateError
	if p.trace {
		p.logger.Debug("arb error",
			slog.String("kind", kind.String()),
			slog.String("message", p.err.Message),
			slog.Int("offset", offset))
	}
}

// maxIntLiteral bounds integer literals used as indices, offsets and sizes.
const maxIntLiteral = 1 << 16

// intValue converts an integer token used as an index or size. Literals
// too large to be one fail the parse.
func (p *Parser) intValue(tok Token) (int, bool) {
	if tok.Value > maxIntLiteral {
		p.fail(KindSemantic, tok.Offset, "integer %s out of range", tok.Lexeme)
		return 0, false
	}
	return int(tok.Value), true
}

// unexpected fails with a grammar error naming what was expected.
func (p *Parser) unexpected(tok Token, want string) bool {
	if tok.Kind == TokenIdent || tok.Kind == TokenInteger || tok.Kind == TokenFloat {
		p.fail(KindGrammar, tok.Offset, "unexpected %q, expected %s", tok.Lexeme, want)
	} else {
		p.fail(KindGrammar, tok.Offset, "unexpected %s, expected %s", tok.Kind, want)
	}
	return false
}

func (p *Parser) lineStart(tok Token) bool {
	if tok.Kind != TokenIdent {
		return p.unexpected(tok, "a statement")
	}
	p.stmt = statement{start: tok.Offset}

	switch tok.Lexeme {
	case "END":
		p.state = StateDone
		if p.trace {
			p.logger.Debug("arb done",
				slog.Int("variables", p.prog.Symbols.Count()),
				slog.Int("instructions", len(p.prog.Instructions)))
		}
		return false
	case "OPTION":
		if p.statements > 0 {
			p.fail(KindGrammar, tok.Offset, "OPTION must precede all other statements")
			return false
		}
		p.stmt.kind = stmtOption
		p.state = StateOption
		return false
	}

	p.statements++
	switch tok.Lexeme {
	case "TEMP":
		p.stmt.kind = stmtTemp
		p.state = StateTempName
	case "ADDRESS":
		if p.prog.Stage != ir.StageVertex {
			p.fail(KindGrammar, tok.Offset, "ADDRESS is not available in %s programs", p.prog.Stage)
			return false
		}
		p.stmt.kind = stmtAddress
		p.state = StateTempName
	case "ATTRIB":
		p.stmt.kind = stmtAttrib
		p.state = StateDeclName
	case "OUTPUT":
		p.stmt.kind = stmtOutput
		p.state = StateDeclName
	case "PARAM":
		p.stmt.kind = stmtParam
		p.state = StateDeclName
	case "ALIAS":
		p.stmt.kind = stmtAlias
		p.state = StateDeclName
	default:
		p.beginInstruction(tok)
	}
	return false
}

func (p *Parser) option(tok Token) bool {
	if tok.Kind != TokenIdent {
		return p.unexpected(tok, "an option name")
	}
	set, msg := enableOption(p.prog.Options, tok.Lexeme, p.prog.Stage)
	if msg != "" {
		p.fail(KindSemantic, tok.Offset, "%s", msg)
		return false
	}
	p.prog.Options = set
	p.state = StateTerminator
	return false
}

// reserved reports whether name is a keyword that cannot be declared.
func reserved(name string) bool {
	switch name {
	case "END", "OPTION", "TEMP", "ADDRESS", "ATTRIB", "OUTPUT", "PARAM", "ALIAS", "texture":
		return true
	}
	if _, ok := bindingRoots[name]; ok {
		return true
	}
	_, ok := ir.LookupOpcode(strings.TrimSuffix(name, "_SAT"))
	return ok
}

// checkName validates a name about to be declared.
func (p *Parser) checkName(tok Token) bool {
	if tok.Kind != TokenIdent {
		p.unexpected(tok, "an identifier")
		return false
	}
	if isDigit(tok.Lexeme[0]) {
		p.fail(KindGrammar, tok.Offset, "invalid identifier %q", tok.Lexeme)
		return false
	}
	if reserved(tok.Lexeme) {
		p.fail(KindGrammar, tok.Offset, "%q is a reserved word", tok.Lexeme)
		return false
	}
	if _, exists := p.prog.Symbols.Lookup(tok.Lexeme); exists {
		p.fail(KindSemantic, tok.Offset, "%q is already declared", tok.Lexeme)
		return false
	}
	return true
}

func (p *Parser) tempName(tok Token) bool {
	if !p.checkName(tok) {
		return false
	}
	typ := ir.VarTemp
	if p.stmt.kind == stmtAddress {
		typ = ir.VarAddress
	}
	p.prog.Symbols.Add(&ir.Variable{
		Names:  []string{tok.Lexeme},
		Type:   typ,
		State:  ir.VarDeclared,
		Offset: tok.Offset,
	})
	p.state = StateTempNext
	return false
}

func (p *Parser) declName(tok Token) bool {
	if !p.checkName(tok) {
		return false
	}
	p.stmt.name = tok.Lexeme
	p.stmt.nameOffset = tok.Offset
	if p.stmt.kind == stmtParam {
		p.state = StateParamShape
	} else {
		p.state = StateDeclEquals
	}
	return false
}

func (p *Parser) declEquals(tok Token) bool {
	if tok.Kind != TokenEquals {
		return p.unexpected(tok, "'='")
	}
	switch p.stmt.kind {
	case stmtAlias:
		p.state = StateAliasTarget
	case stmtAttrib:
		p.beginValue(valueAttrib)
	case stmtOutput:
		p.beginValue(valueOutput)
	default:
		if p.stmt.array {
			p.state = StateArrayOpen
		} else {
			p.beginValue(valueParam)
		}
	}
	return false
}

func (p *Parser) aliasTarget(tok Token) bool {
	if tok.Kind != TokenIdent {
		return p.unexpected(tok, "a variable name")
	}
	if tok.Lexeme == p.stmt.name {
		p.fail(KindSemantic, tok.Offset, "%q cannot be used in its own declaration", tok.Lexeme)
		return false
	}
	v, ok := p.prog.Symbols.Lookup(tok.Lexeme)
	if !ok {
		p.fail(KindSemantic, tok.Offset, "undeclared identifier %q", tok.Lexeme)
		return false
	}
	p.stmt.alias = v
	p.state = StateTerminator
	return false
}

// finishStatement completes the statement at its terminating ';'.
func (p *Parser) finishStatement() {
	p.state = StateLineStart
	switch p.stmt.kind {
	case stmtAlias:
		p.prog.Symbols.Alias(p.stmt.name, p.stmt.alias)
	case stmtAttrib, stmtOutput:
		p.declareBound()
	case stmtParam:
		p.declareParam()
	case stmtInstruction:
		p.finishInstruction()
	}
}

// declareBound declares an ATTRIB or OUTPUT. A binding that already has a
// variable gains the new name instead.
func (p *Parser) declareBound() {
	b := p.stmt.elems[0].Binding
	key := b.String()
	if v, ok := p.prog.Symbols.LookupKey(key); ok {
		p.prog.Symbols.Alias(p.stmt.name, v)
		return
	}
	typ := ir.VarAttrib
	if p.stmt.kind == stmtOutput {
		typ = ir.VarOutput
	}
	p.declare(&ir.Variable{Type: typ, Binding: b, Key: key})
}

func (p *Parser) declareParam() {
	if p.stmt.array {
		if p.stmt.sized && p.stmt.size != len(p.stmt.elems) {
			p.fail(KindSemantic, p.stmt.nameOffset,
				"array %s has size %d but %d initializers", p.stmt.name, p.stmt.size, len(p.stmt.elems))
			return
		}
		p.declare(&ir.Variable{Type: ir.VarParam, Array: true, Init: p.stmt.elems})
		return
	}

	elem := p.stmt.elems[0]
	key := elemKey(elem)
	if v, ok := p.prog.Symbols.LookupKey(key); ok {
		p.prog.Symbols.Alias(p.stmt.name, v)
		return
	}
	p.declare(&ir.Variable{Type: ir.VarParam, Init: p.stmt.elems, Key: key})
}

// declare registers a named variable built by the current statement.
func (p *Parser) declare(v *ir.Variable) {
	v.Names = []string{p.stmt.name}
	v.State = ir.VarDeclared
	v.Offset = p.stmt.nameOffset
	p.prog.Symbols.Add(v)
	if p.trace {
		p.logger.Debug("arb declare", slog.String("variable", v.String()), slog.String("key", v.Key))
	}
}

func elemKey(e ir.Element) string {
	if e.Binding != nil {
		return e.Binding.String()
	}
	return ir.ConstantKey(e.Literal)
}

// beginValue starts parsing a constant, vector or binding.
func (p *Parser) beginValue(ctx valueContext) {
	p.stmt.value = ctx
	p.stmt.negative = false
	p.stmt.vector = p.stmt.vector[:0]
	p.stmt.path = nil
	p.state = StateValue
}

func (p *Parser) signedLiteral(tok Token) string {
	v := tok.Value
	if p.stmt.negative {
		v = -v
	}
	p.stmt.negative = false
	return ir.FormatFloat(v)
}

func isNumber(tok Token) bool {
	return tok.Kind == TokenInteger || tok.Kind == TokenFloat
}

func isSign(tok Token) bool {
	return tok.Kind == TokenPlus || tok.Kind == TokenMinus
}

// constant handles the value states that are not binding paths.
func (p *Parser) constant(tok Token) bool {
	ctx := p.stmt.value
	numeric := ctx == valueParam || ctx == valueArrayItem || ctx == valueOperand

	switch p.state {
	case StateValue:
		p.stmt.valueOffset = tok.Offset
		switch {
		case tok.Kind == TokenIdent:
			if _, ok := bindingRoots[tok.Lexeme]; !ok {
				return p.unexpected(tok, "a binding or constant")
			}
			p.stmt.path = []pathPart{{name: tok.Lexeme, offset: tok.Offset}}
			p.state = StateBinding
		case numeric && isSign(tok) && ctx != valueOperand:
			p.stmt.negative = tok.Kind == TokenMinus
			p.state = StateNumber
		case numeric && isNumber(tok):
			p.state = StateNumber
			return true
		case numeric && tok.Kind == TokenLBrace:
			p.state = StateVectorItem
		default:
			return p.unexpected(tok, "a binding or constant")
		}
	case StateNumber:
		if !isNumber(tok) {
			return p.unexpected(tok, "a number")
		}
		lit := p.signedLiteral(tok)
		return p.finishValue([]ir.Element{{Literal: [4]string{lit, lit, lit, lit}}})
	case StateVectorItem:
		switch {
		case isSign(tok):
			p.stmt.negative = tok.Kind == TokenMinus
			p.state = StateVectorNumber
		case isNumber(tok):
			p.state = StateVectorNumber
			return true
		default:
			return p.unexpected(tok, "a number")
		}
	case StateVectorNumber:
		if !isNumber(tok) {
			return p.unexpected(tok, "a number")
		}
		p.stmt.vector = append(p.stmt.vector, p.signedLiteral(tok))
		p.state = StateVectorNext
	case StateVectorNext:
		switch tok.Kind {
		case TokenComma:
			if len(p.stmt.vector) == 4 {
				p.fail(KindGrammar, tok.Offset, "a vector constant has at most four components")
				return false
			}
			p.state = StateVectorItem
		case TokenRBrace:
			lit := [4]string{"0.0", "0.0", "0.0", "1.0"}
			copy(lit[:], p.stmt.vector)
			return p.finishValue([]ir.Element{{Literal: lit}})
		default:
			return p.unexpected(tok, "',' or '}'")
		}
	}
	return false
}

// binding handles the binding path states. Paths are extended greedily: a
// ".name" that cannot continue the path ends it and, inside an instruction,
// is read as a swizzle or write mask.
func (p *Parser) binding(tok Token) bool {
	last := &p.stmt.path[len(p.stmt.path)-1]

	switch p.state {
	case StateBinding:
		switch tok.Kind {
		case TokenDot:
			p.state = StateBindingMember
			return false
		case TokenLBracket:
			if last.indexed {
				return p.unexpected(tok, "'.'")
			}
			p.state = StateBindingIndex
			return false
		}
		return p.finishBinding()

	case StateBindingMember:
		if tok.Kind != TokenIdent {
			return p.unexpected(tok, "a binding member")
		}
		n := len(p.stmt.path)
		candidate := append(p.stmt.path[:n:n], pathPart{name: tok.Lexeme, offset: tok.Offset})
		_, status, msg, offset := resolveBinding(p.prog.Stage, p.prog.Options, candidate)
		if status != pathInvalid {
			p.stmt.path = candidate
			p.state = StateBinding
			return false
		}
		if p.stmt.value != valueOperand {
			p.fail(KindSemantic, offset, "%s", msg)
			return false
		}
		p.finishBinding()
		if p.state != StateError {
			p.swizzle(tok)
		}
		return false

	case StateBindingIndex:
		if tok.Kind != TokenInteger {
			return p.unexpected(tok, "an index")
		}
		lo, ok := p.intValue(tok)
		if !ok {
			return false
		}
		last.indexed = true
		last.lo = lo
		last.indexPos = tok.Offset
		p.state = StateBindingIndexEnd

	case StateBindingIndexEnd:
		switch tok.Kind {
		case TokenRBracket:
			return p.checkPath()
		case TokenDotDot:
			if p.stmt.value != valueArrayItem {
				p.fail(KindGrammar, tok.Offset, "index ranges are only allowed in PARAM arrays")
				return false
			}
			last.ranged = true
			p.state = StateBindingRangeEnd
		default:
			return p.unexpected(tok, "']' or '..'")
		}

	case StateBindingRangeEnd:
		if tok.Kind != TokenInteger {
			return p.unexpected(tok, "an index")
		}
		hi, ok := p.intValue(tok)
		if !ok {
			return false
		}
		last.hi = hi
		p.state = StateBindingRangeClose

	case StateBindingRangeClose:
		if tok.Kind != TokenRBracket {
			return p.unexpected(tok, "']'")
		}
		return p.checkPath()
	}
	return false
}

// checkPath validates the path after a closing bracket.
func (p *Parser) checkPath() bool {
	_, status, msg, offset := resolveBinding(p.prog.Stage, p.prog.Options, p.stmt.path)
	if status == pathInvalid {
		p.fail(KindSemantic, offset, "%s", msg)
		return false
	}
	p.state = StateBinding
	return false
}

// finishBinding resolves the completed path and hands the bindings on.
func (p *Parser) finishBinding() bool {
	bindings, status, msg, offset := resolveBinding(p.prog.Stage, p.prog.Options, p.stmt.path)
	switch status {
	case pathInvalid:
		p.fail(KindSemantic, offset, "%s", msg)
		return false
	case pathIncomplete:
		p.fail(KindGrammar, p.stmt.valueOffset, "incomplete binding %s", joinPath(p.stmt.path))
		return false
	}
	elems := make([]ir.Element, len(bindings))
	for i := range bindings {
		elems[i].Binding = &bindings[i]
	}
	return p.finishValue(elems)
}

func joinPath(parts []pathPart) string {
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = part.name
	}
	return strings.Join(names, ".")
}

// finishValue delivers a parsed value to its context. It returns true when
// the current token must be reprocessed, which is the case after a binding
// path ended on a token it does not own.
func (p *Parser) finishValue(elems []ir.Element) bool {
	reprocess := p.state == StateBinding
	offset := p.stmt.valueOffset

	switch p.stmt.value {
	case valueArrayItem:
		for _, e := range elems {
			if e.Binding != nil && !e.Binding.IsParameter() {
				p.fail(KindSemantic, offset, "PARAM cannot be bound to %s", e.Binding)
				return false
			}
		}
		p.stmt.elems = append(p.stmt.elems, elems...)
		p.state = StateArrayNext
		return reprocess
	case valueOperand:
		if !p.operandValue(elems) {
			return false
		}
		p.state = StateOperandSuffix
		return reprocess
	}

	if len(elems) != 1 {
		p.fail(KindSemantic, offset, "binding yields %d vectors where one is expected", len(elems))
		return false
	}
	b := elems[0].Binding
	switch p.stmt.value {
	case valueAttrib:
		if b == nil || !b.IsInput() {
			p.fail(KindSemantic, offset, "ATTRIB must be bound to a %s attribute", p.prog.Stage)
			return false
		}
	case valueOutput:
		if b == nil || !b.IsResult() {
			p.fail(KindSemantic, offset, "OUTPUT must be bound to a program result")
			return false
		}
	case valueParam:
		if b != nil && !b.IsParameter() {
			p.fail(KindSemantic, offset, "PARAM cannot be bound to %s", b)
			return false
		}
	}
	p.stmt.elems = elems
	p.state = StateTerminator
	return reprocess
}
