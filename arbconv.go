// Package arbconv translates ARB assembly programs to GLSL 1.20.
//
// arbconv accepts the two legacy OpenGL assembly dialects:
//   - !!ARBvp1.0: ARB_vertex_program
//   - !!ARBfp1.0: ARB_fragment_program
//
// and produces a single GLSL 1.20 shader that reads and writes the
// fixed-function built-ins (gl_Vertex, gl_Color, gl_FragColor, ...), so the
// result links against the same GL state the assembly program used.
//
// Example usage:
//
//	source := "!!ARBfp1.0\nMOV result.color, fragment.color;\nEND\n"
//	glslCode, err := arbconv.Translate(source, arbconv.Fragment)
//	if err != nil {
//	    var e *arbconv.Error
//	    if errors.As(err, &e) {
//	        fmt.Println(e.FormatWithContext())
//	    }
//	}
//
// For access to the parsed program, use the arb and glsl packages:
//
//	start, _ := arb.LocateHeader(source, ir.StageFragment)
//	program, _ := arb.Parse(source, start, ir.StageFragment, nil)
//	glslCode, info, err := glsl.Compile(program, glsl.DefaultOptions())
package arbconv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/arbconv/arb"
	"github.com/gogpu/arbconv/glsl"
	"github.com/gogpu/arbconv/ir"
)

// Stage selects the program dialect.
type Stage = ir.Stage

// Program stages.
const (
	Vertex   = ir.StageVertex
	Fragment = ir.StageFragment
)

// Options configures translation.
type Options struct {
	// Logger receives debug traces of parsing and generation, and a dump of
	// the program state when translation fails. Nil discards them.
	Logger *slog.Logger

	// MaxOutputSize bounds the generated source in bytes. Zero disables
	// the limit.
	MaxOutputSize int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		MaxOutputSize: glsl.DefaultMaxOutputSize,
	}
}

// ErrorKind classifies translation failures.
type ErrorKind uint8

const (
	// KindStructural: missing or malformed program header.
	KindStructural ErrorKind = iota
	// KindLexical: unrecognized token.
	KindLexical
	// KindGrammar: token sequence the grammar does not accept.
	KindGrammar
	// KindSemantic: undeclared or mistyped reference, target or arity mismatch.
	KindSemantic
	// KindGeneration: construct the parser accepts but GLSL 1.20 cannot express.
	KindGeneration
	// KindResource: the generated source outgrew its limit.
	KindResource
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
	case KindGeneration:
		return "generation"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Translate.
//
// Offset is the byte offset of the offending token or instruction. Failures
// without a source location use 0 (resource), glsl.OffsetDeclarations or
// glsl.OffsetOutputs.
type Error struct {
	Kind    ErrorKind
	Message string
	Offset  int
	Source  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error at offset %d: %s", e.Kind, e.Offset, e.Message)
}

// FormatWithContext returns the message with the offending source line and
// a caret under the error location.
func (e *Error) FormatWithContext() string {
	return arb.FormatContext(e.Source, e.Offset, e.Message)
}

// outOfMemory is the diagnostic for resource failures.
const outOfMemory = "Not enough memory"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Translate converts an ARB program to GLSL 1.20 using default options.
func Translate(source string, stage Stage) (string, error) {
	out, _, err := TranslateWithOptions(source, stage, DefaultOptions())
	return out, err
}

// TranslateWithOptions converts an ARB program to GLSL 1.20.
//
// The pipeline is:
//  1. Locate and check the program header
//  2. Parse declarations and instructions into an ir.Program
//  3. Generate GLSL
//
// On failure the returned source is empty and the error is an *Error.
// Calls share no state and may run concurrently.
func TranslateWithOptions(source string, stage Stage, opts Options) (string, glsl.TranslationInfo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}

	start, err := arb.LocateHeader(source, stage)
	if err != nil {
		return "", glsl.TranslationInfo{}, convertError(source, err)
	}

	// Drive the parser directly so the partial program is available for
	// the failure dump.
	parser := arb.NewParser(source, stage, logger)
	lexer := arb.NewLexerAt(source, start)
	for !parser.State().Finished() {
		parser.Step(lexer.Next())
	}
	if err := parser.Err(); err != nil {
		e := convertError(source, err)
		dumpFailure(logger, parser.Program(), e)
		return "", glsl.TranslationInfo{}, e
	}

	program := parser.Program()
	out, info, err := glsl.Compile(program, glsl.Options{
		MaxOutputSize: opts.MaxOutputSize,
		Logger:        logger,
	})
	if err != nil {
		e := convertError(source, err)
		dumpFailure(logger, program, e)
		return "", glsl.TranslationInfo{}, e
	}
	return out, info, nil
}

// DetectStage reports the stage named by the program header, if any.
func DetectStage(source string) (Stage, bool) {
	return arb.DetectStage(source)
}

// convertError maps front-end and generator failures onto *Error.
func convertError(source string, err error) *Error {
	var (
		se *arb.SourceError
		ge *glsl.GenerateError
		ve ir.ValidationError
	)
	switch {
	case errors.As(err, &se):
		return &Error{Kind: sourceKind(se.Kind), Message: se.Message, Offset: se.Offset, Source: source}
	case errors.As(err, &ge):
		return &Error{Kind: KindGeneration, Message: ge.Message, Offset: ge.Offset, Source: source}
	case errors.Is(err, glsl.ErrOutputLimit):
		return &Error{Kind: KindResource, Message: outOfMemory, Offset: 0, Source: source}
	case errors.As(err, &ve):
		offset := ve.Offset
		if offset < 0 {
			offset = glsl.OffsetDeclarations
		}
		return &Error{Kind: KindGeneration, Message: ve.Message, Offset: offset, Source: source}
	}
	return &Error{Kind: KindGeneration, Message: err.Error(), Offset: 0, Source: source}
}

func sourceKind(k arb.ErrorKind) ErrorKind {
	switch k {
	case arb.KindStructural:
		return KindStructural
	case arb.KindLexical:
		return KindLexical
	case arb.KindGrammar:
		return KindGrammar
	default:
		return KindSemantic
	}
}

// dumpFailure logs the program state at the point of failure.
func dumpFailure(logger *slog.Logger, program *ir.Program, e *Error) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	line, col := arb.LineColumn(e.Source, e.Offset)
	logger.Debug("arbconv failed",
		slog.String("kind", e.Kind.String()),
		slog.String("message", e.Message),
		slog.Int("offset", e.Offset),
		slog.Int("line", line),
		slog.Int("column", col))
	if program == nil {
		return
	}
	for _, v := range program.Variables() {
		logger.Debug("arbconv variable", slog.String("variable", v.String()), slog.Int("offset", v.Offset))
	}
	for i, inst := range program.Instructions {
		logger.Debug("arbconv instruction",
			slog.Int("index", i),
			slog.String("op", inst.Mnemonic()),
			slog.Int("offset", inst.Offset))
	}
}
