// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/arbconv/ir"
)

// DefaultMaxOutputSize bounds the generated source unless Options says
// otherwise.
const DefaultMaxOutputSize = 1 << 20

// Options configures GLSL code generation.
type Options struct {
	// MaxOutputSize is the largest source, in bytes, the writer produces
	// before failing with ErrOutputLimit. Zero disables the limit.
	MaxOutputSize int

	// Logger receives debug traces of the generation. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		MaxOutputSize: DefaultMaxOutputSize,
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ErrOutputLimit is returned when the generated source grows past
// Options.MaxOutputSize.
var ErrOutputLimit = errors.New("generated source exceeds the output limit")

// Phase is the generation step a GenerateError happened in.
type Phase uint8

const (
	PhaseDeclarations Phase = iota + 1
	PhaseInstructions
	PhaseOutputs
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDeclarations:
		return "declarations"
	case PhaseInstructions:
		return "instructions"
	case PhaseOutputs:
		return "outputs"
	default:
		return "unknown"
	}
}

// Error offsets reported for failures that have no single source location.
const (
	OffsetDeclarations = 1
	OffsetOutputs      = 2
)

// GenerateError reports a program the parser accepted but GLSL 1.20 cannot
// express.
type GenerateError struct {
	Phase   Phase
	Message string
	// Offset is the instruction's source offset, or one of the
	// Offset constants for declaration and output failures.
	Offset int
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Message)
}

// SamplerInfo describes a generated sampler uniform.
type SamplerInfo struct {
	Name   string
	Unit   int
	Target ir.TextureTarget
}

// AttributeInfo describes a generated generic vertex attribute.
type AttributeInfo struct {
	Name  string
	Index int
}

// TranslationInfo contains metadata about the translation.
type TranslationInfo struct {
	// Names maps ARB variable names and implicit keys to generated GLSL names.
	Names map[string]string

	// UsedExtensions lists GLSL extensions required by the shader.
	UsedExtensions []string

	// Samplers lists the sampler uniforms in declaration order.
	Samplers []SamplerInfo

	// Attributes lists the generic vertex attributes in first-use order.
	Attributes []AttributeInfo

	// Uniforms lists the program env and local parameter arrays.
	Uniforms []string
}

// Compile generates GLSL source code from a parsed ARB program.
// Returns the GLSL source as a string, translation info, or an error.
func Compile(program *ir.Program, options Options) (string, TranslationInfo, error) {
	if err := ir.Validate(program); err != nil {
		return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
	}

	w := newWriter(program, &options)
	if err := w.writeProgram(); err != nil {
		return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
	}

	return w.String(), w.translationInfo(), nil
}

func (w *Writer) translationInfo() TranslationInfo {
	info := TranslationInfo{
		Names:          make(map[string]string, len(w.names)),
		UsedExtensions: w.extensions,
	}
	for v, name := range w.names {
		for _, n := range v.Names {
			info.Names[n] = name
		}
		if v.Key != "" {
			info.Names[v.Key] = name
		}
	}
	for _, s := range w.samplers {
		info.Samplers = append(info.Samplers, SamplerInfo{Name: w.names[s], Unit: s.Unit, Target: s.Target})
	}
	for _, n := range w.attributes {
		info.Attributes = append(info.Attributes, AttributeInfo{Name: w.attribute(n), Index: n})
	}
	if w.usesEnv {
		info.Uniforms = append(info.Uniforms, w.parameterArray(true))
	}
	if w.usesLocal {
		info.Uniforms = append(info.Uniforms, w.parameterArray(false))
	}
	return info
}
