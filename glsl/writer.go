// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/arbconv/ir"
)

// generatedPrefix starts every identifier the generator invents.
const generatedPrefix = "arb_"

// Writer generates GLSL source code from an ARB program.
type Writer struct {
	program *ir.Program
	options *Options
	logger  *slog.Logger
	trace   bool

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Name management
	names map[*ir.Variable]string
	namer *namer

	// Globals required by the program
	samplers    []*ir.Variable
	attributes  []int
	usesEnv     bool
	usesLocal   bool
	drawBuffers bool
	extensions  []string

	// Set when the output grows past Options.MaxOutputSize.
	overflow bool
}

// namer generates unique identifiers.
type namer struct {
	usedNames map[string]struct{}
	counter   uint32
}

func newNamer() *namer {
	return &namer{
		usedNames: make(map[string]struct{}),
	}
}

// call generates a unique name based on the given base.
func (n *namer) call(base string) string {
	// Escape reserved words
	return n.unique(escapeKeyword(base))
}

// generated returns a unique name for an identifier the generator invents.
func (n *namer) generated(base string) string {
	return n.unique(base)
}

func (n *namer) unique(base string) string {
	// First try the base name directly
	if _, used := n.usedNames[base]; !used {
		n.usedNames[base] = struct{}{}
		return base
	}

	// Add numeric suffix
	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", base, n.counter)
		if _, used := n.usedNames[candidate]; !used {
			n.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}

// reserve claims a generated name verbatim.
func (n *namer) reserve(name string) string {
	n.usedNames[name] = struct{}{}
	return name
}

// newWriter creates a new GLSL writer.
func newWriter(program *ir.Program, options *Options) *Writer {
	logger := options.Logger
	if logger == nil {
		logger = discardLogger
	}
	return &Writer{
		program: program,
		options: options,
		logger:  logger,
		trace:   logger.Enabled(context.Background(), slog.LevelDebug),
		names:   make(map[*ir.Variable]string, program.Symbols.Count()),
		namer:   newNamer(),
	}
}

// String returns the generated GLSL source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeProgram generates the complete shader.
func (w *Writer) writeProgram() error {
	// 1. Collect globals and assign names
	w.collectGlobals()
	w.registerNames()

	// 2. Header and globals
	w.out.WriteString("#version 120\n")
	for _, ext := range w.extensions {
		w.writeLine("#extension %s : enable", ext)
	}
	w.out.WriteByte('\n')
	if w.writeGlobals() {
		w.out.WriteByte('\n')
	}

	w.writeLine("void main() {")
	w.pushIndent()

	// 3. Locals in declaration order
	if err := w.writeLocals(); err != nil {
		return err
	}
	w.writeLine("")

	// 4. One statement per instruction
	for _, inst := range w.program.Instructions {
		if err := w.writeInstruction(inst); err != nil {
			return err
		}
		if w.overflow {
			return ErrOutputLimit
		}
	}
	w.writeLine("")

	// 5. Copy outputs to the built-in results
	if err := w.writeOutputs(); err != nil {
		return err
	}

	w.popIndent()
	w.writeLine("}")
	if w.overflow {
		return ErrOutputLimit
	}
	return nil
}

// collectGlobals records the uniforms, attributes and extensions the
// program needs.
func (w *Writer) collectGlobals() {
	seenAttrib := make(map[int]bool)
	visit := func(b *ir.Binding) {
		if b == nil {
			return
		}
		switch b.Kind {
		case ir.BindProgramEnv:
			w.usesEnv = true
		case ir.BindProgramLocal:
			w.usesLocal = true
		case ir.BindVertexAttrib:
			if !seenAttrib[b.Index] {
				seenAttrib[b.Index] = true
				w.attributes = append(w.attributes, b.Index)
			}
		case ir.BindResultColor:
			if b.Index > 0 {
				w.drawBuffers = true
			}
		}
	}

	rect := false
	for _, v := range w.program.Variables() {
		visit(v.Binding)
		for i := range v.Init {
			visit(v.Init[i].Binding)
		}
		if v.Type == ir.VarSampler {
			w.samplers = append(w.samplers, v)
			rect = rect || v.Target == ir.TargetRect
		}
	}
	if rect {
		w.extensions = append(w.extensions, "GL_ARB_texture_rectangle")
	}
}

// registerNames assigns a GLSL name to every variable. Generated globals
// are reserved first so user names cannot shadow them.
func (w *Writer) registerNames() {
	for _, s := range w.samplers {
		w.names[s] = w.namer.reserve(samplerName(s))
	}
	if w.usesEnv {
		w.namer.reserve(w.parameterArray(true))
	}
	if w.usesLocal {
		w.namer.reserve(w.parameterArray(false))
	}
	for _, n := range w.attributes {
		w.namer.reserve(w.attribute(n))
	}

	for _, v := range w.program.Variables() {
		if v.Type == ir.VarSampler {
			continue
		}
		if len(v.Names) > 0 {
			w.names[v] = w.namer.call(sanitize(v.Names[0]))
			continue
		}
		w.names[v] = w.namer.generated(implicitName(v))
	}
}

// implicitName is the base name of a variable materialised from an inline
// reference.
func implicitName(v *ir.Variable) string {
	if v.Type == ir.VarConst {
		return generatedPrefix + "const"
	}
	return generatedPrefix + sanitize(v.Key)
}

func samplerName(v *ir.Variable) string {
	return fmt.Sprintf("%sSampler%s_%d", generatedPrefix, v.Target, v.Unit)
}

// parameterArray names the program env or local uniform array.
func (w *Writer) parameterArray(env bool) string {
	stage := "Fragment"
	if w.program.Stage == ir.StageVertex {
		stage = "Vertex"
	}
	if env {
		return generatedPrefix + stage + "Env"
	}
	return generatedPrefix + stage + "Local"
}

// attribute names the generic vertex attribute n.
func (w *Writer) attribute(n int) string {
	return fmt.Sprintf("%sAttrib%d", generatedPrefix, n)
}

// writeGlobals writes uniforms and attributes. It reports whether anything
// was written.
func (w *Writer) writeGlobals() bool {
	wrote := false
	for _, s := range w.samplers {
		w.writeLine("uniform %s %s;", samplerType(s.Target), w.names[s])
		wrote = true
	}
	limit := w.program.Stage.ParameterLimit()
	if w.usesEnv {
		w.writeLine("uniform vec4 %s[%d];", w.parameterArray(true), limit)
		wrote = true
	}
	if w.usesLocal {
		w.writeLine("uniform vec4 %s[%d];", w.parameterArray(false), limit)
		wrote = true
	}
	for _, n := range w.attributes {
		w.writeLine("attribute vec4 %s;", w.attribute(n))
		wrote = true
	}
	return wrote
}

// writeLocals declares every variable at the top of main.
func (w *Writer) writeLocals() error {
	for _, v := range w.program.Variables() {
		if err := w.writeLocal(v); err != nil {
			var unsupported errUnsupported
			if errors.As(err, &unsupported) {
				return &GenerateError{Phase: PhaseDeclarations, Message: err.Error(), Offset: OffsetDeclarations}
			}
			return err
		}
	}
	if w.trace {
		w.logger.Debug("glsl declarations", slog.Int("variables", len(w.names)), slog.Int("bytes", w.out.Len()))
	}
	if w.overflow {
		return ErrOutputLimit
	}
	return nil
}

func (w *Writer) writeLocal(v *ir.Variable) error {
	name := w.names[v]
	switch v.Type {
	case ir.VarTemp:
		w.writeLine("vec4 %s;", name)
	case ir.VarAddress:
		w.writeLine("ivec4 %s = ivec4(0);", name)
	case ir.VarAttrib:
		expr, err := w.bindingExpr(*v.Binding)
		if err != nil {
			return err
		}
		w.writeLine("vec4 %s = %s;", name, expr)
	case ir.VarOutput:
		w.writeLine("vec4 %s = vec4(0.0);", name)
	case ir.VarConst:
		w.writeLine("const vec4 %s = %s;", name, literal(v.Init[0].Literal))
	case ir.VarParam:
		if v.Array {
			elems := make([]string, len(v.Init))
			for i, e := range v.Init {
				expr, err := w.elementExpr(e)
				if err != nil {
					return err
				}
				elems[i] = expr
			}
			w.writeLine("vec4 %s[%d] = vec4[%d](%s);", name, len(elems), len(elems), strings.Join(elems, ", "))
			return nil
		}
		if v.Init[0].IsConstant() {
			w.writeLine("const vec4 %s = %s;", name, literal(v.Init[0].Literal))
			return nil
		}
		expr, err := w.elementExpr(v.Init[0])
		if err != nil {
			return err
		}
		w.writeLine("vec4 %s = %s;", name, expr)
	}
	return nil
}

func (w *Writer) elementExpr(e ir.Element) (string, error) {
	if e.IsConstant() {
		return literal(e.Literal), nil
	}
	return w.bindingExpr(*e.Binding)
}

func literal(lit [4]string) string {
	return "vec4(" + strings.Join(lit[:], ", ") + ")"
}

// writeOutputs copies output variables to the GLSL built-ins.
func (w *Writer) writeOutputs() error {
	invariant := w.program.Options.Has(ir.OptionPositionInvariant)
	fog := fogFactor(w.program.Options.Fog())

	for _, v := range w.program.Variables() {
		if v.Type != ir.VarOutput {
			continue
		}
		b := *v.Binding
		if invariant && b.Kind == ir.BindResultPosition {
			return &GenerateError{
				Phase:   PhaseOutputs,
				Message: "result.position cannot be written with ARB_position_invariant",
				Offset:  OffsetOutputs,
			}
		}
		target, err := w.resultTarget(b)
		if err != nil {
			return &GenerateError{Phase: PhaseOutputs, Message: err.Error(), Offset: OffsetOutputs}
		}
		name := w.names[v]
		if fog != "" && b.Kind == ir.BindResultColor {
			w.writeLine("%s = vec4(mix(gl_Fog.color.rgb, %s.rgb, %s), %s.a);", target, name, fog, name)
			continue
		}
		w.writeLine("%s = %s%s;", target, name, resultSwizzle(b))
	}
	if invariant {
		w.writeLine("gl_Position = ftransform();")
	}
	return nil
}

// Output helpers

// writeLine writes a line with indentation and newline. An empty line still
// carries the indentation.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
	if limit := w.options.MaxOutputSize; limit > 0 && w.out.Len() > limit {
		w.overflow = true
	}
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteByte('\t')
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
