// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/arbconv/ir"
)

// operandBase returns the register an operand reads, including any array
// index, without sign or swizzle.
func (w *Writer) operandBase(op *ir.Operand) string {
	name := w.names[op.Var]
	if !op.Indexed {
		return name
	}
	if op.Address == nil {
		return fmt.Sprintf("%s[%d]", name, op.Index)
	}
	addr := w.names[op.Address] + "." + string(op.AddressComp.Letter())
	switch {
	case op.Index > 0:
		return fmt.Sprintf("%s[%s + %d]", name, addr, op.Index)
	case op.Index < 0:
		return fmt.Sprintf("%s[%s - %d]", name, addr, -op.Index)
	}
	return fmt.Sprintf("%s[%s]", name, addr)
}

func signed(op *ir.Operand, expr string) string {
	if op.Negated() {
		return "-" + expr
	}
	return expr
}

// srcVec returns a source operand as a vec4 expression. A single swizzle
// component is replicated.
func (w *Writer) srcVec(op *ir.Operand) string {
	base := w.operandBase(op)
	switch op.Swizzle.Len() {
	case 0:
		return signed(op, base)
	case 1:
		return signed(op, base+"."+strings.Repeat(string(op.Swizzle[0].Letter()), 4))
	}
	return signed(op, base+"."+op.Swizzle.String())
}

// srcComp returns component i of a source operand as a float expression.
func (w *Writer) srcComp(op *ir.Operand, i int) string {
	return signed(op, w.operandBase(op)+"."+string(op.Swizzle.Component(i).Letter()))
}

// srcScalar returns a scalar source operand.
func (w *Writer) srcScalar(op *ir.Operand) string {
	return w.srcComp(op, 0)
}

// extSwizzle builds the vector selected by an SWZ extended swizzle.
func (w *Writer) extSwizzle(op *ir.Operand) string {
	base := w.operandBase(op)
	parts := make([]string, 4)
	for i, c := range op.Swizzle {
		neg := op.Negate[i] != op.Negated()
		var part string
		switch c {
		case ir.CompZero:
			part = "0.0"
			neg = false
		case ir.CompOne:
			part = "1.0"
		default:
			part = base + "." + string(c.Letter())
		}
		if neg {
			part = "-" + part
		}
		parts[i] = part
	}
	return "vec4(" + strings.Join(parts, ", ") + ")"
}

// instructionValue returns the vec4 expression an instruction computes.
// ARL and KIL are written directly by writeInstruction.
func (w *Writer) instructionValue(inst *ir.Instruction) (string, error) {
	src := func(i int) *ir.Operand { return inst.Src(i) }
	a := func() string { return w.srcVec(src(0)) }
	b := func() string { return w.srcVec(src(1)) }
	c := func() string { return w.srcVec(src(2)) }
	s := func() string { return w.srcScalar(src(0)) }

	switch inst.Op {
	case ir.OpABS:
		return fmt.Sprintf("abs(%s)", a()), nil
	case ir.OpADD:
		return fmt.Sprintf("%s + %s", a(), b()), nil
	case ir.OpSUB:
		return fmt.Sprintf("%s - %s", a(), b()), nil
	case ir.OpMUL:
		return fmt.Sprintf("%s * %s", a(), b()), nil
	case ir.OpMAD:
		return fmt.Sprintf("%s * %s + %s", a(), b(), c()), nil
	case ir.OpMOV:
		return a(), nil
	case ir.OpFLR:
		return fmt.Sprintf("floor(%s)", a()), nil
	case ir.OpFRC:
		return fmt.Sprintf("fract(%s)", a()), nil
	case ir.OpMAX:
		return fmt.Sprintf("max(%s, %s)", a(), b()), nil
	case ir.OpMIN:
		return fmt.Sprintf("min(%s, %s)", a(), b()), nil
	case ir.OpSGE:
		return fmt.Sprintf("vec4(greaterThanEqual(%s, %s))", a(), b()), nil
	case ir.OpSLT:
		return fmt.Sprintf("vec4(lessThan(%s, %s))", a(), b()), nil
	case ir.OpDP3:
		return fmt.Sprintf("vec4(dot(vec3(%s), vec3(%s)))", a(), b()), nil
	case ir.OpDP4:
		return fmt.Sprintf("vec4(dot(%s, %s))", a(), b()), nil
	case ir.OpDPH:
		return fmt.Sprintf("vec4(dot(vec3(%s), vec3(%s)) + %s)", a(), b(), w.srcComp(src(1), 3)), nil
	case ir.OpDST:
		return fmt.Sprintf("vec4(1.0, %s * %s, %s, %s)",
			w.srcComp(src(0), 1), w.srcComp(src(1), 1), w.srcComp(src(0), 2), w.srcComp(src(1), 3)), nil
	case ir.OpLIT:
		x, y, wc := w.srcComp(src(0), 0), w.srcComp(src(0), 1), w.srcComp(src(0), 3)
		return fmt.Sprintf("vec4(1.0, max(%[1]s, 0.0), (%[1]s > 0.0) ? pow(max(%[2]s, 0.0), clamp(%[3]s, -128.0, 128.0)) : 0.0, 1.0)",
			x, y, wc), nil
	case ir.OpLRP:
		return fmt.Sprintf("mix(%s, %s, %s)", c(), b(), a()), nil
	case ir.OpCMP:
		return fmt.Sprintf("mix(%s, %s, vec4(lessThan(%s, vec4(0.0))))", c(), b(), a()), nil
	case ir.OpXPD:
		return fmt.Sprintf("vec4(cross(vec3(%s), vec3(%s)), 1.0)", a(), b()), nil
	case ir.OpSWZ:
		return w.extSwizzle(src(0)), nil
	case ir.OpRCP:
		return fmt.Sprintf("vec4(1.0 / %s)", s()), nil
	case ir.OpRSQ:
		return fmt.Sprintf("vec4(inversesqrt(abs(%s)))", s()), nil
	case ir.OpEX2:
		return fmt.Sprintf("vec4(exp2(%s))", s()), nil
	case ir.OpLG2:
		return fmt.Sprintf("vec4(log2(%s))", s()), nil
	case ir.OpPOW:
		return fmt.Sprintf("vec4(pow(%s, %s))", s(), w.srcScalar(src(1))), nil
	case ir.OpEXP:
		return fmt.Sprintf("vec4(exp2(floor(%[1]s)), fract(%[1]s), exp2(%[1]s), 1.0)", s()), nil
	case ir.OpLOG:
		return fmt.Sprintf("vec4(floor(log2(abs(%[1]s))), abs(%[1]s) / exp2(floor(log2(abs(%[1]s)))), log2(abs(%[1]s)), 1.0)", s()), nil
	case ir.OpSIN:
		return fmt.Sprintf("vec4(sin(%s))", s()), nil
	case ir.OpCOS:
		return fmt.Sprintf("vec4(cos(%s))", s()), nil
	case ir.OpSCS:
		return fmt.Sprintf("vec4(cos(%[1]s), sin(%[1]s), 0.0, 0.0)", s()), nil
	case ir.OpTEX, ir.OpTXP, ir.OpTXB:
		return w.textureSample(inst)
	}
	return "", &GenerateError{
		Phase:   PhaseInstructions,
		Message: fmt.Sprintf("unsupported instruction %s", inst.Mnemonic()),
		Offset:  inst.Offset,
	}
}

// textureSample returns the lookup expression of TEX, TXP and TXB.
func (w *Writer) textureSample(inst *ir.Instruction) (string, error) {
	coord := inst.Src(0)
	tex := inst.Texture()
	sampler := w.names[tex.Var]
	v := w.srcVec(coord)
	q := w.srcComp(coord, 3)

	switch inst.Op {
	case ir.OpTEX:
		switch tex.Target {
		case ir.Target1D:
			return fmt.Sprintf("texture1D(%s, %s)", sampler, w.srcComp(coord, 0)), nil
		case ir.Target2D:
			return fmt.Sprintf("texture2D(%s, vec2(%s))", sampler, v), nil
		case ir.Target3D:
			return fmt.Sprintf("texture3D(%s, vec3(%s))", sampler, v), nil
		case ir.TargetCube:
			return fmt.Sprintf("textureCube(%s, vec3(%s))", sampler, v), nil
		case ir.TargetRect:
			return fmt.Sprintf("texture2DRect(%s, vec2(%s))", sampler, v), nil
		}
	case ir.OpTXP:
		switch tex.Target {
		case ir.Target1D:
			return fmt.Sprintf("texture1DProj(%s, %s)", sampler, v), nil
		case ir.Target2D:
			return fmt.Sprintf("texture2DProj(%s, %s)", sampler, v), nil
		case ir.Target3D:
			return fmt.Sprintf("texture3DProj(%s, %s)", sampler, v), nil
		case ir.TargetCube:
			return fmt.Sprintf("textureCube(%s, vec3(%s) / %s)", sampler, v, q), nil
		case ir.TargetRect:
			return fmt.Sprintf("texture2DRectProj(%s, %s)", sampler, v), nil
		}
	case ir.OpTXB:
		switch tex.Target {
		case ir.Target1D:
			return fmt.Sprintf("texture1D(%s, %s, %s)", sampler, w.srcComp(coord, 0), q), nil
		case ir.Target2D:
			return fmt.Sprintf("texture2D(%s, vec2(%s), %s)", sampler, v, q), nil
		case ir.Target3D:
			return fmt.Sprintf("texture3D(%s, vec3(%s), %s)", sampler, v, q), nil
		case ir.TargetCube:
			return fmt.Sprintf("textureCube(%s, vec3(%s), %s)", sampler, v, q), nil
		}
	}
	return "", &GenerateError{
		Phase:   PhaseInstructions,
		Message: fmt.Sprintf("%s does not support %s textures", inst.Op, tex.Target),
		Offset:  inst.Offset,
	}
}
