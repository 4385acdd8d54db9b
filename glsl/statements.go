// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/arbconv/ir"
)

// writeInstruction writes the statement implementing one instruction.
func (w *Writer) writeInstruction(inst *ir.Instruction) error {
	if w.trace {
		w.logger.Debug("glsl instruction", slog.String("op", inst.Mnemonic()), slog.Int("offset", inst.Offset))
	}

	switch inst.Op {
	case ir.OpKIL:
		w.writeLine("if (any(lessThan(%s, vec4(0.0)))) discard;", w.srcVec(inst.Src(0)))
		return nil
	case ir.OpARL:
		dst := inst.Dst()
		w.writeLine("%s.x = int(floor(%s));", w.names[dst.Var], w.srcScalar(inst.Src(0)))
		return nil
	}

	value, err := w.instructionValue(inst)
	if err != nil {
		return err
	}
	if inst.Saturate {
		value = fmt.Sprintf("clamp(%s, 0.0, 1.0)", value)
	}

	dst := inst.Dst()
	name := w.names[dst.Var]
	if dst.Mask == ir.MaskAll {
		w.writeLine("%s = %s;", name, value)
		return nil
	}
	mask := dst.Mask.String()
	w.writeLine("%s.%s = (%s).%s;", name, mask, value, mask)
	return nil
}
