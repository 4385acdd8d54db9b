package ir

import (
	"fmt"
)

// ValidationError represents a broken IR invariant.
type ValidationError struct {
	Message string
	// Instruction is the index of the offending instruction, or -1.
	Instruction int
	// Offset is the source offset of the offending instruction, or -1.
	Offset int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Instruction >= 0 {
		return fmt.Sprintf("instruction %d: %s", e.Instruction, e.Message)
	}
	return e.Message
}

// Validate checks the structural invariants the generator relies on:
// every operand references a variable owned by the symbol table, operand
// counts match the opcode, and variables carry the data their type needs.
// It returns the first violation found.
func Validate(p *Program) error {
	if p == nil {
		return fmt.Errorf("program is nil")
	}
	if p.Symbols == nil {
		return ValidationError{Message: "program has no symbol table", Instruction: -1, Offset: -1}
	}

	owned := make(map[*Variable]struct{}, p.Symbols.Count())
	for _, v := range p.Symbols.Variables() {
		owned[v] = struct{}{}
		if err := validateVariable(v); err != nil {
			return err
		}
	}

	for i, inst := range p.Instructions {
		info := inst.Op.Info()
		if !info.Stages.Allows(p.Stage) {
			return ValidationError{
				Message:     fmt.Sprintf("%s is not available in %s programs", info.Name, p.Stage),
				Instruction: i,
				Offset:      inst.Offset,
			}
		}
		if inst.NumOperands != info.Operands() {
			return ValidationError{
				Message:     fmt.Sprintf("%s has %d operands, want %d", info.Name, inst.NumOperands, info.Operands()),
				Instruction: i,
				Offset:      inst.Offset,
			}
		}
		for j := 0; j < inst.NumOperands; j++ {
			op := &inst.Operands[j]
			if op.Var == nil {
				return ValidationError{Message: fmt.Sprintf("operand %d has no variable", j), Instruction: i, Offset: inst.Offset}
			}
			if _, ok := owned[op.Var]; !ok {
				return ValidationError{Message: fmt.Sprintf("operand %d references unknown variable %s", j, op.Var.Name()), Instruction: i, Offset: inst.Offset}
			}
			if op.Address != nil {
				if _, ok := owned[op.Address]; !ok {
					return ValidationError{Message: fmt.Sprintf("operand %d references unknown address register", j), Instruction: i, Offset: inst.Offset}
				}
			}
		}
	}
	return nil
}

func validateVariable(v *Variable) error {
	switch v.Type {
	case VarAttrib, VarOutput:
		if v.Binding == nil {
			return ValidationError{Message: fmt.Sprintf("%s has no binding", v), Instruction: -1, Offset: v.Offset}
		}
	case VarParam, VarConst:
		if len(v.Init) == 0 {
			return ValidationError{Message: fmt.Sprintf("%s has no initializer", v), Instruction: -1, Offset: v.Offset}
		}
	case VarSampler:
		if v.Target == TargetNone {
			return ValidationError{Message: fmt.Sprintf("%s has no texture target", v), Instruction: -1, Offset: v.Offset}
		}
	}
	switch {
	case v.State == VarDeclared && len(v.Names) == 0:
		return ValidationError{Message: fmt.Sprintf("declared %s variable has no name", v.Type), Instruction: -1, Offset: v.Offset}
	case v.State == VarImplicit && v.Key == "":
		return ValidationError{Message: fmt.Sprintf("implicit %s variable has no key", v.Type), Instruction: -1, Offset: v.Offset}
	}
	return nil
}
