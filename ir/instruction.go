package ir

import "strings"

// Opcode is an ARB program instruction.
type Opcode uint8

const (
	OpABS Opcode = iota
	OpADD
	OpARL
	OpCMP
	OpCOS
	OpDP3
	OpDP4
	OpDPH
	OpDST
	OpEX2
	OpEXP
	OpFLR
	OpFRC
	OpKIL
	OpLG2
	OpLIT
	OpLOG
	OpLRP
	OpMAD
	OpMAX
	OpMIN
	OpMOV
	OpMUL
	OpPOW
	OpRCP
	OpRSQ
	OpSCS
	OpSGE
	OpSIN
	OpSLT
	OpSUB
	OpSWZ
	OpTEX
	OpTXB
	OpTXP
	OpXPD
	opcodeCount
)

// SourceKind is the shape of a source operand.
type SourceKind uint8

const (
	SourceVector SourceKind = iota
	SourceScalar
)

// StageMask is a set of stages an opcode is available in.
type StageMask uint8

const (
	VertexOnly   StageMask = 1 << StageVertex
	FragmentOnly StageMask = 1 << StageFragment
	AllStages              = VertexOnly | FragmentOnly
)

// Allows reports whether the mask includes the stage.
func (m StageMask) Allows(s Stage) bool {
	return m&(1<<s) != 0
}

// OpcodeInfo describes the operand layout of an opcode.
type OpcodeInfo struct {
	Name       string
	Stages     StageMask
	HasDst     bool
	Sources    []SourceKind
	Texture    bool // texture image and target operands follow the sources
	ExtSwizzle bool // extended swizzle follows the source (SWZ)
}

// Operands returns the number of operand slots the opcode fills.
func (i OpcodeInfo) Operands() int {
	n := len(i.Sources)
	if i.HasDst {
		n++
	}
	if i.Texture {
		n++
	}
	return n
}

var (
	vec1   = []SourceKind{SourceVector}
	vec2   = []SourceKind{SourceVector, SourceVector}
	vec3   = []SourceKind{SourceVector, SourceVector, SourceVector}
	scal1  = []SourceKind{SourceScalar}
	scal2  = []SourceKind{SourceScalar, SourceScalar}
	opInfo = [opcodeCount]OpcodeInfo{
		OpABS: {Name: "ABS", Stages: AllStages, HasDst: true, Sources: vec1},
		OpADD: {Name: "ADD", Stages: AllStages, HasDst: true, Sources: vec2},
		OpARL: {Name: "ARL", Stages: VertexOnly, HasDst: true, Sources: scal1},
		OpCMP: {Name: "CMP", Stages: FragmentOnly, HasDst: true, Sources: vec3},
		OpCOS: {Name: "COS", Stages: FragmentOnly, HasDst: true, Sources: scal1},
		OpDP3: {Name: "DP3", Stages: AllStages, HasDst: true, Sources: vec2},
		OpDP4: {Name: "DP4", Stages: AllStages, HasDst: true, Sources: vec2},
		OpDPH: {Name: "DPH", Stages: AllStages, HasDst: true, Sources: vec2},
		OpDST: {Name: "DST", Stages: AllStages, HasDst: true, Sources: vec2},
		OpEX2: {Name: "EX2", Stages: AllStages, HasDst: true, Sources: scal1},
		OpEXP: {Name: "EXP", Stages: VertexOnly, HasDst: true, Sources: scal1},
		OpFLR: {Name: "FLR", Stages: AllStages, HasDst: true, Sources: vec1},
		OpFRC: {Name: "FRC", Stages: AllStages, HasDst: true, Sources: vec1},
		OpKIL: {Name: "KIL", Stages: FragmentOnly, Sources: vec1},
		OpLG2: {Name: "LG2", Stages: AllStages, HasDst: true, Sources: scal1},
		OpLIT: {Name: "LIT", Stages: AllStages, HasDst: true, Sources: vec1},
		OpLOG: {Name: "LOG", Stages: VertexOnly, HasDst: true, Sources: scal1},
		OpLRP: {Name: "LRP", Stages: FragmentOnly, HasDst: true, Sources: vec3},
		OpMAD: {Name: "MAD", Stages: AllStages, HasDst: true, Sources: vec3},
		OpMAX: {Name: "MAX", Stages: AllStages, HasDst: true, Sources: vec2},
		OpMIN: {Name: "MIN", Stages: AllStages, HasDst: true, Sources: vec2},
		OpMOV: {Name: "MOV", Stages: AllStages, HasDst: true, Sources: vec1},
		OpMUL: {Name: "MUL", Stages: AllStages, HasDst: true, Sources: vec2},
		OpPOW: {Name: "POW", Stages: AllStages, HasDst: true, Sources: scal2},
		OpRCP: {Name: "RCP", Stages: AllStages, HasDst: true, Sources: scal1},
		OpRSQ: {Name: "RSQ", Stages: AllStages, HasDst: true, Sources: scal1},
		OpSCS: {Name: "SCS", Stages: FragmentOnly, HasDst: true, Sources: scal1},
		OpSGE: {Name: "SGE", Stages: AllStages, HasDst: true, Sources: vec2},
		OpSIN: {Name: "SIN", Stages: FragmentOnly, HasDst: true, Sources: scal1},
		OpSLT: {Name: "SLT", Stages: AllStages, HasDst: true, Sources: vec2},
		OpSUB: {Name: "SUB", Stages: AllStages, HasDst: true, Sources: vec2},
		OpSWZ: {Name: "SWZ", Stages: AllStages, HasDst: true, Sources: vec1, ExtSwizzle: true},
		OpTEX: {Name: "TEX", Stages: FragmentOnly, HasDst: true, Sources: vec1, Texture: true},
		OpTXB: {Name: "TXB", Stages: FragmentOnly, HasDst: true, Sources: vec1, Texture: true},
		OpTXP: {Name: "TXP", Stages: FragmentOnly, HasDst: true, Sources: vec1, Texture: true},
		OpXPD: {Name: "XPD", Stages: AllStages, HasDst: true, Sources: vec2},
	}
	opByName = func() map[string]Opcode {
		m := make(map[string]Opcode, opcodeCount)
		for op := Opcode(0); op < opcodeCount; op++ {
			m[opInfo[op].Name] = op
		}
		return m
	}()
)

// Info returns the operand layout of the opcode.
func (op Opcode) Info() OpcodeInfo {
	if op >= opcodeCount {
		return OpcodeInfo{Name: "???"}
	}
	return opInfo[op]
}

// String returns the ARB mnemonic.
func (op Opcode) String() string {
	return op.Info().Name
}

// LookupOpcode maps a mnemonic (without _SAT suffix) to an Opcode.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opByName[name]
	return op, ok
}

// Component is one element of a swizzle.
type Component uint8

const (
	CompUnset Component = iota
	CompX
	CompY
	CompZ
	CompW
	CompZero // extended swizzle constant 0
	CompOne  // extended swizzle constant 1
)

// Letter returns the GLSL swizzle letter of the component.
func (c Component) Letter() byte {
	switch c {
	case CompX:
		return 'x'
	case CompY:
		return 'y'
	case CompZ:
		return 'z'
	case CompW:
		return 'w'
	case CompZero:
		return '0'
	case CompOne:
		return '1'
	default:
		return ' '
	}
}

// ComponentFromLetter maps a swizzle letter to a Component. rgba letters are
// accepted only when allowColor is set.
func ComponentFromLetter(ch byte, allowColor bool) (Component, bool) {
	switch ch {
	case 'x':
		return CompX, true
	case 'y':
		return CompY, true
	case 'z':
		return CompZ, true
	case 'w':
		return CompW, true
	}
	if allowColor {
		switch ch {
		case 'r':
			return CompX, true
		case 'g':
			return CompY, true
		case 'b':
			return CompZ, true
		case 'a':
			return CompW, true
		}
	}
	return CompUnset, false
}

// Swizzle is a four-element component selection. Unset trailing elements
// mean "no swizzle" (all unset) or scalar replication (only the first set).
type Swizzle [4]Component

// Len returns the number of set components.
func (s Swizzle) Len() int {
	n := 0
	for _, c := range s {
		if c != CompUnset {
			n++
		}
	}
	return n
}

// Component returns the source component read for result component i.
func (s Swizzle) Component(i int) Component {
	switch s.Len() {
	case 0:
		return Component(CompX + Component(i))
	case 1:
		return s[0]
	default:
		return s[i]
	}
}

// String returns the swizzle letters, e.g. "wzyx".
func (s Swizzle) String() string {
	var sb strings.Builder
	for _, c := range s {
		if c != CompUnset {
			sb.WriteByte(c.Letter())
		}
	}
	return sb.String()
}

// WriteMask is a destination write mask.
type WriteMask uint8

const (
	MaskX   WriteMask = 1 << iota
	MaskY
	MaskZ
	MaskW
	MaskAll = MaskX | MaskY | MaskZ | MaskW
)

// String returns the mask letters in xyzw order.
func (m WriteMask) String() string {
	var sb strings.Builder
	for i, l := range "xyzw" {
		if m&(1<<i) != 0 {
			sb.WriteRune(l)
		}
	}
	return sb.String()
}

// Sign is the optional sign prefix of a source operand.
type Sign int8

const (
	SignNone  Sign = 0
	SignPlus  Sign = 1
	SignMinus Sign = -1
)

// Operand is one operand slot of an instruction. Var is owned by the symbol
// table; the operand only references it.
type Operand struct {
	Var     *Variable
	Sign    Sign
	Swizzle Swizzle
	// Negate flags per-component negation of an extended swizzle (SWZ).
	Negate [4]bool
	// Mask is the write mask of a destination operand.
	Mask WriteMask

	// Array indexing: absolute Index, or Address register plus Index offset.
	Indexed     bool
	Index       int
	Address     *Variable
	AddressComp Component

	// Target is set on the texture image operand of TEX, TXB and TXP.
	Target TextureTarget
}

// Negated reports whether the operand carries a minus sign.
func (o *Operand) Negated() bool {
	return o.Sign == SignMinus
}

// MaxOperands is the maximum number of operand slots of an instruction.
const MaxOperands = 4

// Instruction is a single parsed ARB instruction.
type Instruction struct {
	Op       Opcode
	Saturate bool
	// Offset is the byte offset of the opcode token in the source text.
	Offset      int
	Operands    [MaxOperands]Operand
	NumOperands int
}

// Dst returns the destination operand, or nil for instructions without one.
func (inst *Instruction) Dst() *Operand {
	if !inst.Op.Info().HasDst {
		return nil
	}
	return &inst.Operands[0]
}

// Src returns source operand i (0-based, after the destination).
func (inst *Instruction) Src(i int) *Operand {
	if inst.Op.Info().HasDst {
		i++
	}
	return &inst.Operands[i]
}

// Texture returns the texture image operand of a texture instruction.
func (inst *Instruction) Texture() *Operand {
	info := inst.Op.Info()
	if !info.Texture {
		return nil
	}
	return &inst.Operands[info.Operands()-1]
}

// Mnemonic returns the opcode with its saturate suffix.
func (inst *Instruction) Mnemonic() string {
	if inst.Saturate {
		return inst.Op.String() + "_SAT"
	}
	return inst.Op.String()
}
