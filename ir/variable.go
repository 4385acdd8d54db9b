package ir

import (
	"strconv"
	"strings"
)

// VarType is the storage class of a Variable.
type VarType uint8

const (
	VarTemp VarType = iota
	VarAttrib
	VarOutput
	VarParam
	VarConst
	VarSampler
	VarAddress
)

// String returns the ARB keyword for the type.
func (t VarType) String() string {
	switch t {
	case VarTemp:
		return "TEMP"
	case VarAttrib:
		return "ATTRIB"
	case VarOutput:
		return "OUTPUT"
	case VarParam:
		return "PARAM"
	case VarConst:
		return "CONST"
	case VarSampler:
		return "SAMPLER"
	case VarAddress:
		return "ADDRESS"
	default:
		return "UNKNOWN"
	}
}

// VarState records how a Variable came into existence.
type VarState uint8

const (
	// VarDeclared marks a variable named by a declaration statement.
	VarDeclared VarState = iota
	// VarImplicit marks a variable materialised from an inline reference.
	VarImplicit
)

// TextureTarget is the texture target of a sampler.
type TextureTarget uint8

const (
	TargetNone TextureTarget = iota
	Target1D
	Target2D
	Target3D
	TargetCube
	TargetRect
)

// String returns the ARB spelling of the target.
func (t TextureTarget) String() string {
	switch t {
	case Target1D:
		return "1D"
	case Target2D:
		return "2D"
	case Target3D:
		return "3D"
	case TargetCube:
		return "CUBE"
	case TargetRect:
		return "RECT"
	default:
		return "NONE"
	}
}

// LookupTarget maps an ARB texture target keyword to a TextureTarget.
func LookupTarget(name string) (TextureTarget, bool) {
	switch name {
	case "1D":
		return Target1D, true
	case "2D":
		return Target2D, true
	case "3D":
		return Target3D, true
	case "CUBE":
		return TargetCube, true
	case "RECT":
		return TargetRect, true
	}
	return TargetNone, false
}

// Element is one vec4 slot of a parameter: either four literal components
// or a state binding.
type Element struct {
	Literal [4]string
	Binding *Binding
}

// IsConstant reports whether the element is a literal vector.
func (e Element) IsConstant() bool {
	return e.Binding == nil
}

// Variable is a register of an ARB program. Identity is by pointer: every
// name in Names resolves to the same Variable.
type Variable struct {
	Names []string
	Type  VarType
	State VarState

	// Array is true for PARAM arrays declared with brackets.
	Array bool
	// Init holds the contents of PARAM and constant variables.
	Init []Element
	// Binding is the bound input or result for ATTRIB and OUTPUT variables.
	Binding *Binding

	// Sampler state: texture image unit and the target it is sampled with.
	Unit   int
	Target TextureTarget

	// Key is the canonical key of an implicit variable ("fragment.color",
	// "{1, 0, 0, 1}", "texture[0]"). Empty for named variables.
	Key string
	// Offset is the byte offset of the first reference or declaration.
	Offset int
}

// Name returns the primary name of the variable, or its canonical key when
// the variable is implicit.
func (v *Variable) Name() string {
	if len(v.Names) > 0 {
		return v.Names[0]
	}
	return v.Key
}

// Size returns the number of vec4 elements of a parameter array.
func (v *Variable) Size() int {
	return len(v.Init)
}

// Readable reports whether the variable may appear as a source operand.
func (v *Variable) Readable() bool {
	switch v.Type {
	case VarTemp, VarAttrib, VarParam, VarConst:
		return true
	}
	return false
}

// Writable reports whether the variable may appear as a destination operand.
func (v *Variable) Writable() bool {
	return v.Type == VarTemp || v.Type == VarOutput
}

// String returns a short description used in traces.
func (v *Variable) String() string {
	var sb strings.Builder
	sb.WriteString(v.Type.String())
	sb.WriteByte(' ')
	sb.WriteString(v.Name())
	if len(v.Names) > 1 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(v.Names[1:], ", "))
		sb.WriteByte(')')
	}
	return sb.String()
}

// FormatFloat formats a literal the way it appears in generated code: the
// shortest round-trip form, always carrying a decimal point or exponent.
func FormatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// ConstantKey returns the canonical key of a literal vector, e.g.
// "{1.0, 0.0, 0.0, 1.0}".
func ConstantKey(lit [4]string) string {
	return "{" + strings.Join(lit[:], ", ") + "}"
}
