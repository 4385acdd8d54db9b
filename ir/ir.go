package ir

// Stage selects the ARB program grammar: vertex or fragment.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Header returns the mandatory program header tag for the stage.
func (s Stage) Header() string {
	if s == StageVertex {
		return "!!ARBvp1.0"
	}
	return "!!ARBfp1.0"
}

// ParameterLimit returns the number of program environment and local
// parameters available to the stage.
func (s Stage) ParameterLimit() int {
	if s == StageVertex {
		return MaxVertexParameters
	}
	return MaxFragmentParameters
}

// Implementation limits enforced by the parser.
const (
	MaxVertexParameters   = 96
	MaxFragmentParameters = 24
	MaxTextureUnits       = 8
	MaxTextureCoords      = 8
	MaxLights             = 8
	MaxClipPlanes         = 6
	MaxVertexAttribs      = 16
	MaxDrawBuffers        = 8
)

// Option is a program option enabled by an OPTION statement.
type Option uint16

const (
	OptionPrecisionFastest Option = 1 << iota
	OptionPrecisionNicest
	OptionFogExp
	OptionFogExp2
	OptionFogLinear
	OptionDrawBuffers
	OptionPositionInvariant
)

// OptionSet is a set of enabled options.
type OptionSet uint16

// Has reports whether o is enabled.
func (s OptionSet) Has(o Option) bool {
	return uint16(s)&uint16(o) != 0
}

// With returns the set with o enabled.
func (s OptionSet) With(o Option) OptionSet {
	return OptionSet(uint16(s) | uint16(o))
}

// Fog returns the enabled fog option, or 0 when fog is off.
func (s OptionSet) Fog() Option {
	for _, o := range []Option{OptionFogExp, OptionFogExp2, OptionFogLinear} {
		if s.Has(o) {
			return o
		}
	}
	return 0
}

// Program is a fully parsed ARB program.
type Program struct {
	Stage        Stage
	Options      OptionSet
	Symbols      *SymbolTable
	Instructions []*Instruction
}

// NewProgram creates an empty program for the given stage.
func NewProgram(stage Stage) *Program {
	return &Program{
		Stage:        stage,
		Symbols:      NewSymbolTable(),
		Instructions: make([]*Instruction, 0, 16),
	}
}

// Variables returns the program variables in declaration order.
func (p *Program) Variables() []*Variable {
	return p.Symbols.Variables()
}

// Append adds an instruction to the end of the instruction stream.
func (p *Program) Append(inst *Instruction) {
	p.Instructions = append(p.Instructions, inst)
}
