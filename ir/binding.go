package ir

import (
	"fmt"
	"strings"
)

// BindingKind identifies the kind of state or attribute a register is bound to.
type BindingKind uint8

const (
	BindNone BindingKind = iota

	// Fragment program inputs
	BindFragmentColor
	BindFragmentTexCoord
	BindFragmentFogCoord
	BindFragmentPosition

	// Vertex program inputs
	BindVertexPosition
	BindVertexWeight
	BindVertexNormal
	BindVertexColor
	BindVertexFogCoord
	BindVertexTexCoord
	BindVertexMatrixIndex
	BindVertexAttrib

	// Results
	BindResultColor
	BindResultDepth
	BindResultPosition
	BindResultFogCoord
	BindResultPointSize
	BindResultTexCoord

	// Program parameters
	BindProgramEnv
	BindProgramLocal

	// GL state
	BindStateMatrix
	BindStateMaterial
	BindStateLight
	BindStateLightModel
	BindStateLightProd
	BindStateTexGen
	BindStateFog
	BindStateClipPlane
	BindStatePoint
	BindStateTexEnv
	BindStateDepthRange
)

// Face selects front or back material/color state.
type Face uint8

const (
	FaceFront Face = iota
	FaceBack
)

// Binding describes one vec4 of GL state, vertex/fragment attribute or
// result register. Multi-row bindings (matrices, ranges) are expanded by the
// parser into one Binding per row.
type Binding struct {
	Kind      BindingKind
	Index     int
	Row       int
	Face      Face
	Secondary bool
	Matrix    string // modelview, projection, mvp, texture, palette, program
	Modifier  string // "", inverse, transpose, invtrans
	Property  string
	Coord     byte // texgen coordinate: s, t, r or q
}

// IsInput reports whether the binding is a fragment or vertex attribute.
func (b Binding) IsInput() bool {
	return b.Kind >= BindFragmentColor && b.Kind <= BindVertexAttrib
}

// IsResult reports whether the binding is a program result.
func (b Binding) IsResult() bool {
	return b.Kind >= BindResultColor && b.Kind <= BindResultTexCoord
}

// IsParameter reports whether the binding is a program parameter or GL state.
func (b Binding) IsParameter() bool {
	return b.Kind >= BindProgramEnv
}

// String returns the canonical ARB spelling of the binding. Two bindings
// referring to the same register always produce the same string.
func (b Binding) String() string {
	switch b.Kind {
	case BindFragmentColor:
		return colorName("fragment.color", b.Secondary)
	case BindFragmentTexCoord:
		return fmt.Sprintf("fragment.texcoord[%d]", b.Index)
	case BindFragmentFogCoord:
		return "fragment.fogcoord"
	case BindFragmentPosition:
		return "fragment.position"
	case BindVertexPosition:
		return "vertex.position"
	case BindVertexWeight:
		return fmt.Sprintf("vertex.weight[%d]", b.Index)
	case BindVertexNormal:
		return "vertex.normal"
	case BindVertexColor:
		return colorName("vertex.color", b.Secondary)
	case BindVertexFogCoord:
		return "vertex.fogcoord"
	case BindVertexTexCoord:
		return fmt.Sprintf("vertex.texcoord[%d]", b.Index)
	case BindVertexMatrixIndex:
		return fmt.Sprintf("vertex.matrixindex[%d]", b.Index)
	case BindVertexAttrib:
		return fmt.Sprintf("vertex.attrib[%d]", b.Index)
	case BindResultColor:
		return b.resultColorName()
	case BindResultDepth:
		return "result.depth"
	case BindResultPosition:
		return "result.position"
	case BindResultFogCoord:
		return "result.fogcoord"
	case BindResultPointSize:
		return "result.pointsize"
	case BindResultTexCoord:
		return fmt.Sprintf("result.texcoord[%d]", b.Index)
	case BindProgramEnv:
		return fmt.Sprintf("program.env[%d]", b.Index)
	case BindProgramLocal:
		return fmt.Sprintf("program.local[%d]", b.Index)
	case BindStateMatrix:
		return b.matrixName()
	case BindStateMaterial:
		return "state.material" + faceName(b.Face) + "." + b.Property
	case BindStateLight:
		return fmt.Sprintf("state.light[%d].%s", b.Index, b.Property)
	case BindStateLightModel:
		if b.Property == "ambient" {
			return "state.lightmodel.ambient"
		}
		return "state.lightmodel" + faceName(b.Face) + "." + b.Property
	case BindStateLightProd:
		return fmt.Sprintf("state.lightprod[%d]%s.%s", b.Index, faceName(b.Face), b.Property)
	case BindStateTexGen:
		return fmt.Sprintf("state.texgen[%d].%s.%c", b.Index, b.Property, b.Coord)
	case BindStateFog:
		return "state.fog." + b.Property
	case BindStateClipPlane:
		return fmt.Sprintf("state.clip[%d].plane", b.Index)
	case BindStatePoint:
		return "state.point." + b.Property
	case BindStateTexEnv:
		return fmt.Sprintf("state.texenv[%d].color", b.Index)
	case BindStateDepthRange:
		return "state.depth.range"
	default:
		return "<none>"
	}
}

func (b Binding) resultColorName() string {
	// Fragment results use Index for the draw buffer; vertex results use
	// Face/Secondary. The two never mix in a single program.
	if b.Index > 0 {
		return fmt.Sprintf("result.color[%d]", b.Index)
	}
	return colorName("result.color"+faceName(b.Face), b.Secondary)
}

func (b Binding) matrixName() string {
	var sb strings.Builder
	sb.WriteString("state.matrix.")
	sb.WriteString(b.Matrix)
	switch b.Matrix {
	case "palette", "program":
		fmt.Fprintf(&sb, "[%d]", b.Index)
	case "modelview", "texture":
		if b.Index > 0 {
			fmt.Fprintf(&sb, "[%d]", b.Index)
		}
	}
	if b.Modifier != "" {
		sb.WriteByte('.')
		sb.WriteString(b.Modifier)
	}
	fmt.Fprintf(&sb, ".row[%d]", b.Row)
	return sb.String()
}

func colorName(base string, secondary bool) string {
	if secondary {
		return base + ".secondary"
	}
	return base
}

func faceName(f Face) string {
	if f == FaceBack {
		return ".back"
	}
	return ""
}
