package arb

import (
	"fmt"

	"github.com/gogpu/arbconv/ir"
)

// pathPart is one dot-separated component of a binding path, with its
// optional bracketed index or range.
type pathPart struct {
	name     string
	indexed  bool
	ranged   bool
	lo, hi   int
	offset   int
	indexPos int
}

// pathStatus is the outcome of resolving a (possibly partial) binding path.
type pathStatus uint8

const (
	pathInvalid pathStatus = iota
	pathIncomplete
	pathComplete
)

// bindingRoots are the identifiers that start a binding path.
var bindingRoots = map[string]struct{}{
	"fragment": {},
	"vertex":   {},
	"result":   {},
	"program":  {},
	"state":    {},
}

// resolver walks a binding path. Resolution is pure: the parser calls it
// repeatedly on growing paths to decide whether a ".name" continues the
// binding or starts a swizzle.
type resolver struct {
	stage   ir.Stage
	options ir.OptionSet
	parts   []pathPart
	i       int
	out     []ir.Binding
	status  pathStatus
	msg     string
	offset  int
}

// resolveBinding resolves parts into one or more bindings.
// On pathInvalid the message and offset describe the first bad component.
func resolveBinding(stage ir.Stage, options ir.OptionSet, parts []pathPart) ([]ir.Binding, pathStatus, string, int) {
	r := &resolver{stage: stage, options: options, parts: parts, status: pathComplete}
	r.root()
	if r.status == pathComplete && r.i < len(r.parts) {
		r.fail(r.parts[r.i], "unexpected binding member %q", r.parts[r.i].name)
	}
	return r.out, r.status, r.msg, r.offset
}

// next returns the next part, or nil (and marks the path incomplete) when
// the path ends early.
func (r *resolver) next() *pathPart {
	if r.status != pathComplete {
		return nil
	}
	if r.i >= len(r.parts) {
		r.status = pathIncomplete
		return nil
	}
	p := &r.parts[r.i]
	r.i++
	return p
}

// more reports whether another part follows.
func (r *resolver) more() bool {
	return r.status == pathComplete && r.i < len(r.parts)
}

// peek returns the name of the next part without consuming it.
func (r *resolver) peek() string {
	if !r.more() {
		return ""
	}
	return r.parts[r.i].name
}

func (r *resolver) fail(p pathPart, format string, args ...any) {
	if r.status == pathInvalid {
		return
	}
	r.status = pathInvalid
	r.msg = fmt.Sprintf(format, args...)
	r.offset = p.offset
}

func (r *resolver) emit(b ir.Binding) {
	if r.status == pathComplete {
		r.out = append(r.out, b)
	}
}

// noIndex fails when p carries a bracketed index.
func (r *resolver) noIndex(p *pathPart) bool {
	if p.indexed {
		r.fail(*p, "%s cannot be indexed", p.name)
		return false
	}
	return true
}

// single returns the index of p (def when absent), rejecting ranges and
// out-of-range values.
func (r *resolver) single(p *pathPart, def, limit int) (int, bool) {
	if !p.indexed {
		return def, true
	}
	if p.ranged {
		r.fail(*p, "%s does not accept a range", p.name)
		return 0, false
	}
	if p.lo < 0 || p.lo >= limit {
		r.failIndex(p, limit)
		return 0, false
	}
	return p.lo, true
}

// required is single for parts that must carry an index.
func (r *resolver) required(p *pathPart, limit int) (int, bool) {
	if !p.indexed {
		r.missingIndex(p)
		return 0, false
	}
	return r.single(p, 0, limit)
}

// span returns the inclusive index range of p, which must be indexed.
func (r *resolver) span(p *pathPart, limit int) (int, int, bool) {
	if !p.indexed {
		r.missingIndex(p)
		return 0, 0, false
	}
	lo, hi := p.lo, p.lo
	if p.ranged {
		hi = p.hi
	}
	if lo > hi {
		r.fail(*p, "invalid range %d..%d", lo, hi)
		return 0, 0, false
	}
	if lo < 0 || hi >= limit {
		r.failIndex(p, limit)
		return 0, 0, false
	}
	return lo, hi, true
}

// missingIndex leaves the path incomplete when p is its last part, since
// the index may still follow.
func (r *resolver) missingIndex(p *pathPart) {
	if r.i == len(r.parts) {
		r.status = pathIncomplete
		return
	}
	r.fail(*p, "%s requires an index", p.name)
}

func (r *resolver) failIndex(p *pathPart, limit int) {
	r.status = pathInvalid
	r.msg = fmt.Sprintf("%s index out of range (limit %d)", p.name, limit)
	r.offset = p.indexPos
}

func (r *resolver) root() {
	p := r.next()
	if p == nil {
		return
	}
	if !r.noIndex(p) {
		return
	}
	switch p.name {
	case "fragment":
		if r.stage != ir.StageFragment {
			r.fail(*p, "fragment bindings are not available in vertex programs")
			return
		}
		r.fragment()
	case "vertex":
		if r.stage != ir.StageVertex {
			r.fail(*p, "vertex bindings are not available in fragment programs")
			return
		}
		r.vertex()
	case "result":
		if r.stage == ir.StageVertex {
			r.vertexResult()
		} else {
			r.fragmentResult()
		}
	case "program":
		r.program()
	case "state":
		r.state()
	default:
		r.fail(*p, "unknown binding %q", p.name)
	}
}

func (r *resolver) fragment() {
	p := r.next()
	if p == nil {
		return
	}
	switch p.name {
	case "color":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindFragmentColor, Secondary: r.colorSelector()})
		}
	case "texcoord":
		if n, ok := r.single(p, 0, ir.MaxTextureCoords); ok {
			r.emit(ir.Binding{Kind: ir.BindFragmentTexCoord, Index: n})
		}
	case "fogcoord":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindFragmentFogCoord})
		}
	case "position":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindFragmentPosition})
		}
	default:
		r.fail(*p, "unknown fragment attribute %q", p.name)
	}
}

// colorSelector consumes an optional .primary/.secondary suffix.
func (r *resolver) colorSelector() bool {
	switch r.peek() {
	case "primary":
		r.next()
	case "secondary":
		r.next()
		return true
	}
	return false
}

func (r *resolver) vertex() {
	p := r.next()
	if p == nil {
		return
	}
	switch p.name {
	case "position":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindVertexPosition})
		}
	case "weight":
		if n, ok := r.single(p, 0, 4); ok {
			r.emit(ir.Binding{Kind: ir.BindVertexWeight, Index: n})
		}
	case "normal":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindVertexNormal})
		}
	case "color":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindVertexColor, Secondary: r.colorSelector()})
		}
	case "fogcoord":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindVertexFogCoord})
		}
	case "texcoord":
		if n, ok := r.single(p, 0, ir.MaxTextureCoords); ok {
			r.emit(ir.Binding{Kind: ir.BindVertexTexCoord, Index: n})
		}
	case "matrixindex":
		if n, ok := r.single(p, 0, 4); ok {
			r.emit(ir.Binding{Kind: ir.BindVertexMatrixIndex, Index: n})
		}
	case "attrib":
		if n, ok := r.required(p, ir.MaxVertexAttribs); ok {
			r.emit(ir.Binding{Kind: ir.BindVertexAttrib, Index: n})
		}
	default:
		r.fail(*p, "unknown vertex attribute %q", p.name)
	}
}

func (r *resolver) fragmentResult() {
	p := r.next()
	if p == nil {
		return
	}
	switch p.name {
	case "color":
		n, ok := r.single(p, 0, ir.MaxDrawBuffers)
		if !ok {
			return
		}
		if n > 0 && !r.options.Has(ir.OptionDrawBuffers) {
			r.failIndex(p, 1)
			r.msg = "result.color index requires OPTION ARB_draw_buffers"
			return
		}
		r.emit(ir.Binding{Kind: ir.BindResultColor, Index: n})
	case "depth":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindResultDepth})
		}
	default:
		r.fail(*p, "unknown fragment result %q", p.name)
	}
}

func (r *resolver) vertexResult() {
	p := r.next()
	if p == nil {
		return
	}
	switch p.name {
	case "position":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindResultPosition})
		}
	case "color":
		if !r.noIndex(p) {
			return
		}
		b := ir.Binding{Kind: ir.BindResultColor}
		switch r.peek() {
		case "front":
			r.next()
		case "back":
			r.next()
			b.Face = ir.FaceBack
		}
		b.Secondary = r.colorSelector()
		r.emit(b)
	case "fogcoord":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindResultFogCoord})
		}
	case "pointsize":
		if r.noIndex(p) {
			r.emit(ir.Binding{Kind: ir.BindResultPointSize})
		}
	case "texcoord":
		if n, ok := r.single(p, 0, ir.MaxTextureCoords); ok {
			r.emit(ir.Binding{Kind: ir.BindResultTexCoord, Index: n})
		}
	default:
		r.fail(*p, "unknown vertex result %q", p.name)
	}
}

func (r *resolver) program() {
	p := r.next()
	if p == nil {
		return
	}
	var kind ir.BindingKind
	switch p.name {
	case "env":
		kind = ir.BindProgramEnv
	case "local":
		kind = ir.BindProgramLocal
	default:
		r.fail(*p, "unknown program parameter %q", p.name)
		return
	}
	lo, hi, ok := r.span(p, r.stage.ParameterLimit())
	if !ok {
		return
	}
	for n := lo; n <= hi; n++ {
		r.emit(ir.Binding{Kind: kind, Index: n})
	}
}

func (r *resolver) state() {
	p := r.next()
	if p == nil {
		return
	}
	switch p.name {
	case "matrix":
		if r.noIndex(p) {
			r.matrix()
		}
	case "material":
		if r.noIndex(p) {
			face := r.face()
			if prop := r.property("ambient", "diffuse", "specular", "emission", "shininess"); prop != "" {
				r.emit(ir.Binding{Kind: ir.BindStateMaterial, Face: face, Property: prop})
			}
		}
	case "light":
		n, ok := r.required(p, ir.MaxLights)
		if !ok {
			return
		}
		if prop := r.property("ambient", "diffuse", "specular", "position", "attenuation", "spotdirection", "half"); prop != "" {
			r.emit(ir.Binding{Kind: ir.BindStateLight, Index: n, Property: prop})
		}
	case "lightmodel":
		if !r.noIndex(p) {
			return
		}
		if r.peek() == "ambient" {
			r.next()
			r.emit(ir.Binding{Kind: ir.BindStateLightModel, Property: "ambient"})
			return
		}
		face := r.face()
		if prop := r.property("scenecolor"); prop != "" {
			r.emit(ir.Binding{Kind: ir.BindStateLightModel, Face: face, Property: prop})
		}
	case "lightprod":
		n, ok := r.required(p, ir.MaxLights)
		if !ok {
			return
		}
		face := r.face()
		if prop := r.property("ambient", "diffuse", "specular"); prop != "" {
			r.emit(ir.Binding{Kind: ir.BindStateLightProd, Index: n, Face: face, Property: prop})
		}
	case "texgen":
		n, ok := r.single(p, 0, ir.MaxTextureCoords)
		if !ok {
			return
		}
		plane := r.property("eye", "object")
		if plane == "" {
			return
		}
		if coord := r.property("s", "t", "r", "q"); coord != "" {
			r.emit(ir.Binding{Kind: ir.BindStateTexGen, Index: n, Property: plane, Coord: coord[0]})
		}
	case "fog":
		if r.noIndex(p) {
			if prop := r.property("color", "params"); prop != "" {
				r.emit(ir.Binding{Kind: ir.BindStateFog, Property: prop})
			}
		}
	case "clip":
		n, ok := r.required(p, ir.MaxClipPlanes)
		if ok && r.property("plane") != "" {
			r.emit(ir.Binding{Kind: ir.BindStateClipPlane, Index: n})
		}
	case "point":
		if r.noIndex(p) {
			if prop := r.property("size", "attenuation"); prop != "" {
				r.emit(ir.Binding{Kind: ir.BindStatePoint, Property: prop})
			}
		}
	case "texenv":
		if r.stage != ir.StageFragment {
			r.fail(*p, "state.texenv is not available in vertex programs")
			return
		}
		n, ok := r.single(p, 0, ir.MaxTextureUnits)
		if ok && r.property("color") != "" {
			r.emit(ir.Binding{Kind: ir.BindStateTexEnv, Index: n})
		}
	case "depth":
		if r.noIndex(p) && r.property("range") != "" {
			r.emit(ir.Binding{Kind: ir.BindStateDepthRange})
		}
	default:
		r.fail(*p, "unknown state %q", p.name)
	}
}

// face consumes an optional .front/.back selector.
func (r *resolver) face() ir.Face {
	switch r.peek() {
	case "front":
		r.next()
	case "back":
		r.next()
		return ir.FaceBack
	}
	return ir.FaceFront
}

// property consumes the next part, which must be one of names.
// It returns "" when the path ends early or the part is not allowed.
func (r *resolver) property(names ...string) string {
	p := r.next()
	if p == nil {
		return ""
	}
	for _, n := range names {
		if p.name == n {
			if !r.noIndex(p) {
				return ""
			}
			return n
		}
	}
	r.fail(*p, "unexpected binding member %q", p.name)
	return ""
}

func (r *resolver) matrix() {
	p := r.next()
	if p == nil {
		return
	}
	b := ir.Binding{Kind: ir.BindStateMatrix, Matrix: p.name}
	var ok bool
	switch p.name {
	case "projection", "mvp":
		ok = r.noIndex(p)
	case "modelview":
		b.Index, ok = r.single(p, 0, 32)
	case "texture":
		b.Index, ok = r.single(p, 0, ir.MaxTextureUnits)
	case "palette":
		b.Index, ok = r.required(p, 32)
	case "program":
		b.Index, ok = r.required(p, 32)
	default:
		r.fail(*p, "unknown matrix %q", p.name)
		return
	}
	if !ok {
		return
	}

	switch r.peek() {
	case "inverse", "transpose", "invtrans":
		m := r.next()
		if !r.noIndex(m) {
			return
		}
		b.Modifier = m.name
	}

	lo, hi := 0, 3
	if r.more() {
		row := r.next()
		if row.name != "row" {
			r.fail(*row, "unexpected matrix member %q", row.name)
			return
		}
		if lo, hi, ok = r.span(row, 4); !ok {
			return
		}
	}
	for n := lo; n <= hi; n++ {
		b.Row = n
		r.emit(b)
	}
}
