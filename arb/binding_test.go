package arb

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/arbconv/ir"
)

// path builds binding parts from "a.b[1].c[0..2]" notation.
func path(t *testing.T, s string) []pathPart {
	t.Helper()
	var parts []pathPart
	for _, seg := range strings.Split(strings.ReplaceAll(s, "..", "~"), ".") {
		part := pathPart{name: seg}
		if open := strings.IndexByte(seg, '['); open >= 0 {
			part.name = seg[:open]
			part.indexed = true
			idx := strings.TrimSuffix(seg[open+1:], "]")
			lo, hi, ranged := strings.Cut(idx, "~")
			part.lo = atoi(t, lo)
			if ranged {
				part.ranged = true
				part.hi = atoi(t, hi)
			}
		}
		parts = append(parts, part)
	}
	return parts
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func resolveKeys(t *testing.T, stage ir.Stage, s string) ([]string, pathStatus) {
	t.Helper()
	bindings, status, _, _ := resolveBinding(stage, ir.OptionSet(0).With(ir.OptionDrawBuffers), path(t, s))
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = b.String()
	}
	return keys, status
}

func TestResolveCanonicalKeys(t *testing.T) {
	tests := []struct {
		stage ir.Stage
		path  string
		want  string
	}{
		{ir.StageFragment, "fragment.color", "fragment.color"},
		{ir.StageFragment, "fragment.color.primary", "fragment.color"},
		{ir.StageFragment, "fragment.color.secondary", "fragment.color.secondary"},
		{ir.StageFragment, "fragment.texcoord", "fragment.texcoord[0]"},
		{ir.StageFragment, "result.color[0]", "result.color"},
		{ir.StageFragment, "result.color[2]", "result.color[2]"},
		{ir.StageFragment, "state.texenv.color", "state.texenv[0].color"},
		{ir.StageVertex, "vertex.attrib[5]", "vertex.attrib[5]"},
		{ir.StageVertex, "result.color.front.primary", "result.color"},
		{ir.StageVertex, "result.color.back.secondary", "result.color.back.secondary"},
		{ir.StageVertex, "state.material.back.diffuse", "state.material.back.diffuse"},
		{ir.StageVertex, "state.material.front.diffuse", "state.material.diffuse"},
		{ir.StageVertex, "state.light[3].spotdirection", "state.light[3].spotdirection"},
		{ir.StageVertex, "state.lightmodel.ambient", "state.lightmodel.ambient"},
		{ir.StageVertex, "state.lightmodel.back.scenecolor", "state.lightmodel.back.scenecolor"},
		{ir.StageVertex, "state.lightprod[1].specular", "state.lightprod[1].specular"},
		{ir.StageVertex, "state.texgen[2].eye.q", "state.texgen[2].eye.q"},
		{ir.StageVertex, "state.fog.params", "state.fog.params"},
		{ir.StageVertex, "state.clip[5].plane", "state.clip[5].plane"},
		{ir.StageVertex, "state.point.size", "state.point.size"},
		{ir.StageVertex, "state.depth.range", "state.depth.range"},
		{ir.StageVertex, "state.matrix.mvp.row[2]", "state.matrix.mvp.row[2]"},
		{ir.StageVertex, "state.matrix.modelview[0].inverse.row[1]", "state.matrix.modelview.inverse.row[1]"},
		{ir.StageVertex, "program.local[7]", "program.local[7]"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			keys, status := resolveKeys(t, tt.stage, tt.path)
			require.Equal(t, pathComplete, status)
			assert.Equal(t, []string{tt.want}, keys)
		})
	}
}

func TestResolveMultiRow(t *testing.T) {
	keys, status := resolveKeys(t, ir.StageVertex, "state.matrix.projection.transpose")
	require.Equal(t, pathComplete, status)
	assert.Len(t, keys, 4)
	assert.Equal(t, "state.matrix.projection.transpose.row[3]", keys[3])

	keys, status = resolveKeys(t, ir.StageVertex, "state.matrix.texture[1].row[1..2]")
	require.Equal(t, pathComplete, status)
	assert.Equal(t, []string{"state.matrix.texture[1].row[1]", "state.matrix.texture[1].row[2]"}, keys)

	keys, status = resolveKeys(t, ir.StageVertex, "program.env[4..6]")
	require.Equal(t, pathComplete, status)
	assert.Equal(t, []string{"program.env[4]", "program.env[5]", "program.env[6]"}, keys)
}

func TestResolveIncomplete(t *testing.T) {
	for _, p := range []string{
		"state",
		"state.matrix",
		"state.matrix.mvp.row",
		"state.light",
		"state.light[0]",
		"state.texgen.eye",
		"program.env",
		"vertex.attrib",
		"fragment",
	} {
		t.Run(p, func(t *testing.T) {
			stage := ir.StageVertex
			if strings.HasPrefix(p, "fragment") {
				stage = ir.StageFragment
			}
			_, status := resolveKeys(t, stage, p)
			assert.Equal(t, pathIncomplete, status)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	tests := []struct {
		stage ir.Stage
		path  string
	}{
		{ir.StageVertex, "fragment.color"},
		{ir.StageFragment, "vertex.position"},
		{ir.StageFragment, "fragment.color.x"},
		{ir.StageFragment, "fragment.texcoord[8]"},
		{ir.StageFragment, "program.env[24]"},
		{ir.StageVertex, "state.light[8].ambient"},
		{ir.StageVertex, "state.clip[6].plane"},
		{ir.StageVertex, "state.matrix.mvp.row[4]"},
		{ir.StageVertex, "state.fog[0].color"},
		{ir.StageVertex, "state.texenv.color"},
		{ir.StageVertex, "result.depth"},
		{ir.StageFragment, "result.position"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, status := resolveKeys(t, tt.stage, tt.path)
			assert.Equal(t, pathInvalid, status)
		})
	}
}

func TestResolveDrawBuffersOption(t *testing.T) {
	parts := []pathPart{{name: "result"}, {name: "color", indexed: true, lo: 1, indexPos: 13}}
	_, status, msg, offset := resolveBinding(ir.StageFragment, 0, parts)
	assert.Equal(t, pathInvalid, status)
	assert.Contains(t, msg, "ARB_draw_buffers")
	assert.Equal(t, 13, offset)
}
