// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/arbconv/ir"
)

func TestBindingExpr(t *testing.T) {
	tests := []struct {
		binding ir.Binding
		want    string
	}{
		{ir.Binding{Kind: ir.BindFragmentColor}, "gl_Color"},
		{ir.Binding{Kind: ir.BindFragmentColor, Secondary: true}, "gl_SecondaryColor"},
		{ir.Binding{Kind: ir.BindFragmentTexCoord, Index: 3}, "gl_TexCoord[3]"},
		{ir.Binding{Kind: ir.BindFragmentFogCoord}, "vec4(gl_FogFragCoord, 0.0, 0.0, 1.0)"},
		{ir.Binding{Kind: ir.BindFragmentPosition}, "gl_FragCoord"},
		{ir.Binding{Kind: ir.BindVertexPosition}, "gl_Vertex"},
		{ir.Binding{Kind: ir.BindVertexNormal}, "vec4(gl_Normal, 1.0)"},
		{ir.Binding{Kind: ir.BindVertexTexCoord, Index: 2}, "gl_MultiTexCoord2"},
		{ir.Binding{Kind: ir.BindVertexAttrib, Index: 7}, "arb_Attrib7"},
		{ir.Binding{Kind: ir.BindProgramEnv, Index: 4}, "arb_VertexEnv[4]"},
		{ir.Binding{Kind: ir.BindProgramLocal, Index: 0}, "arb_VertexLocal[0]"},
		{ir.Binding{Kind: ir.BindStateMaterial, Property: "diffuse"}, "gl_FrontMaterial.diffuse"},
		{ir.Binding{Kind: ir.BindStateMaterial, Face: ir.FaceBack, Property: "shininess"},
			"vec4(gl_BackMaterial.shininess, 0.0, 0.0, 1.0)"},
		{ir.Binding{Kind: ir.BindStateLight, Index: 1, Property: "position"}, "gl_LightSource[1].position"},
		{ir.Binding{Kind: ir.BindStateLight, Index: 0, Property: "half"}, "gl_LightSource[0].halfVector"},
		{ir.Binding{Kind: ir.BindStateLight, Index: 2, Property: "spotdirection"},
			"vec4(gl_LightSource[2].spotDirection, gl_LightSource[2].spotCosCutoff)"},
		{ir.Binding{Kind: ir.BindStateLightModel, Property: "ambient"}, "gl_LightModel.ambient"},
		{ir.Binding{Kind: ir.BindStateLightModel, Face: ir.FaceBack, Property: "scenecolor"},
			"gl_BackLightModelProduct.sceneColor"},
		{ir.Binding{Kind: ir.BindStateLightProd, Index: 1, Property: "specular"}, "gl_FrontLightProduct[1].specular"},
		{ir.Binding{Kind: ir.BindStateTexGen, Index: 1, Property: "eye", Coord: 's'}, "gl_EyePlaneS[1]"},
		{ir.Binding{Kind: ir.BindStateTexGen, Index: 0, Property: "object", Coord: 'q'}, "gl_ObjectPlaneQ[0]"},
		{ir.Binding{Kind: ir.BindStateFog, Property: "color"}, "gl_Fog.color"},
		{ir.Binding{Kind: ir.BindStateClipPlane, Index: 5}, "gl_ClipPlane[5]"},
		{ir.Binding{Kind: ir.BindStateDepthRange}, "vec4(gl_DepthRange.near, gl_DepthRange.far, gl_DepthRange.diff, 1.0)"},
		{ir.Binding{Kind: ir.BindStateMatrix, Matrix: "mvp", Row: 2}, "gl_ModelViewProjectionMatrixTranspose[2]"},
		{ir.Binding{Kind: ir.BindStateMatrix, Matrix: "projection", Modifier: "inverse", Row: 0},
			"gl_ProjectionMatrixInverseTranspose[0]"},
		{ir.Binding{Kind: ir.BindStateMatrix, Matrix: "modelview", Modifier: "transpose", Row: 3}, "gl_ModelViewMatrix[3]"},
		{ir.Binding{Kind: ir.BindStateMatrix, Matrix: "modelview", Modifier: "invtrans", Row: 1}, "gl_ModelViewMatrixInverse[1]"},
		{ir.Binding{Kind: ir.BindStateMatrix, Matrix: "texture", Index: 2, Row: 1}, "gl_TextureMatrixTranspose[2][1]"},
	}

	w := newWriter(ir.NewProgram(ir.StageVertex), &Options{})
	for _, tt := range tests {
		t.Run(tt.binding.String(), func(t *testing.T) {
			got, err := w.bindingExpr(tt.binding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindingExprUnsupported(t *testing.T) {
	w := newWriter(ir.NewProgram(ir.StageVertex), &Options{})
	for _, b := range []ir.Binding{
		{Kind: ir.BindVertexWeight},
		{Kind: ir.BindVertexMatrixIndex},
		{Kind: ir.BindStateMatrix, Matrix: "palette", Index: 1},
		{Kind: ir.BindStateMatrix, Matrix: "program", Index: 0},
		{Kind: ir.BindStateMatrix, Matrix: "modelview", Index: 2},
	} {
		t.Run(b.String(), func(t *testing.T) {
			_, err := w.bindingExpr(b)
			var unsupported errUnsupported
			require.True(t, errors.As(err, &unsupported))
			assert.Contains(t, err.Error(), b.String())
		})
	}
}

func TestResultTarget(t *testing.T) {
	frag := newWriter(ir.NewProgram(ir.StageFragment), &Options{})
	vert := newWriter(ir.NewProgram(ir.StageVertex), &Options{})

	tests := []struct {
		w       *Writer
		binding ir.Binding
		want    string
	}{
		{frag, ir.Binding{Kind: ir.BindResultColor}, "gl_FragColor"},
		{frag, ir.Binding{Kind: ir.BindResultDepth}, "gl_FragDepth"},
		{vert, ir.Binding{Kind: ir.BindResultColor}, "gl_FrontColor"},
		{vert, ir.Binding{Kind: ir.BindResultColor, Face: ir.FaceBack}, "gl_BackColor"},
		{vert, ir.Binding{Kind: ir.BindResultColor, Secondary: true}, "gl_FrontSecondaryColor"},
		{vert, ir.Binding{Kind: ir.BindResultColor, Face: ir.FaceBack, Secondary: true}, "gl_BackSecondaryColor"},
		{vert, ir.Binding{Kind: ir.BindResultPosition}, "gl_Position"},
		{vert, ir.Binding{Kind: ir.BindResultFogCoord}, "gl_FogFragCoord"},
		{vert, ir.Binding{Kind: ir.BindResultPointSize}, "gl_PointSize"},
		{vert, ir.Binding{Kind: ir.BindResultTexCoord, Index: 6}, "gl_TexCoord[6]"},
	}

	for _, tt := range tests {
		got, err := tt.w.resultTarget(tt.binding)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	frag.drawBuffers = true
	got, err := frag.resultTarget(ir.Binding{Kind: ir.BindResultColor, Index: 3})
	require.NoError(t, err)
	assert.Equal(t, "gl_FragData[3]", got)
}

func TestSamplerType(t *testing.T) {
	assert.Equal(t, "sampler1D", samplerType(ir.Target1D))
	assert.Equal(t, "sampler2D", samplerType(ir.Target2D))
	assert.Equal(t, "sampler3D", samplerType(ir.Target3D))
	assert.Equal(t, "samplerCube", samplerType(ir.TargetCube))
	assert.Equal(t, "sampler2DRect", samplerType(ir.TargetRect))
}

func TestEscapeKeyword(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"color", "color"},
		{"float", "_float"},
		{"discard", "_discard"},
		{"texture2D", "_texture2D"},
		{"gl_Position", "_gl_Position"},
		{"arb_const", "_arb_const"},
		{"9", "_9"},
		{"1st", "_1st"},
		{"", "_unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeKeyword(tt.name))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"plain", "plain"},
		{"a$b", "a_b"},
		{"_lead", "lead"},
		{"trail_", "trail"},
		{"a__b", "a_b"},
		{"state.matrix.mvp.row[0]", "state_matrix_mvp_row_0"},
		{"result.color[2]", "result_color_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.name))
		})
	}
}

func TestNamerUnique(t *testing.T) {
	n := newNamer()
	n.reserve("arb_Attrib0")
	assert.Equal(t, "arb_Attrib0_1", n.generated("arb_Attrib0"))
	assert.Equal(t, "x", n.call("x"))
	assert.Equal(t, "x_2", n.call("x"))
	assert.Equal(t, "_int", n.call("int"))
}
