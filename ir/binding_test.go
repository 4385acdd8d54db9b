package ir

import "testing"

func TestBindingString(t *testing.T) {
	tests := []struct {
		b    Binding
		want string
	}{
		{Binding{Kind: BindFragmentColor}, "fragment.color"},
		{Binding{Kind: BindFragmentColor, Secondary: true}, "fragment.color.secondary"},
		{Binding{Kind: BindFragmentTexCoord, Index: 3}, "fragment.texcoord[3]"},
		{Binding{Kind: BindVertexAttrib, Index: 6}, "vertex.attrib[6]"},
		{Binding{Kind: BindResultColor}, "result.color"},
		{Binding{Kind: BindResultColor, Index: 2}, "result.color[2]"},
		{Binding{Kind: BindResultColor, Face: FaceBack, Secondary: true}, "result.color.back.secondary"},
		{Binding{Kind: BindProgramEnv, Index: 4}, "program.env[4]"},
		{Binding{Kind: BindStateMatrix, Matrix: "mvp", Row: 2}, "state.matrix.mvp.row[2]"},
		{Binding{Kind: BindStateMatrix, Matrix: "modelview", Modifier: "inverse", Row: 0}, "state.matrix.modelview.inverse.row[0]"},
		{Binding{Kind: BindStateMatrix, Matrix: "modelview", Index: 1, Row: 1}, "state.matrix.modelview[1].row[1]"},
		{Binding{Kind: BindStateMatrix, Matrix: "program", Index: 0, Row: 3}, "state.matrix.program[0].row[3]"},
		{Binding{Kind: BindStateMaterial, Face: FaceBack, Property: "diffuse"}, "state.material.back.diffuse"},
		{Binding{Kind: BindStateLight, Index: 1, Property: "position"}, "state.light[1].position"},
		{Binding{Kind: BindStateLightModel, Property: "ambient"}, "state.lightmodel.ambient"},
		{Binding{Kind: BindStateLightProd, Index: 0, Face: FaceBack, Property: "specular"}, "state.lightprod[0].back.specular"},
		{Binding{Kind: BindStateTexGen, Index: 2, Property: "eye", Coord: 's'}, "state.texgen[2].eye.s"},
		{Binding{Kind: BindStateFog, Property: "color"}, "state.fog.color"},
		{Binding{Kind: BindStateClipPlane, Index: 5}, "state.clip[5].plane"},
		{Binding{Kind: BindStateDepthRange}, "state.depth.range"},
		{Binding{}, "<none>"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBindingClass(t *testing.T) {
	tests := []struct {
		b                        Binding
		input, result, parameter bool
	}{
		{Binding{Kind: BindFragmentPosition}, true, false, false},
		{Binding{Kind: BindVertexAttrib}, true, false, false},
		{Binding{Kind: BindResultTexCoord}, false, true, false},
		{Binding{Kind: BindProgramLocal}, false, false, true},
		{Binding{Kind: BindStateDepthRange}, false, false, true},
	}
	for _, tt := range tests {
		if tt.b.IsInput() != tt.input || tt.b.IsResult() != tt.result || tt.b.IsParameter() != tt.parameter {
			t.Errorf("%s: input=%v result=%v parameter=%v", tt.b, tt.b.IsInput(), tt.b.IsResult(), tt.b.IsParameter())
		}
	}
}
