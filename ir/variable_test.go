package ir

import "testing"

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConstantKey(t *testing.T) {
	got := ConstantKey([4]string{"1.0", "0.5", "0.0", "1.0"})
	if got != "{1.0, 0.5, 0.0, 1.0}" {
		t.Errorf("ConstantKey = %q", got)
	}
}

func TestVariableName(t *testing.T) {
	v := &Variable{Key: "texture[0]"}
	if v.Name() != "texture[0]" {
		t.Errorf("implicit Name() = %q", v.Name())
	}
	v.Names = []string{"tex", "img"}
	if v.Name() != "tex" {
		t.Errorf("Name() = %q", v.Name())
	}
	v.Type = VarSampler
	if got := v.String(); got != "SAMPLER tex (img)" {
		t.Errorf("String() = %q", got)
	}
}

func TestVariableAccess(t *testing.T) {
	tests := []struct {
		typ      VarType
		readable bool
		writable bool
	}{
		{VarTemp, true, true},
		{VarAttrib, true, false},
		{VarOutput, false, true},
		{VarParam, true, false},
		{VarConst, true, false},
		{VarSampler, false, false},
		{VarAddress, false, false},
	}
	for _, tt := range tests {
		v := &Variable{Type: tt.typ}
		if v.Readable() != tt.readable {
			t.Errorf("%s readable = %v", tt.typ, v.Readable())
		}
		if v.Writable() != tt.writable {
			t.Errorf("%s writable = %v", tt.typ, v.Writable())
		}
	}
}

func TestLookupTarget(t *testing.T) {
	for _, target := range []TextureTarget{Target1D, Target2D, Target3D, TargetCube, TargetRect} {
		got, ok := LookupTarget(target.String())
		if !ok || got != target {
			t.Errorf("LookupTarget(%q) = %v, %v", target.String(), got, ok)
		}
	}
	if _, ok := LookupTarget("2d"); ok {
		t.Error("lowercase target accepted")
	}
}

func TestStage(t *testing.T) {
	if StageVertex.Header() != "!!ARBvp1.0" || StageFragment.Header() != "!!ARBfp1.0" {
		t.Error("wrong stage headers")
	}
	if StageVertex.ParameterLimit() != MaxVertexParameters || StageFragment.ParameterLimit() != MaxFragmentParameters {
		t.Error("wrong parameter limits")
	}
	if Stage(9).String() != "unknown" {
		t.Errorf("Stage(9) = %q", Stage(9).String())
	}
}

func TestOptionSet(t *testing.T) {
	var s OptionSet
	if s.Fog() != 0 {
		t.Error("empty set has fog")
	}
	s = s.With(OptionDrawBuffers).With(OptionFogExp2)
	if !s.Has(OptionDrawBuffers) || !s.Has(OptionFogExp2) || s.Has(OptionFogLinear) {
		t.Errorf("set = %b", s)
	}
	if s.Fog() != OptionFogExp2 {
		t.Errorf("Fog() = %v", s.Fog())
	}
}
