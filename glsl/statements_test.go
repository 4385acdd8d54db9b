// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/arbconv/ir"
)

const (
	fragmentPrelude = "!!ARBfp1.0\nTEMP a, b, c, r;\n"
	vertexPrelude   = "!!ARBvp1.0\nTEMP a, b, c, r;\nADDRESS A0;\nPARAM p[4] = { program.env[0..3] };\n"
)

func TestWriteInstruction(t *testing.T) {
	tests := []struct {
		name  string
		stage ir.Stage
		inst  string
		want  string
	}{
		// Vector arithmetic
		{"abs", ir.StageFragment, "ABS r, a;", "r = abs(a);"},
		{"add", ir.StageFragment, "ADD r, a, b;", "r = a + b;"},
		{"sub", ir.StageFragment, "SUB r, a, b;", "r = a - b;"},
		{"mul", ir.StageFragment, "MUL r, a, b;", "r = a * b;"},
		{"mad", ir.StageFragment, "MAD r, a, b, c;", "r = a * b + c;"},
		{"mov", ir.StageFragment, "MOV r, a;", "r = a;"},
		{"flr", ir.StageFragment, "FLR r, a;", "r = floor(a);"},
		{"frc", ir.StageFragment, "FRC r, a;", "r = fract(a);"},
		{"max", ir.StageFragment, "MAX r, a, b;", "r = max(a, b);"},
		{"min", ir.StageFragment, "MIN r, a, b;", "r = min(a, b);"},
		{"sge", ir.StageFragment, "SGE r, a, b;", "r = vec4(greaterThanEqual(a, b));"},
		{"slt", ir.StageFragment, "SLT r, a, b;", "r = vec4(lessThan(a, b));"},
		{"dp3", ir.StageFragment, "DP3 r, a, b;", "r = vec4(dot(vec3(a), vec3(b)));"},
		{"dp4", ir.StageFragment, "DP4 r, a, b;", "r = vec4(dot(a, b));"},
		{"dph", ir.StageFragment, "DPH r, a, b;", "r = vec4(dot(vec3(a), vec3(b)) + b.w);"},
		{"dst", ir.StageFragment, "DST r, a, b;", "r = vec4(1.0, a.y * b.y, a.z, b.w);"},
		{"lit", ir.StageFragment, "LIT r, a;",
			"r = vec4(1.0, max(a.x, 0.0), (a.x > 0.0) ? pow(max(a.y, 0.0), clamp(a.w, -128.0, 128.0)) : 0.0, 1.0);"},
		{"lrp", ir.StageFragment, "LRP r, a, b, c;", "r = mix(c, b, a);"},
		{"cmp", ir.StageFragment, "CMP r, a, b, c;", "r = mix(c, b, vec4(lessThan(a, vec4(0.0))));"},
		{"xpd", ir.StageFragment, "XPD r, a, b;", "r = vec4(cross(vec3(a), vec3(b)), 1.0);"},

		// Scalar arithmetic
		{"rcp", ir.StageFragment, "RCP r, a.x;", "r = vec4(1.0 / a.x);"},
		{"rsq", ir.StageFragment, "RSQ r, -a.y;", "r = vec4(inversesqrt(abs(-a.y)));"},
		{"ex2", ir.StageFragment, "EX2 r, a.z;", "r = vec4(exp2(a.z));"},
		{"lg2", ir.StageFragment, "LG2 r, a.w;", "r = vec4(log2(a.w));"},
		{"pow", ir.StageFragment, "POW r, a.x, b.y;", "r = vec4(pow(a.x, b.y));"},
		{"sin", ir.StageFragment, "SIN r, a.x;", "r = vec4(sin(a.x));"},
		{"cos", ir.StageFragment, "COS r, a.x;", "r = vec4(cos(a.x));"},
		{"scs", ir.StageFragment, "SCS r.xy, a.x;", "r.xy = (vec4(cos(a.x), sin(a.x), 0.0, 0.0)).xy;"},
		{"rcp constant", ir.StageFragment, "RCP r, 2.0;", "r = vec4(1.0 / arb_const.x);"},

		// Operand modifiers
		{"swizzle", ir.StageFragment, "MOV r, a.wzyx;", "r = a.wzyx;"},
		{"color swizzle", ir.StageFragment, "MOV r, a.bgra;", "r = a.zyxw;"},
		{"replicate", ir.StageFragment, "MOV r, a.y;", "r = a.yyyy;"},
		{"negate", ir.StageFragment, "ADD r, a, -b;", "r = a + -b;"},
		{"negate swizzle", ir.StageFragment, "MOV r, -a.xxyy;", "r = -a.xxyy;"},
		{"mask", ir.StageFragment, "ADD r.xw, a, b;", "r.xw = (a + b).xw;"},
		{"saturate", ir.StageFragment, "MOV_SAT r, a;", "r = clamp(a, 0.0, 1.0);"},
		{"saturate mask", ir.StageFragment, "MUL_SAT r.z, a, b;", "r.z = (clamp(a * b, 0.0, 1.0)).z;"},

		// Extended swizzle
		{"swz", ir.StageFragment, "SWZ r, a, 0, 1, -x, y;", "r = vec4(0.0, 1.0, -a.x, a.y);"},
		{"swz negated source", ir.StageFragment, "SWZ r, -a, x, -y, 1, 0;", "r = vec4(-a.x, a.y, -1.0, 0.0);"},

		// Fragment only
		{"kil", ir.StageFragment, "KIL a;", "if (any(lessThan(a, vec4(0.0)))) discard;"},
		{"kil negated", ir.StageFragment, "KIL -a.x;", "if (any(lessThan(-a.xxxx, vec4(0.0)))) discard;"},

		// Texture sampling
		{"tex 1D", ir.StageFragment, "TEX r, a, texture[0], 1D;", "r = texture1D(arb_Sampler1D_0, a.x);"},
		{"tex 2D", ir.StageFragment, "TEX r, a, texture[0], 2D;", "r = texture2D(arb_Sampler2D_0, vec2(a));"},
		{"tex 3D", ir.StageFragment, "TEX r, a, texture[1], 3D;", "r = texture3D(arb_Sampler3D_1, vec3(a));"},
		{"tex cube", ir.StageFragment, "TEX r, a, texture[2], CUBE;", "r = textureCube(arb_SamplerCUBE_2, vec3(a));"},
		{"tex rect", ir.StageFragment, "TEX r, a, texture[0], RECT;", "r = texture2DRect(arb_SamplerRECT_0, vec2(a));"},
		{"txp 1D", ir.StageFragment, "TXP r, a, texture[0], 1D;", "r = texture1DProj(arb_Sampler1D_0, a);"},
		{"txp 2D", ir.StageFragment, "TXP r, a, texture[0], 2D;", "r = texture2DProj(arb_Sampler2D_0, a);"},
		{"txp 3D", ir.StageFragment, "TXP r, a, texture[0], 3D;", "r = texture3DProj(arb_Sampler3D_0, a);"},
		{"txp cube", ir.StageFragment, "TXP r, a, texture[1], CUBE;", "r = textureCube(arb_SamplerCUBE_1, vec3(a) / a.w);"},
		{"txp rect", ir.StageFragment, "TXP r, a, texture[0], RECT;", "r = texture2DRectProj(arb_SamplerRECT_0, a);"},
		{"txb 1D", ir.StageFragment, "TXB r, a, texture[2], 1D;", "r = texture1D(arb_Sampler1D_2, a.x, a.w);"},
		{"txb 2D", ir.StageFragment, "TXB r, a, texture[0], 2D;", "r = texture2D(arb_Sampler2D_0, vec2(a), a.w);"},
		{"txb 3D", ir.StageFragment, "TXB r, a, texture[0], 3D;", "r = texture3D(arb_Sampler3D_0, vec3(a), a.w);"},
		{"txb cube", ir.StageFragment, "TXB r, a, texture[0], CUBE;", "r = textureCube(arb_SamplerCUBE_0, vec3(a), a.w);"},
		{"tex swizzled coord", ir.StageFragment, "TEX r, a.zyxw, texture[0], 2D;", "r = texture2D(arb_Sampler2D_0, vec2(a.zyxw));"},

		// Vertex only
		{"arl", ir.StageVertex, "ARL A0.x, a.y;", "A0.x = int(floor(a.y));"},
		{"exp", ir.StageVertex, "EXP r, a.x;", "r = vec4(exp2(floor(a.x)), fract(a.x), exp2(a.x), 1.0);"},
		{"log", ir.StageVertex, "LOG r, a.x;",
			"r = vec4(floor(log2(abs(a.x))), abs(a.x) / exp2(floor(log2(abs(a.x)))), log2(abs(a.x)), 1.0);"},
		{"absolute index", ir.StageVertex, "MOV r, p[1];", "r = p[1];"},
		{"relative index", ir.StageVertex, "MOV r, p[A0.x];", "r = p[A0.x];"},
		{"relative positive offset", ir.StageVertex, "MOV r, p[A0.x + 2];", "r = p[A0.x + 2];"},
		{"relative negative offset", ir.StageVertex, "MOV r, -p[A0.x - 1].w;", "r = -p[A0.x - 1].wwww;"},
		{"dp4 indexed", ir.StageVertex, "DP4 r.x, p[0], a;", "r.x = (vec4(dot(p[0], a))).x;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prelude := fragmentPrelude
			if tt.stage == ir.StageVertex {
				prelude = vertexPrelude
			}
			out, _ := mustCompile(t, tt.stage, prelude+tt.inst+"\nEND\n")
			assert.Contains(t, out, "\t"+tt.want+"\n")
		})
	}
}

func TestWriteInstructionOrder(t *testing.T) {
	src := fragmentPrelude + "MOV a, fragment.color;\nADD b, a, a;\nMUL r, b, a;\nMOV result.color, r;\nEND\n"
	out, _ := mustCompile(t, ir.StageFragment, src)
	assert.Contains(t, out, "\ta = arb_fragment_color;\n\tb = a + a;\n\tr = b * a;\n\tarb_result_color = r;\n\t\n")
}
