package glsl

import (
	"runtime"
	"testing"

	"github.com/gogpu/arbconv/arb"
	"github.com/gogpu/arbconv/ir"
)

// ---------------------------------------------------------------------------
// Test programs for GLSL backend benchmarks
// ---------------------------------------------------------------------------

const glslBenchSmall = `!!ARBfp1.0
MOV result.color, fragment.color;
END
`

const glslBenchMedium = `!!ARBfp1.0
OPTION ARB_fog_linear;
TEMP base, lit;
PARAM ambient = program.local[0];
TEX base, fragment.texcoord[0], texture[0], 2D;
MUL lit, fragment.color, base;
MAD lit.xyz, base, ambient, lit;
MOV result.color, lit;
END
`

const glslBenchLarge = `!!ARBvp1.0
ATTRIB pos = vertex.position;
ATTRIB nrm = vertex.normal;
PARAM mvp[4] = { state.matrix.mvp };
PARAM mv[4] = { state.matrix.modelview.invtrans };
PARAM light = state.light[0].position;
PARAM shine = { 0, 0, 0, 16 };
TEMP n, l, h, d, r;
ADDRESS A0;
DP4 result.position.x, mvp[0], pos;
DP4 result.position.y, mvp[1], pos;
DP4 result.position.z, mvp[2], pos;
DP4 result.position.w, mvp[3], pos;
DP3 n.x, mv[0], nrm;
DP3 n.y, mv[1], nrm;
DP3 n.z, mv[2], nrm;
DP3 r.w, n, n;
RSQ r.w, r.w;
MUL n, n, r.w;
DP3 d.x, n, light;
DP3 d.y, n, state.light[0].half;
MOV d.w, shine.w;
LIT r, d;
ARL A0.x, r.y;
MAD result.color, r.y, state.lightprod[0].diffuse, state.lightprod[0].ambient;
MOV result.texcoord[0], vertex.texcoord[0];
END
`

type glslBenchCase struct {
	name   string
	stage  ir.Stage
	source string
}

var glslBenchPrograms = []glslBenchCase{
	{"small", ir.StageFragment, glslBenchSmall},
	{"medium", ir.StageFragment, glslBenchMedium},
	{"large", ir.StageVertex, glslBenchLarge},
}

// glslParseToIR parses an ARB program.
func glslParseToIR(b *testing.B, stage ir.Stage, source string) *ir.Program {
	b.Helper()
	start, err := arb.LocateHeader(source, stage)
	if err != nil {
		b.Fatalf("header failed: %v", err)
	}
	prog, err := arb.Parse(source, start, stage, nil)
	if err != nil {
		b.Fatalf("parse failed: %v", err)
	}
	return prog
}

// ---------------------------------------------------------------------------
// GLSL emit benchmarks
// ---------------------------------------------------------------------------

// BenchmarkGLSLEmit benchmarks GLSL code generation (IR to string)
// for programs of different complexity.
func BenchmarkGLSLEmit(b *testing.B) {
	for _, bc := range glslBenchPrograms {
		b.Run(bc.name, func(b *testing.B) {
			prog := glslParseToIR(b, bc.stage, bc.source)
			opts := DefaultOptions()

			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			var result string
			for i := 0; i < b.N; i++ {
				var err error
				result, _, err = Compile(prog, opts)
				if err != nil {
					b.Fatalf("glsl emit failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}

// BenchmarkGLSLEndToEnd benchmarks parsing and generation together.
func BenchmarkGLSLEndToEnd(b *testing.B) {
	for _, bc := range glslBenchPrograms {
		b.Run(bc.name, func(b *testing.B) {
			opts := DefaultOptions()

			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			var result string
			for i := 0; i < b.N; i++ {
				prog := glslParseToIR(b, bc.stage, bc.source)
				var err error
				result, _, err = Compile(prog, opts)
				if err != nil {
					b.Fatalf("glsl emit failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}
