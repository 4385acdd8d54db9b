// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "strings"

// glslKeywords contains the GLSL 1.20 reserved words, the names reserved
// for future use and the built-in functions generated code calls.
var glslKeywords = map[string]struct{}{
	// Basic types
	"void": {}, "bool": {}, "int": {}, "float": {},

	// Vector and matrix types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Sampler types
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler1DShadow": {}, "sampler2DShadow": {},
	"sampler2DRect": {}, "sampler2DRectShadow": {},

	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"centroid": {}, "invariant": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"if": {}, "else": {},
	"in": {}, "out": {}, "inout": {},
	"true": {}, "false": {},
	"discard": {}, "return": {},
	"struct": {},

	// Reserved for future use
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {}, "template": {}, "this": {},
	"packed": {}, "goto": {}, "switch": {}, "default": {},
	"inline": {}, "noinline": {}, "volatile": {}, "public": {}, "static": {}, "extern": {},
	"external": {}, "interface": {},
	"long": {}, "short": {}, "double": {}, "half": {}, "fixed": {}, "unsigned": {},
	"lowp": {}, "mediump": {}, "highp": {}, "precision": {},
	"input": {}, "output": {},
	"hvec2": {}, "hvec3": {}, "hvec4": {}, "dvec2": {}, "dvec3": {}, "dvec4": {},
	"fvec2": {}, "fvec3": {}, "fvec4": {},
	"sampler3DRect": {},
	"sizeof":        {}, "cast": {},
	"namespace": {}, "using": {},

	// Built-in functions
	"main":    {},
	"radians": {}, "degrees": {}, "sin": {}, "cos": {}, "tan": {},
	"asin": {}, "acos": {}, "atan": {},
	"pow": {}, "exp": {}, "log": {}, "exp2": {}, "log2": {}, "sqrt": {}, "inversesqrt": {},
	"abs": {}, "sign": {}, "floor": {}, "ceil": {}, "fract": {},
	"mod": {}, "min": {}, "max": {}, "clamp": {}, "mix": {}, "step": {}, "smoothstep": {},
	"length": {}, "distance": {}, "dot": {}, "cross": {}, "normalize": {}, "ftransform": {},
	"faceforward": {}, "reflect": {}, "refract": {},
	"matrixCompMult": {}, "outerProduct": {}, "transpose": {},
	"lessThan": {}, "lessThanEqual": {}, "greaterThan": {}, "greaterThanEqual": {},
	"equal": {}, "notEqual": {}, "any": {}, "all": {}, "not": {},
	"texture1D": {}, "texture1DProj": {}, "texture1DLod": {}, "texture1DProjLod": {},
	"texture2D": {}, "texture2DProj": {}, "texture2DLod": {}, "texture2DProjLod": {},
	"texture3D": {}, "texture3DProj": {}, "texture3DLod": {}, "texture3DProjLod": {},
	"textureCube": {}, "textureCubeLod": {},
	"texture2DRect": {}, "texture2DRectProj": {},
	"shadow1D": {}, "shadow2D": {}, "shadow1DProj": {}, "shadow2DProj": {},
	"dFdx": {}, "dFdy": {}, "fwidth": {},
	"noise1": {}, "noise2": {}, "noise3": {}, "noise4": {},
}

// isKeyword checks if a name is a GLSL keyword or reserved word.
func isKeyword(name string) bool {
	_, ok := glslKeywords[name]
	return ok
}

// escapeKeyword escapes a name if it conflicts with GLSL keywords.
// Returns the name with underscore prefix if it's reserved.
func escapeKeyword(name string) string {
	if name == "" {
		return "_unnamed"
	}
	if isKeyword(name) || isDigit(name[0]) {
		return "_" + name
	}
	// Names starting with "gl_" are reserved by GLSL, "arb_" by the generator.
	if strings.HasPrefix(name, "gl_") || strings.HasPrefix(name, generatedPrefix) {
		return "_" + name
	}
	return name
}

// sanitize maps an ARB identifier or binding key onto GLSL identifier
// characters. ARB allows '$' and binding keys contain punctuation; GLSL
// reserves identifiers containing "__".
func sanitize(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	lastUnderscore := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isAlnum(c) {
			sb.WriteByte(c)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
		}
		lastUnderscore = true
	}
	return strings.TrimSuffix(sb.String(), "_")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
