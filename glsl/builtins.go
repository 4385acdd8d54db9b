// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/arbconv/ir"
)

// errUnsupported reports a binding that has no GLSL 1.20 counterpart.
type errUnsupported struct {
	binding ir.Binding
}

func (e errUnsupported) Error() string {
	return fmt.Sprintf("binding %s is not supported", e.binding)
}

// bindingExpr returns the GLSL expression that reads an input or parameter
// binding as a vec4.
func (w *Writer) bindingExpr(b ir.Binding) (string, error) {
	switch b.Kind {
	case ir.BindFragmentColor, ir.BindVertexColor:
		if b.Secondary {
			return "gl_SecondaryColor", nil
		}
		return "gl_Color", nil
	case ir.BindFragmentTexCoord:
		return fmt.Sprintf("gl_TexCoord[%d]", b.Index), nil
	case ir.BindFragmentFogCoord:
		return "vec4(gl_FogFragCoord, 0.0, 0.0, 1.0)", nil
	case ir.BindFragmentPosition:
		return "gl_FragCoord", nil

	case ir.BindVertexPosition:
		return "gl_Vertex", nil
	case ir.BindVertexNormal:
		return "vec4(gl_Normal, 1.0)", nil
	case ir.BindVertexFogCoord:
		return "vec4(gl_FogCoord, 0.0, 0.0, 1.0)", nil
	case ir.BindVertexTexCoord:
		return fmt.Sprintf("gl_MultiTexCoord%d", b.Index), nil
	case ir.BindVertexAttrib:
		return w.attribute(b.Index), nil

	case ir.BindProgramEnv:
		return fmt.Sprintf("%s[%d]", w.parameterArray(true), b.Index), nil
	case ir.BindProgramLocal:
		return fmt.Sprintf("%s[%d]", w.parameterArray(false), b.Index), nil

	case ir.BindStateMatrix:
		return matrixRow(b)
	case ir.BindStateMaterial:
		base := "gl_FrontMaterial"
		if b.Face == ir.FaceBack {
			base = "gl_BackMaterial"
		}
		if b.Property == "shininess" {
			return fmt.Sprintf("vec4(%s.shininess, 0.0, 0.0, 1.0)", base), nil
		}
		return base + "." + b.Property, nil
	case ir.BindStateLight:
		return lightExpr(b.Index, b.Property), nil
	case ir.BindStateLightModel:
		if b.Property == "ambient" {
			return "gl_LightModel.ambient", nil
		}
		if b.Face == ir.FaceBack {
			return "gl_BackLightModelProduct.sceneColor", nil
		}
		return "gl_FrontLightModelProduct.sceneColor", nil
	case ir.BindStateLightProd:
		base := "gl_FrontLightProduct"
		if b.Face == ir.FaceBack {
			base = "gl_BackLightProduct"
		}
		return fmt.Sprintf("%s[%d].%s", base, b.Index, b.Property), nil
	case ir.BindStateTexGen:
		plane := "gl_EyePlane"
		if b.Property == "object" {
			plane = "gl_ObjectPlane"
		}
		return fmt.Sprintf("%s%s[%d]", plane, strings.ToUpper(string(b.Coord)), b.Index), nil
	case ir.BindStateFog:
		if b.Property == "color" {
			return "gl_Fog.color", nil
		}
		return "vec4(gl_Fog.density, gl_Fog.start, gl_Fog.end, gl_Fog.scale)", nil
	case ir.BindStateClipPlane:
		return fmt.Sprintf("gl_ClipPlane[%d]", b.Index), nil
	case ir.BindStatePoint:
		if b.Property == "size" {
			return "vec4(gl_Point.size, gl_Point.sizeMin, gl_Point.sizeMax, gl_Point.fadeThresholdSize)", nil
		}
		return "vec4(gl_Point.distanceConstantAttenuation, gl_Point.distanceLinearAttenuation, " +
			"gl_Point.distanceQuadraticAttenuation, 1.0)", nil
	case ir.BindStateTexEnv:
		return fmt.Sprintf("gl_TextureEnvColor[%d]", b.Index), nil
	case ir.BindStateDepthRange:
		return "vec4(gl_DepthRange.near, gl_DepthRange.far, gl_DepthRange.diff, 1.0)", nil
	}
	return "", errUnsupported{binding: b}
}

func lightExpr(n int, property string) string {
	light := fmt.Sprintf("gl_LightSource[%d]", n)
	switch property {
	case "attenuation":
		return fmt.Sprintf("vec4(%[1]s.constantAttenuation, %[1]s.linearAttenuation, "+
			"%[1]s.quadraticAttenuation, %[1]s.spotExponent)", light)
	case "spotdirection":
		return fmt.Sprintf("vec4(%[1]s.spotDirection, %[1]s.spotCosCutoff)", light)
	case "half":
		return light + ".halfVector"
	}
	return light + "." + property
}

// matrixRow maps a matrix row to a column of the transposed built-in: GLSL
// matrices index columns, ARB bindings select rows.
func matrixRow(b ir.Binding) (string, error) {
	var base string
	switch b.Matrix {
	case "modelview":
		if b.Index > 0 {
			return "", errUnsupported{binding: b}
		}
		base = "gl_ModelViewMatrix"
	case "projection":
		base = "gl_ProjectionMatrix"
	case "mvp":
		base = "gl_ModelViewProjectionMatrix"
	case "texture":
		base = "gl_TextureMatrix"
	default:
		return "", errUnsupported{binding: b}
	}

	switch b.Modifier {
	case "":
		base += "Transpose"
	case "inverse":
		base += "InverseTranspose"
	case "invtrans":
		base += "Inverse"
	}
	if b.Matrix == "texture" {
		return fmt.Sprintf("%s[%d][%d]", base, b.Index, b.Row), nil
	}
	return fmt.Sprintf("%s[%d]", base, b.Row), nil
}

// resultTarget returns the built-in written for an output binding.
func (w *Writer) resultTarget(b ir.Binding) (string, error) {
	switch b.Kind {
	case ir.BindResultColor:
		if w.program.Stage == ir.StageFragment {
			if w.drawBuffers {
				return fmt.Sprintf("gl_FragData[%d]", b.Index), nil
			}
			return "gl_FragColor", nil
		}
		name := "gl_FrontColor"
		if b.Face == ir.FaceBack {
			name = "gl_BackColor"
		}
		if b.Secondary {
			name = strings.TrimSuffix(name, "Color") + "SecondaryColor"
		}
		return name, nil
	case ir.BindResultDepth:
		return "gl_FragDepth", nil
	case ir.BindResultPosition:
		return "gl_Position", nil
	case ir.BindResultFogCoord:
		return "gl_FogFragCoord", nil
	case ir.BindResultPointSize:
		return "gl_PointSize", nil
	case ir.BindResultTexCoord:
		return fmt.Sprintf("gl_TexCoord[%d]", b.Index), nil
	}
	return "", errUnsupported{binding: b}
}

// resultSwizzle returns the component selection written to a scalar result.
func resultSwizzle(b ir.Binding) string {
	switch b.Kind {
	case ir.BindResultDepth:
		return ".z"
	case ir.BindResultFogCoord, ir.BindResultPointSize:
		return ".x"
	}
	return ""
}

// fogFactor returns the blend factor expression of the fog option.
func fogFactor(o ir.Option) string {
	switch o {
	case ir.OptionFogExp:
		return "clamp(exp(-gl_Fog.density * gl_FogFragCoord), 0.0, 1.0)"
	case ir.OptionFogExp2:
		return "clamp(exp(-(gl_Fog.density * gl_FogFragCoord) * (gl_Fog.density * gl_FogFragCoord)), 0.0, 1.0)"
	case ir.OptionFogLinear:
		return "clamp((gl_Fog.end - gl_FogFragCoord) * gl_Fog.scale, 0.0, 1.0)"
	}
	return ""
}

// samplerType returns the GLSL sampler type of a texture target.
func samplerType(t ir.TextureTarget) string {
	switch t {
	case ir.Target1D:
		return "sampler1D"
	case ir.Target3D:
		return "sampler3D"
	case ir.TargetCube:
		return "samplerCube"
	case ir.TargetRect:
		return "sampler2DRect"
	}
	return "sampler2D"
}
