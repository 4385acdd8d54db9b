// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL 1.20 source from a parsed ARB program.
//
// The output is a single main function: every ARB variable becomes a local
// declared at the top, every instruction becomes one statement, and output
// variables are copied to the fixed-function built-ins (gl_FragColor,
// gl_Position, ...) at the end.
//
// # Basic Usage
//
//	source, info, err := glsl.Compile(program, glsl.DefaultOptions())
//
// # Globals
//
// Program environment and local parameters become uniform vec4 arrays,
// generic vertex attributes become attribute declarations, and each texture
// unit and target pair gets its own sampler uniform. Their names are listed
// in TranslationInfo so callers can bind them.
//
// # Reserved Words
//
// ARB identifiers that collide with GLSL reserved words, the gl_ prefix, or
// generated names are escaped by prefixing them with an underscore.
package glsl
