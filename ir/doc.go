// Package ir defines the intermediate representation of an ARB program.
//
// The IR sits between the ARB assembly front end (package arb) and the GLSL
// generator (package glsl). It is deliberately flat:
//
//   - Variables: every register the program touches, in first-declaration
//     order. Named and implicit (inline) registers live in the same list.
//   - Instructions: the instruction stream in program order. Operands refer
//     to Variables by pointer; the SymbolTable owns the Variables.
//
// # Symbol Table
//
// SymbolTable pairs a name map with an insertion-ordered slice. Code
// generation iterates the slice, never the map, so declaration order in the
// output always matches declaration order in the source.
//
// # Pipeline
//
//	ARB text → arb.Lexer → arb.Parser → ir.Program → glsl.Compile → GLSL 1.20
package ir
