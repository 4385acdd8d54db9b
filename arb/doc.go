// Package arb implements the front end for ARB vertex and fragment program
// assembly (!!ARBvp1.0 and !!ARBfp1.0).
//
// The Lexer produces tokens lazily. The Parser is a state machine that
// consumes one token per Step and builds an ir.Program: declarations become
// Variables in the program's SymbolTable, instructions are appended in
// source order. Inline bindings and constants used by instructions become
// implicit Variables, shared by every use with the same canonical key.
//
//	start, err := arb.LocateHeader(src, ir.StageFragment)
//	prog, err := arb.Parse(src, start, ir.StageFragment, nil)
package arb
