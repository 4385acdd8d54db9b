// Command arbc translates ARB assembly programs to GLSL 1.20.
//
// Usage:
//
//	arbc translate [flags] [file]
//	arbc check [flags] file...
//	arbc repl
//
// Examples:
//
//	arbc translate shader.fp               # Translate to stdout
//	arbc translate -o shader.glsl shader.vp
//	cat shader.fp | arbc translate -       # Read from stdin
//	arbc check *.fp *.vp                   # Report diagnostics only
//	ARBC_STAGE=vertex arbc translate prog  # Force the stage
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
