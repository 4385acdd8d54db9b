package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/gogpu/arbconv"
)

const (
	historyFile = ".arbc_history"
	promptMain  = "arb> "
	promptCont  = "...> "
	banner      = "arbc " + arbcVersion + ": enter an ARB program ending in END, or :quit"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Translate programs typed interactively",
	Long:  "Read ARB programs line by line and print the GLSL translation when END is reached.",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	st := newStyler()
	for {
		source, ok := readProgram(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		trimmed := strings.TrimSpace(source)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit" || trimmed == ":q":
			return nil
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(out, "unknown command. Type :quit to exit.")
			continue
		}

		code, err := translateInteractive(cmd, source)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), st.diagnostic("<repl>", err))
			continue
		}
		fmt.Fprint(out, code)
	}
}

func translateInteractive(cmd *cobra.Command, source string) (string, error) {
	stage, err := resolveStage(source)
	if err != nil {
		return "", err
	}
	code, _, err := arbconv.TranslateWithOptions(source, stage, translateOptions(cmd.ErrOrStderr()))
	return code, err
}

// readProgram accumulates lines until they form a complete program or fail
// for a reason other than running out of input.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}

		b.WriteString(line)
		b.WriteByte('\n')

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether source fails only because input ended before
// END.
func incomplete(source string) bool {
	stage, ok := arbconv.DetectStage(source)
	if !ok {
		return false
	}
	_, err := arbconv.Translate(source, stage)
	var e *arbconv.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == arbconv.KindGrammar && e.Offset == len(source)
}
