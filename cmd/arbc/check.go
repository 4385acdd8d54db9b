package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/arbconv"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check ARB programs without writing GLSL",
	Long:  "Parse and generate each program, printing a diagnostic for every failure and 'ok' otherwise.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	st := newStyler()
	failed := 0
	for _, path := range args {
		name, source, err := readSource(cmd, path)
		if err != nil {
			return err
		}
		stage, err := resolveStage(source)
		if err != nil {
			return err
		}
		if _, _, err := arbconv.TranslateWithOptions(source, stage, translateOptions(cmd.ErrOrStderr())); err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), st.diagnostic(name, err))
			failed++
			continue
		}
		fmt.Fprint(cmd.OutOrStdout(), st.ok(name))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d programs failed", failed, len(args))
	}
	return nil
}
