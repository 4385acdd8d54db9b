package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/arbconv"
)

var translateCmd = &cobra.Command{
	Use:   "translate [file|-]",
	Short: "Translate an ARB program to GLSL",
	Long:  "Translate an ARB vertex or fragment program to GLSL 1.20. Reads stdin when no file or '-' is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	translateCmd.Flags().Bool("info", false, "Print generated names and globals to stderr")

	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	showInfo, _ := cmd.Flags().GetBool("info")

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	name, source, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	stage, err := resolveStage(source)
	if err != nil {
		return err
	}

	code, info, err := arbconv.TranslateWithOptions(source, stage, translateOptions(cmd.ErrOrStderr()))
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), newStyler().diagnostic(name, err))
		return fmt.Errorf("%s: translation failed", name)
	}

	if showInfo {
		stderr := cmd.ErrOrStderr()
		for _, ext := range info.UsedExtensions {
			fmt.Fprintf(stderr, "extension %s\n", ext)
		}
		for _, u := range info.Uniforms {
			fmt.Fprintf(stderr, "uniform %s\n", u)
		}
		for _, s := range info.Samplers {
			fmt.Fprintf(stderr, "sampler %s unit=%d target=%s\n", s.Name, s.Unit, s.Target)
		}
		for _, a := range info.Attributes {
			fmt.Fprintf(stderr, "attribute %s index=%d\n", a.Name, a.Index)
		}
	}

	if output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), code)
		return err
	}
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
