package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/arbconv"
)

const arbcVersion = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:           "arbc",
	Short:         "ARB assembly to GLSL translator",
	Long:          "arbc translates ARB_vertex_program and ARB_fragment_program assembly to GLSL 1.20 shaders.",
	Version:       arbcVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("stage", "s", "auto", "Program stage: vertex, fragment or auto (from the header)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Trace parsing and generation to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured diagnostics")
	rootCmd.PersistentFlags().Int("max-output", arbconv.DefaultOptions().MaxOutputSize, "Largest generated source in bytes (0 = unlimited)")

	_ = viper.BindPFlag("stage", rootCmd.PersistentFlags().Lookup("stage"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("max_output", rootCmd.PersistentFlags().Lookup("max-output"))
}

func initConfig() {
	viper.SetEnvPrefix("ARBC")
	viper.AutomaticEnv()
}

// resolveStage picks the stage from --stage, or from the program header
// when it is "auto". An undetectable header falls back to fragment so the
// translator reports the header error itself.
func resolveStage(source string) (arbconv.Stage, error) {
	switch name := strings.ToLower(viper.GetString("stage")); name {
	case "vertex", "vp":
		return arbconv.Vertex, nil
	case "fragment", "fp":
		return arbconv.Fragment, nil
	case "", "auto":
		if stage, ok := arbconv.DetectStage(source); ok {
			return stage, nil
		}
		return arbconv.Fragment, nil
	default:
		return 0, fmt.Errorf("unknown stage %q (want vertex, fragment or auto)", name)
	}
}

// translateOptions builds library options from the configuration.
func translateOptions(stderr io.Writer) arbconv.Options {
	opts := arbconv.DefaultOptions()
	opts.MaxOutputSize = viper.GetInt("max_output")
	if viper.GetBool("verbose") {
		opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opts
}

// readSource reads a program from path, or from stdin for "" and "-".
func readSource(cmd *cobra.Command, path string) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading program: %w", err)
	}
	return path, string(data), nil
}
