package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version     = "dev"
	plainOutput bool
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "tilecast",
	Short: "Compile declarative video compositions into ffmpeg filter graphs",
	Long: `Tilecast compiles declarative scene files into ffmpeg filter_complex
invocations and renders them.

A scene file describes how clips are arranged:
  - hstack blocks place clips side by side
  - vstack blocks place clips top to bottom
  - zstack blocks layer clips, with x/y offsets per layer

Use "tilecast graph" to inspect the generated ffmpeg command without
running it, and "tilecast render" to produce the output file.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Disable interactive output")
}
