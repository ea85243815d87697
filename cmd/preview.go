package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilecast/tilecast/internal/config"
	"github.com/tilecast/tilecast/internal/deps"
	"github.com/tilecast/tilecast/internal/preview"
	"github.com/tilecast/tilecast/internal/probe"
	"github.com/tilecast/tilecast/internal/runner"
)

var (
	previewAt    float64
	previewVars  []string
	previewWidth int
	previewSave  string
)

var previewCmd = &cobra.Command{
	Use:   "preview <scene-file>",
	Short: "Render one frame of a composition in the terminal",
	Long: `Preview extracts a single frame of the composed output at the given
timestamp and displays it inline, using the terminal's image protocol
when one is available.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing := deps.MissingRequired(); len(missing) > 0 {
			return fmt.Errorf("missing required tools: %s (run: tilecast deps)", strings.Join(missing, ", "))
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		graph, err := compileScene(args[0], previewVars)
		if err != nil {
			return err
		}

		framePath := previewSave
		if framePath == "" {
			tmp, err := os.MkdirTemp("", "tilecast-preview-")
			if err != nil {
				return err
			}
			defer func() { _ = os.RemoveAll(tmp) }()
			framePath = filepath.Join(tmp, "frame.png")
		}

		// Without an explicit --width, size the preview from the first
		// input's probed dimensions.
		widthCells := previewWidth
		if widthCells <= 0 {
			widthCells = preview.AutoWidth(0)
			if w, _, err := probe.VideoSize(cfg.FFprobe(), graph.Inputs[0]); err == nil {
				widthCells = preview.AutoWidth(w)
			}
		}

		r := runner.New(cfg.FFmpeg())
		if err := r.ExtractFrame(cmd.Context(), graph.Args(), previewAt, framePath); err != nil {
			return fmt.Errorf("failed to extract frame: %w", err)
		}

		if previewSave != "" {
			fmt.Printf("Saved frame to %s\n", framePath)
			return nil
		}

		if err := preview.Show(os.Stdout, framePath, widthCells); err != nil {
			// No graphics protocol; keep the frame around for the user
			kept := filepath.Join(".", "tilecast-preview.png")
			if copyErr := os.Rename(framePath, kept); copyErr == nil {
				fmt.Printf("Terminal cannot display images; frame saved to %s\n", kept)
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().Float64Var(&previewAt, "at", 0, "Timestamp in seconds to extract")
	previewCmd.Flags().StringArrayVar(&previewVars, "set", nil, "Scene variable as key=value (repeatable)")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "Preview width in terminal columns (default: derived from the first input)")
	previewCmd.Flags().StringVar(&previewSave, "save", "", "Write the frame to this file instead of displaying it")
	rootCmd.AddCommand(previewCmd)
}
