package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilecast/tilecast/internal/config"
	"github.com/tilecast/tilecast/internal/deps"
	"github.com/tilecast/tilecast/internal/filtergraph"
	"github.com/tilecast/tilecast/internal/notify"
	"github.com/tilecast/tilecast/internal/probe"
	"github.com/tilecast/tilecast/internal/runner"
	"github.com/tilecast/tilecast/internal/scene"
	"github.com/tilecast/tilecast/internal/tui"
)

var (
	renderOutput string
	renderVars   []string
)

var renderCmd = &cobra.Command{
	Use:   "render <scene-file>",
	Short: "Render a scene file to a video",
	Long: `Render compiles the scene file into an ffmpeg filter graph and runs
ffmpeg to produce the output file.

Scene variables referenced as var.<name> are supplied with --set:

  tilecast render demo.tc.hcl --set margin=24 -o demo.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing := deps.MissingRequired(); len(missing) > 0 {
			return fmt.Errorf("missing required tools: %s (run: tilecast deps)", strings.Join(missing, ", "))
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sceneFile := args[0]
		graph, err := compileScene(sceneFile, renderVars)
		if err != nil {
			return err
		}

		outputFile := renderOutput
		if outputFile == "" {
			if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(sceneFile), filepath.Ext(sceneFile))
			base = strings.TrimSuffix(base, ".tc")
			outputFile = filepath.Join(cfg.OutputDir, base+".mp4")
		}

		// The output runs as long as the longest input. Unprobeable
		// inputs are skipped; a zero total just disables percentages.
		var durationUs int64
		for _, in := range graph.Inputs {
			meta, err := probe.Video(cfg.FFprobe(), in)
			if err != nil {
				continue
			}
			if d := meta.DurationUs(); d > durationUs {
				durationUs = d
			}
		}

		if cfg.Notifications {
			_ = notify.RenderStarted(filepath.Base(sceneFile))
		}

		r := runner.New(cfg.FFmpeg())

		work := func(ctx context.Context, onPercent func(float64)) error {
			r.SetPercentCallback(onPercent)
			return r.Render(ctx, graph.Args(), cfg.Encode, outputFile, durationUs)
		}

		var renderErr error
		if plainOutput {
			fmt.Printf("Rendering %s → %s\n", sceneFile, outputFile)
			renderErr = work(cmd.Context(), func(p float64) {
				fmt.Printf("\r%3.0f%%", p)
			})
			fmt.Println()
		} else {
			renderErr = tui.RunRender(sceneFile, outputFile, work)
		}

		if renderErr != nil {
			if cfg.Notifications {
				_ = notify.RenderFailed(filepath.Base(sceneFile))
			}
			return renderErr
		}

		if cfg.Notifications {
			_ = notify.RenderComplete(filepath.Base(outputFile))
		}
		fmt.Printf("Saved %s\n", outputFile)
		return nil
	},
}

// compileScene loads a scene file with the given key=value variables and
// compiles it into a filter graph.
func compileScene(sceneFile string, varPairs []string) (*filtergraph.Graph, error) {
	vars, err := scene.ParseVars(varPairs)
	if err != nil {
		return nil, err
	}

	tree, err := scene.LoadFile(sceneFile, vars)
	if err != nil {
		return nil, err
	}

	graph, err := filtergraph.Compile(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", sceneFile, err)
	}
	return graph, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: <scene name>.mp4 in the configured output directory)")
	renderCmd.Flags().StringArrayVar(&renderVars, "set", nil, "Scene variable as key=value (repeatable)")
	rootCmd.AddCommand(renderCmd)
}
