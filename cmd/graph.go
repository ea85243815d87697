package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tilecast/tilecast/internal/config"
	"github.com/tilecast/tilecast/internal/runner"
)

var (
	graphVars    []string
	graphCommand bool
)

var graphCmd = &cobra.Command{
	Use:   "graph <scene-file>",
	Short: "Show the compiled filter graph without rendering",
	Long: `Graph compiles the scene file and prints the resulting ffmpeg inputs,
filter expressions, and output mapping. Nothing is executed.

Use --command to print the full ffmpeg command line instead of the
annotated breakdown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := compileScene(args[0], graphVars)
		if err != nil {
			return err
		}

		if graphCommand {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			full := append([]string{cfg.FFmpeg(), "-y"}, graph.Args()...)
			full = append(full, runner.EncodeArgs(cfg.Encode)...)
			full = append(full, "-an", "<output.mp4>")
			fmt.Println(shellJoin(full))
			return nil
		}

		bold := lipgloss.NewStyle().Bold(true)
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4"))

		fmt.Println()
		fmt.Println(bold.Render("Inputs:"))
		for i, in := range graph.Inputs {
			fmt.Printf("  %s %s\n", cyan.Render(fmt.Sprintf("[%d]", i)), in)
		}

		fmt.Println()
		fmt.Println(bold.Render("Filters:"))
		if len(graph.Filters) == 0 {
			fmt.Printf("  %s\n", gray.Render("(none - single clip passes through)"))
		}
		for _, f := range graph.Filters {
			fmt.Printf("  %s\n", f)
		}

		fmt.Println()
		fmt.Printf("%s %s\n", bold.Render("Output:"), cyan.Render(graph.Output.Bracket()))
		fmt.Println()
		return nil
	},
}

// shellJoin renders an argument list for display, quoting tokens that
// contain characters the shell would split on. Display only; arguments
// are always passed to ffmpeg unquoted via exec.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t;[]()'\"*?$&|<>") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}

func init() {
	graphCmd.Flags().StringArrayVar(&graphVars, "set", nil, "Scene variable as key=value (repeatable)")
	graphCmd.Flags().BoolVar(&graphCommand, "command", false, "Print the full ffmpeg command line")
	rootCmd.AddCommand(graphCmd)
}
