package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tilecast/tilecast/internal/config"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long: `Config prints the settings tilecast renders with and where they are
stored.

Use --init to write the active settings to the config file so they can
be edited there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := config.ConfigPath()

		if configInit {
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		}

		bold := lipgloss.NewStyle().Bold(true)
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))

		fmt.Println()
		fmt.Println(bold.Render("Settings:"))
		fmt.Printf("  Output directory:  %s\n", cfg.OutputDir)
		fmt.Printf("  FFmpeg:            %s\n", cfg.FFmpeg())
		fmt.Printf("  FFprobe:           %s\n", cfg.FFprobe())
		fmt.Printf("  Notifications:     %t\n", cfg.Notifications)

		fmt.Println()
		fmt.Println(bold.Render("Encoding:"))
		fmt.Printf("  Codec:             %s\n", cfg.Encode.VideoCodec)
		fmt.Printf("  Preset:            %s\n", cfg.Encode.Preset)
		fmt.Printf("  CRF:               %d\n", cfg.Encode.CRF)
		fmt.Printf("  FPS:               %d\n", cfg.Encode.FPS)
		fmt.Printf("  Pixel format:      %s\n", cfg.Encode.PixelFormat)

		fmt.Println()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(gray.Render(fmt.Sprintf("Config file: %s (not created; run tilecast config --init)", path)))
		} else {
			fmt.Println(gray.Render(fmt.Sprintf("Config file: %s", path)))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the active settings to the config file")
	rootCmd.AddCommand(configCmd)
}
