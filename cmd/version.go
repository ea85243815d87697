package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tilecast version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tilecast %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
