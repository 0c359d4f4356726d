package cmd

import (
	"github.com/spf13/cobra"
)

// appCmd represents the app command
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "manage the soc database",
	Long:  `Commands that set up the storage soc collects into (this command is not ran directly)`,
}

func init() {
	rootCmd.AddCommand(appCmd)
}
