package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pjt727/soc/data"
	"github.com/Pjt727/soc/data/testdb"
)

var reloadFlag bool

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Runs the up migrations",
	Long: `Runs the up migrations against DB_CONN and errors if the up migrations cannot work.
With --reload the schema is dropped first (only when LOCAL="true")`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reloadFlag {
			if err := testdb.ReloadDb(); err != nil {
				slog.Error("Could not reload database", "err", err)
				return err
			}
			slog.Info("Database has been reloaded")
			return nil
		}
		if err := data.Migrate(os.Getenv("DB_CONN")); err != nil {
			slog.Error("Could not run up migrations", "err", err)
			return err
		}
		slog.Info("Database has been synced with any up migrations")
		return nil
	},
}

func init() {
	appCmd.AddCommand(upCmd)
	upCmd.Flags().BoolVar(&reloadFlag, "reload", false, "drop and recreate the schema of a local database")
}
