package cmd

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pjt727/soc/collection"
	"github.com/Pjt727/soc/data/pagearchive"
)

var runFlag string

// reparseCmd represents the reparse command
var reparseCmd = &cobra.Command{
	Use:   "reparse",
	Short: "Parses the archived pages of an earlier run again",
	Long: `Reads the raw pages a run stored in MinIO and runs them through the
parser again, saving the result like a fresh collection`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetLevel(log.TraceLevel)
		logger := log.WithFields(log.Fields{
			"job": "reparse",
			"run": runFlag,
		})
		if runFlag == "" || termFlag == "" {
			return errors.New("--run and --term are required")
		}
		ctx := context.Background()

		slogger, closeLog, err := newLogger()
		if err != nil {
			return err
		}
		defer closeLog()
		store, closeStore, err := openStore(ctx)
		if err != nil {
			logger.Error("Could not open store: ", err)
			return err
		}
		defer closeStore()

		archiveConfig, err := pagearchive.ConfigFromEnv()
		if err != nil {
			return err
		}
		archive, err := pagearchive.New(ctx, archiveConfig)
		if err != nil {
			logger.Error("Could not open archive: ", err)
			return err
		}

		orch := collection.NewOrchestrator(pagearchive.NewRunFetcher(archive, runFlag), store, slogger)
		run, catalog, err := orch.CollectTerm(ctx, termFlag, nil)
		if err != nil {
			logger.Error("Reparse failed: ", err)
			return err
		}
		logger.WithFields(log.Fields{
			"new_run": run.ID,
			"courses": len(catalog.Offerings()),
		}).Info("Finished reparse")
		return nil
	},
}

func init() {
	collectCmd.AddCommand(reparseCmd)
	reparseCmd.Flags().StringVar(&runFlag, "run", "", "id of the archived run")
}
