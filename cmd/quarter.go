package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// quarterCmd represents the quarter command
var quarterCmd = &cobra.Command{
	Use:   "quarter",
	Short: "Collects every course of one term",
	Long: `Collects one term and saves courses, sections, exams, a seat snapshot
and the instructor index. Nothing is saved when any listing fails to parse
or two listings share an identity key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetLevel(log.TraceLevel)
		logger := log.WithFields(log.Fields{
			"job": "quarter",
		})
		ctx := context.Background()
		setup, err := setupCollection(ctx, logger)
		if err != nil {
			logger.Error("Could not set up collection: ", err)
			return err
		}
		defer setup.close()

		logger.Infof("Starting collection of %s for %v", setup.term, setup.subjects)
		run, catalog, err := setup.orch.CollectTerm(ctx, setup.term, setup.subjects)
		if err != nil {
			logger.WithField("run", run.ID).Error("Collection failed: ", err)
			return err
		}
		logger.WithFields(log.Fields{
			"run":         run.ID,
			"courses":     len(catalog.Offerings()),
			"instructors": len(catalog.Instructors),
		}).Infof("Finished collection of %s", setup.term)
		return nil
	},
}

func init() {
	collectCmd.AddCommand(quarterCmd)
}
