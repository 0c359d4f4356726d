package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pjt727/soc/collection"
)

var everyFlag time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Collects a term repeatedly",
	Long: `Collects a term right away and then on every interval until interrupted.
Each run appends a seat snapshot per course so enrollment can be tracked over time`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetLevel(log.TraceLevel)
		logger := log.WithFields(log.Fields{
			"job": "watch",
		})
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		setup, err := setupCollection(ctx, logger)
		if err != nil {
			logger.Error("Could not set up collection: ", err)
			return err
		}
		defer setup.close()

		scheduler := collection.NewScheduler(setup.orch, setup.logger)
		logger.Infof("Collecting %s every %s", setup.term, everyFlag)
		successful, err := scheduler.Every(ctx, everyFlag, setup.term, setup.subjects)
		if err != nil {
			return err
		}
		logger.WithFields(log.Fields{
			"successful": successful,
			"failed":     scheduler.Failed(),
		}).Info("Stopped watching")
		return nil
	},
}

func init() {
	collectCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&everyFlag, "every", 30*time.Minute, "time between collections")
}
