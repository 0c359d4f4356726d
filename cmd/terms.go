package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pjt727/soc/collection/services/soc"
)

// termsCmd represents the terms command
var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Lists the terms the site offers for this and next year",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.WithFields(log.Fields{
			"job": "terms",
		})
		config, err := loadConfig()
		if err != nil {
			logger.Error("Could not load config: ", err)
			return err
		}
		slogger, closeLog, err := newLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		fetcher := soc.NewFetcher(config, slogger, logger)
		terms, err := fetcher.ListTerms(context.Background(), time.Now())
		if err != nil {
			logger.Error("Could not list terms: ", err)
			return err
		}
		for i, term := range terms {
			if i == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", term)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), term)
		}
		return nil
	},
}

func init() {
	collectCmd.AddCommand(termsCmd)
}
