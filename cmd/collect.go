package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pjt727/soc/collection"
	"github.com/Pjt727/soc/collection/services/soc"
	"github.com/Pjt727/soc/data"
	classentry "github.com/Pjt727/soc/data/class-entry"
	"github.com/Pjt727/soc/data/docstore"
	"github.com/Pjt727/soc/data/pagearchive"
)

var (
	configFlag   string
	termFlag     string
	subjectsFlag []string
	storeFlag    string
	archiveFlag  bool
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "collect the schedule of classes",
	Long: `This is the root command to instruct soc on what term
to collect (this command is not ran directly)`,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	flags := collectCmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "yaml school file laid over the built in UC San Diego defaults")
	flags.StringVar(&termFlag, "term", "", "term code such as FA24 (defaults to the site's first listed term)")
	flags.StringSliceVar(&subjectsFlag, "subjects", nil, "subject codes to search (defaults to the config's subjects)")
	flags.StringVar(&storeFlag, "store", "postgres", "where catalogs are saved: postgres, mongo or none")
	flags.BoolVar(&archiveFlag, "archive", false, "keep raw pages in MinIO (MINIO_* variables)")
}

func loadConfig() (soc.Config, error) {
	if configFlag == "" {
		return soc.DefaultConfig(), nil
	}
	return soc.LoadConfig(configFlag)
}

// openStore returns nil for "none", the closer is always safe to call
func openStore(ctx context.Context) (collection.Store, func(), error) {
	switch strings.ToLower(storeFlag) {
	case "postgres":
		pool, err := data.NewPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		return classentry.NewStore(pool), pool.Close, nil
	case "mongo":
		store, err := docstore.Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close(context.Background()) }, nil
	case "none":
		return nil, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", storeFlag)
}

type collectSetup struct {
	config   soc.Config
	logger   *slog.Logger
	fetcher  *soc.Fetcher
	orch     *collection.Orchestrator
	term     string
	subjects []string
	close    func()
}

// setupCollection wires the fetcher, store and optional archive from the flags
func setupCollection(ctx context.Context, entry *log.Entry) (*collectSetup, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := openStore(ctx)
	if err != nil {
		closeLog()
		return nil, err
	}
	setup := &collectSetup{
		config:  config,
		logger:  logger,
		fetcher: soc.NewFetcher(config, logger, entry),
		close: func() {
			closeStore()
			closeLog()
		},
	}

	options := []collection.Option{collection.WithPageWorkers(config.PageWorkers)}
	if archiveFlag {
		archiveConfig, err := pagearchive.ConfigFromEnv()
		if err != nil {
			setup.close()
			return nil, err
		}
		archive, err := pagearchive.New(ctx, archiveConfig)
		if err != nil {
			setup.close()
			return nil, err
		}
		options = append(options, collection.WithArchiver(archive))
	}
	setup.orch = collection.NewOrchestrator(setup.fetcher, store, logger, options...)

	setup.subjects = subjectsFlag
	if len(setup.subjects) == 0 {
		setup.subjects = config.Subjects
	}
	setup.term = termFlag
	if setup.term == "" {
		terms, err := setup.fetcher.ListTerms(ctx, time.Now())
		if err != nil {
			setup.close()
			return nil, err
		}
		if len(terms) == 0 {
			setup.close()
			return nil, fmt.Errorf("the site lists no terms for this or next year")
		}
		setup.term = terms[0]
		entry.Infof("No term given, using %s", setup.term)
	}
	return setup, nil
}
