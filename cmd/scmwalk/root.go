package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scmkit/internal/app"
)

type cliOptions struct {
	configPath  string
	root        string
	owner       string
	includes    []string
	db          string
	concurrency int
	jsonOutput  bool
	verbose     bool
	logger      *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		owner:       app.DefaultOwner,
		concurrency: app.DefaultConcurrency,
		logger:      zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "scmwalk",
		Short:         "Walk a directory of repositories and build a project catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := buildLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "yaml config file (flags override it)")
	root.PersistentFlags().StringVar(&opts.root, "root", "", "directory whose subdirectories are projects")
	root.PersistentFlags().StringVar(&opts.owner, "owner", opts.owner, "owner name recorded with each run")
	root.PersistentFlags().StringArrayVar(&opts.includes, "include", nil, "project name to watch for (repeatable; default all)")
	root.PersistentFlags().StringVar(&opts.db, "db", "", "bbolt database to persist the catalog into")
	root.PersistentFlags().IntVar(&opts.concurrency, "concurrency", opts.concurrency, "max projects processed in parallel")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newDiscoverCmd(&opts),
		newWatchCmd(&opts),
	)
	return root
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// resolveConfig merges the optional config file with whatever flags the user
// set. Flags win.
func (o *cliOptions) resolveConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if o.configPath != "" {
		loaded, err := app.LoadConfig(o.configPath)
		if err != nil {
			return app.Config{}, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = o.root
	}
	if cmd.Flags().Changed("owner") {
		cfg.Owner = o.owner
	}
	if cmd.Flags().Changed("include") {
		cfg.Includes = o.includes
	}
	if cmd.Flags().Changed("db") {
		cfg.DB = o.db
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	return cfg, nil
}
