package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/staffbook/staffql/internal/config"
	"github.com/staffbook/staffql/internal/credential"
	"github.com/staffbook/staffql/internal/graph"
	"github.com/staffbook/staffql/internal/logging"
	"github.com/staffbook/staffql/internal/search"
	"github.com/staffbook/staffql/internal/store"
	"github.com/staffbook/staffql/internal/store/dial"
)

// skipStore marks commands that run without a store connection.
const skipStore = "staffql/skip-store"

var (
	core   store.Store
	cfg    *config.Config
	logger logging.Logger

	configPath string
	storeURI   string
)

var rootCmd = &cobra.Command{
	Use:   "staffql",
	Short: "A GraphQL API for user accounts and employee records",
	Long: `staffql serves a GraphQL API for signing up and logging in users and for
managing employee records in a document store.

Running staffql without a subcommand starts the HTTP server.

The store is selected by URI:
  mongodb://host:27017   MongoDB (also mongodb+srv://)
  bolt://path/to/file    embedded bbolt database
  file://path/to/dir     one markdown document per record`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		if cmd.Annotations[skipStore] == "true" || (cmd.Name() == "graphql" && querySchemaOnly) {
			return nil
		}

		s, err := dial.Open(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return fmt.Errorf("connecting to store: %w", err)
		}
		core = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if core == nil {
			return nil
		}
		err := core.Close(context.Background())
		core = nil
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

// loadConfig layers defaults, the config file, .env, the environment and flags.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(config.EnvFile); err != nil {
		return err
	}

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		c.Store.URI = storeURI
	}
	if cmd.Flags().Changed("port") {
		c.Server.Port = servePort
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logging.New(os.Stderr, c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}

	cfg = c
	logger = l
	return nil
}

// newResolver wires the resolver to the open store. With withIndex set, the
// search index is built from the store's current contents.
func newResolver(ctx context.Context, withIndex bool) (*graph.Resolver, error) {
	hasher, err := credential.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	r := &graph.Resolver{
		Store:  core,
		Hasher: hasher,
		Logger: logger,
	}
	if !withIndex {
		return r, nil
	}

	idx, err := search.NewIndex()
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	r.Index = idx
	if err := r.BuildIndex(ctx); err != nil {
		idx.Close()
		return nil, fmt.Errorf("building search index: %w", err)
	}
	return r, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFile, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&storeURI, "store", "", "Store URI (overrides config and MONGO_URI)")
	rootCmd.Flags().IntVarP(&servePort, "port", "p", config.DefaultPort, "Port to listen on")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
