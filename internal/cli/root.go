// Package cli provides the command-line interface for dialdish.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dialdish/dialdish/internal/config"
	"github.com/dialdish/dialdish/internal/db"
	"github.com/dialdish/dialdish/internal/llm"
	"github.com/dialdish/dialdish/internal/metrics"
	"github.com/dialdish/dialdish/internal/notify"
	"github.com/dialdish/dialdish/internal/service"
	"github.com/dialdish/dialdish/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose      bool
	restaurantID string

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client

	// Lazy-initialized LLM model
	model *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dialdish",
	Short: "Restaurant voice-ordering assistant",
	Long: `DialDish answers a restaurant's phone line: it walks callers through the
menu, takes order requests, and answers questions about the service from a
small knowledge base.

This CLI talks to the same SurrealDB instance as the webhook server, so you
can seed data, search the knowledge base, and simulate calls locally.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, nil)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// getVoice wires the voice service over the connected database. Sessions stay
// in memory: CLI invocations are single-process. Commands that answer
// questions with LLM fallback pass requireLLM=true.
func getVoice(requireLLM bool) (*service.Voice, error) {
	var synthesizer service.AnswerSynthesizer
	if requireLLM && cfg.LLMProvider != config.ProviderNone {
		if model == nil {
			var err error
			model, err = llm.NewModel(cfg)
			if err != nil {
				return nil, fmt.Errorf("init model: %w", err)
			}
		}
		synthesizer = model
	}

	collector := metrics.NewCollector()
	dbClient.WithMetrics(collector)

	return service.NewVoice(service.Deps{
		Sessions:     store.NewMemory(),
		Catalog:      db.NewCatalog(dbClient),
		Orders:       db.NewOrders(dbClient),
		Knowledge:    db.NewKnowledge(dbClient),
		Synthesizer:  synthesizer,
		Notifier:     notify.NewLog(nil),
		Metrics:      collector,
		DedupeWindow: cfg.TurnDedupeWindow,
	}), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dialdish %s\n", Version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&restaurantID, "restaurant", "r", "demo", "restaurant record id")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}
