// Root command, global flags, and store lifecycle for the larder CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/htmldoc"
	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	// Global flag values.
	flagStore  string
	flagSchema string
	flagJSON   bool

	// store is the open store instance, set up by PersistentPreRunE.
	store *htmldoc.Store
)

var rootCmd = &cobra.Command{
	Use:   "larder",
	Short: "Larder stores typed object graphs as readable markup documents",
	Long: `Larder persists an entire typed object graph as a single
human-readable markup document: one table per type, one row per
instance, and hyperlink cross-references in place of pointers.

The larder command initializes and inspects store documents.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "store document path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagSchema, "schema", "", "schema file for typed decoding (optional)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(inspectCmd)
}

// newLogger builds the CLI logger: tinted output on a terminal, plain
// text otherwise. Engine warnings surface here.
func newLogger() *slog.Logger {
	w := os.Stderr
	if isatty.IsTerminal(w.Fd()) {
		return slog.New(tint.NewHandler(w, &tint.Options{Level: slog.LevelWarn}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// openStore loads config, resolves the schema, and attaches the store.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := flagStore
	if path == "" {
		path = cfg.GetString(cfgKeyStore)
	}

	schemaPath := flagSchema
	if schemaPath == "" {
		schemaPath = cfg.GetString(cfgKeySchema)
	}
	schema := types.Schema{}
	if schemaPath != "" {
		schema, err = loadSchemaFile(schemaPath)
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
	}

	store = htmldoc.NewStore(schema, newLogger())
	if err := store.Attach(types.Config{Path: path}); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	return nil
}

// closeStore detaches the store, discarding uncommitted state.
func closeStore(cmd *cobra.Command, args []string) error {
	if store != nil {
		return store.Detach()
	}
	return nil
}
