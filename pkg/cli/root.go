package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sqlorder/internal/config"
	"sqlorder/internal/orderproj"
	"sqlorder/internal/schema"
)

var (
	version = "dev"
	commit  = "none"
)

// app is the state shared by all commands once flags and config are resolved.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	model   string
	planner *orderproj.Planner
}

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		printError(rootCmd, output, err)
		return 1
	}
	return 0
}

func printError(cmd *cobra.Command, output string, err error) {
	if output != "json" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	errObj := map[string]interface{}{
		"error": err.Error(),
	}
	var amb *orderproj.AmbiguousMatchError
	if errors.As(err, &amb) {
		errObj["expr"] = amb.Expr
		errObj["candidates"] = amb.Candidates
	}
	_ = printJSON(cmd.OutOrStdout(), errObj)
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		output     string
		logLevel   string
		model      string
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sqlorder",
		Short: "Project ORDER BY terms of SQL queries into their SELECT lists",
		Long: "sqlorder rewrites SELECT queries so that the value of every ORDER BY term can be\n" +
			"read back from the result rows, and reports the column each term is found under.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				configPath = config.FindConfigFile()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Precedence: flag > env > config file > default
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Output
			}
			if output == "" {
				output = defaultOutputFormat(cmd.OutOrStdout())
			}
			if err := validateOutputFormat(output); err != nil {
				return err
			}
			// Commands and error reporting read the resolved value back from the flag.
			if err := cmd.Root().PersistentFlags().Set("output", output); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.model = model
			a.logger = newLogger(cfg, cmd.ErrOrStderr())
			a.planner = orderproj.NewPlanner(a.logger)
			if configPath != "" {
				a.logger.Debug("config loaded", "path", configPath)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./sqlorder.yaml or ~/.sqlorder/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json); defaults to table on a terminal")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Bind queries to this catalog table for wildcard column lookups")

	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newProjectCmd(a))
	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger builds the stderr logger. Every record carries the run id so that
// lines from one invocation can be grouped.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("run_id", uuid.NewString())
}

// loadCatalog returns the configured schema: introspected tables overlaid by
// static ones from the config file.
func (a *app) loadCatalog(ctx context.Context) (*schema.Catalog, error) {
	catalog := schema.NewCatalog()
	if a.cfg.HasIntrospection() {
		loaded, err := schema.Open(ctx, a.cfg.Schema.Driver, a.cfg.Schema.DSN)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		a.logger.Debug("schema introspected",
			"driver", a.cfg.Schema.Driver, "tables", loaded.Len())
		catalog = loaded
	}
	return catalog.Merge(a.cfg.StaticCatalog()), nil
}

// boundModel resolves the --model flag against the catalog. It returns nil
// when no model was requested.
func (a *app) boundModel(ctx context.Context) (*schema.Table, error) {
	if a.model == "" {
		return nil, nil
	}
	catalog, err := a.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	t, err := catalog.Table(a.model)
	if err != nil {
		return nil, fmt.Errorf("--model: %w", err)
	}
	return t, nil
}
