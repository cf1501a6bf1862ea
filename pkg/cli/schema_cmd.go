package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

type tableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the tables and columns available to --model",
		Long: "Prints the catalog built from the configured database (schema.driver and\n" +
			"schema.dsn) overlaid with the static schema.tables entries of the config file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			tables := catalog.Tables()
			if getOutputFormat(cmd) == "json" {
				out := make([]tableInfo, len(tables))
				for i, t := range tables {
					out[i] = tableInfo{Name: t.Name, Columns: t.Columns}
				}
				return printJSON(cmd.OutOrStdout(), out)
			}

			rows := make([][]string, len(tables))
			for i, t := range tables {
				rows[i] = []string{t.Name, strings.Join(t.Columns, ", ")}
			}
			return printTable(cmd.OutOrStdout(), []string{"table", "columns"}, rows)
		},
	}
}
