package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sqlorder/internal/query"
	"sqlorder/internal/schema"
	"sqlorder/internal/sqlast"
)

// planResult is the outcome of rewriting one input statement.
type planResult struct {
	Input     string              `json:"input"`
	SQL       string              `json:"sql,omitempty"`
	OrderInfo []query.OrderColumn `json:"order_info,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// rewriteFunc rewrites one parsed query.
type rewriteFunc func(q *query.Query) (*query.Query, error)

func newPlanCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "plan [SQL...]",
		Short: "Append missing ORDER BY terms to the SELECT list and report where each is read from",
		Long: "Reads one or more ';'-separated SELECT statements from the arguments, --file, or stdin.\n" +
			"Every ORDER BY term is matched against the SELECT list; terms that are not selected\n" +
			"are appended as order_<i>. The output lists the rewritten SQL and, per term, the\n" +
			"result column and sort direction.",
		Example: `  sqlorder plan "SELECT id FROM users ORDER BY created_at DESC"
  sqlorder plan --model users "SELECT users.* FROM users ORDER BY description"
  sqlorder plan --file queries.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := readStatements(cmd, args, file)
			if err != nil {
				return err
			}
			results, err := a.rewriteAll(cmd.Context(), stmts, a.planner.AppendOrderAsSelection)
			if err != nil {
				return err
			}
			if err := printPlanResults(cmd, results, true); err != nil {
				return err
			}
			return failedCount(results)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read statements from a file ('-' for stdin)")
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "project [SQL...]",
		Short: "Replace the SELECT list with the ORDER BY terms, aliased order_<i>",
		Example: `  sqlorder project "SELECT * FROM users ORDER BY created_at DESC, id"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := readStatements(cmd, args, file)
			if err != nil {
				return err
			}
			project := func(q *query.Query) (*query.Query, error) {
				return a.planner.SelectOrder(q), nil
			}
			results, err := a.rewriteAll(cmd.Context(), stmts, project)
			if err != nil {
				return err
			}
			if err := printPlanResults(cmd, results, false); err != nil {
				return err
			}
			return failedCount(results)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read statements from a file ('-' for stdin)")
	return cmd
}

// readStatements collects the input statements: every argument (each of
// which may hold several statements), else the file, else stdin.
func readStatements(cmd *cobra.Command, args []string, file string) ([]string, error) {
	var stmts []string
	switch {
	case len(args) > 0:
		for _, arg := range args {
			stmts = append(stmts, sqlast.SplitStatements(arg)...)
		}
	case file != "" && file != "-":
		data, err := os.ReadFile(file) //nolint:gosec // path is caller-controlled
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		stmts = sqlast.SplitStatements(string(data))
	default:
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && file != "-" && isTerminal(f) {
			return nil, errors.New("no SQL given: pass statements as arguments, --file, or stdin")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		stmts = sqlast.SplitStatements(string(data))
	}

	if len(stmts) == 0 {
		return nil, errors.New("no SQL statements found")
	}
	return stmts, nil
}

// rewriteAll parses and rewrites every statement concurrently. Results keep
// input order; a statement that fails records its error and does not stop
// the others.
func (a *app) rewriteAll(ctx context.Context, stmts []string, rewrite rewriteFunc) ([]planResult, error) {
	model, err := a.boundModel(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]planResult, len(stmts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, sql := range stmts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.rewriteOne(i, sql, model, rewrite)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rewrite statements: %w", err)
	}
	return results, nil
}

func (a *app) rewriteOne(i int, sql string, model *schema.Table, rewrite rewriteFunc) planResult {
	res := planResult{Input: sql}

	q, err := query.Parse(sql)
	if err != nil {
		a.logger.Warn("statement rejected", "index", i, "error", err)
		res.Error = err.Error()
		return res
	}
	if model != nil {
		q = q.BindModel(model)
	}

	out, err := rewrite(q)
	if err != nil {
		a.logger.Warn("rewrite failed", "index", i, "error", err)
		res.Error = err.Error()
		return res
	}

	res.SQL = out.SQL()
	res.OrderInfo = out.OrderInfo()
	a.logger.Debug("statement rewritten", "index", i, "changed", out != q)
	return res
}

func printPlanResults(cmd *cobra.Command, results []planResult, withOrderInfo bool) error {
	w := cmd.OutOrStdout()
	if getOutputFormat(cmd) == "json" {
		return printJSON(w, results)
	}

	if !withOrderInfo {
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{strconv.Itoa(i + 1), resultText(r)}
		}
		return printTable(w, []string{"#", "sql"}, rows)
	}

	for i, r := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "-- statement %d\n%s\n", i+1, resultText(r))
		if r.Error != "" {
			continue
		}
		rows := make([][]string, len(r.OrderInfo))
		for j, col := range r.OrderInfo {
			rows[j] = []string{strconv.Itoa(j), col.Name, string(col.Direction)}
		}
		if err := printTable(w, []string{"#", "name", "direction"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func resultText(r planResult) string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	return r.SQL
}

func failedCount(results []planResult) error {
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(results))
	}
	return nil
}
