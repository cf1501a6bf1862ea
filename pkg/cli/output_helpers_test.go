package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlorder/internal/orderproj"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{name: "empty ok", output: "", wantErr: false},
		{name: "table ok", output: "table", wantErr: false},
		{name: "json ok", output: "json", wantErr: false},
		{name: "yaml rejected", output: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutputFormat(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaultOutputFormat_NonTerminal(t *testing.T) {
	assert.Equal(t, "json", defaultOutputFormat(&bytes.Buffer{}))
}

func TestPrintTable(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTable(&buf, []string{"name", "direction"}, [][]string{
			{"order_0", "asc"},
			{"id", "desc"},
		}))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3, "expected header + 2 data rows")
		assert.Contains(t, lines[0], "NAME")
		assert.Contains(t, lines[0], "DIRECTION")
		assert.Equal(t, []string{"id", "desc"}, strings.Fields(lines[2]))
	})

	t.Run("empty_columns", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTable(&buf, nil, [][]string{{"a"}}))
		assert.Empty(t, buf.String(), "empty columns should produce no output")
	})

	t.Run("separator", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printTable(&buf, []string{"a", "b"}, [][]string{{"1", "2"}}))
		assert.Equal(t, "A  B\n1  2\n", buf.String())
	})
}

func TestPrintError(t *testing.T) {
	amb := &orderproj.AmbiguousMatchError{
		Query:      `SELECT "id", "users"."id" FROM "users" ORDER BY "id"`,
		Expr:       `"id"`,
		Candidates: []string{`"users"."id"`, `"users"."id"`},
	}

	t.Run("json", func(t *testing.T) {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)

		printError(cmd, "json", amb)
		assert.Contains(t, out.String(), `"candidates"`)
		assert.Contains(t, out.String(), `"expr"`)
	})

	t.Run("text", func(t *testing.T) {
		cmd := &cobra.Command{}
		var errOut bytes.Buffer
		cmd.SetErr(&errOut)

		printError(cmd, "table", errors.New("boom"))
		assert.Equal(t, "Error: boom\n", errOut.String())
	})
}
