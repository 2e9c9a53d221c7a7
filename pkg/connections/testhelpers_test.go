package connections

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/strongties/pkg/table"
)

func mustReadCSV(t *testing.T, body string) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(body))
	require.NoError(t, err)
	return tbl
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func column(t *testing.T, tbl *table.Table, col string) []string {
	t.Helper()
	var out []string
	for i := 0; i < tbl.Len(); i++ {
		c, ok := tbl.Value(i, col)
		require.True(t, ok, "missing column %s", col)
		out = append(out, c.String())
	}
	return out
}
