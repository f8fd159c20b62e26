package fundcli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opts := &Options{}
	root := newRootCommand(opts)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestGenerateCSVDeterministic(t *testing.T) {
	a, err := run(t, "generate", "--seed", "7", "--quarter", "2026-Q2", "-f", "csv")
	require.NoError(t, err)
	b, err := run(t, "generate", "--seed", "7", "--quarter", "2026-Q2", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	rows, err := csv.NewReader(bytes.NewBufferString(a)).ReadAll()
	require.NoError(t, err)
	// header + 3 funds x 3 metrics x 3 columns
	assert.Len(t, rows, 28)
	assert.Equal(t, "2026-Q2", rows[1][3])
}

func TestPivotTableOutput(t *testing.T) {
	out, err := run(t, "pivot", "--seed", "7", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Fund_A / Watch List")
	assert.Contains(t, out, "TOTAL")
}

func TestPivotUnknownFund(t *testing.T) {
	_, err := run(t, "pivot", "--seed", "7", "--fund", "Fund_Z")
	require.Error(t, err)
}

func TestDiagramToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.dot")
	_, err := run(t, "diagram", "flow", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}
