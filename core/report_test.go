package core

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCells() []Stats {
	return []Stats{
		{X: 10, P: 0.2, Trials: 50, NodeAcc: 0.9, EdgeAcc: 1.0,
			NodeConverged: 45, EdgeConverged: 50, NodeMeanTick: 12.5, EdgeMeanTick: 3.2},
		{X: 10, P: 0.8, Trials: 50},
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sampleCells())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "node acc")
	assert.Contains(t, lines[1], "0.900")
	assert.Contains(t, lines[1], "12.5")
	assert.Contains(t, lines[2], "n/a")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteCSV(path, sampleCells()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "x", rows[0][0])
	assert.Equal(t, []string{"10", "0.2", "50", "0.9000", "1.0000", "45", "50", "12.50", "3.20"}, rows[1])
	// never-converged cells leave the mean columns empty
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "", rows[2][8])
}
