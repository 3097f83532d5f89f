package topo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEdgeList = `# sample topology, 4 branches
0 1
0 2
0 3
0 4

1 5
1 6
5 13
2 7
7 8
8 14
3 9
9 10
10 15
4 11
4 12
11 16
`

func TestParse(t *testing.T) {
	topo, err := Parse(strings.NewReader(sampleEdgeList))
	require.NoError(t, err)
	assert.Equal(t, 16, topo.RouterCount())
	assert.Len(t, topo.Branches(), 4)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("0 1\n0 2 3\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = Parse(strings.NewReader("0 x\n"))
	assert.ErrorContains(t, err, "invalid child id")

	_, err = Parse(strings.NewReader("y 1\n"))
	assert.ErrorContains(t, err, "invalid parent id")

	_, err = Parse(strings.NewReader("# only comments\n\n"))
	assert.ErrorContains(t, err, "no edges")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleEdgeList), 0644))

	topo, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, topo.RouterCount())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
