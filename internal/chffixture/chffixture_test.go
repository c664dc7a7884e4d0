package chffixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare-nav/navgen/recast"
)

const twoByOneFixture = `
width: 2
height: 1
border_size: 0
max_regions: 1
bmin: [0, 0, 0]
bmax: [2, 1, 1]
cs: 1
ch: 1
cells:
  - spans:
      - y: 0
        reg: 1
        area: 63
        con: [-1, -1, 0, -1]
  - spans:
      - y: 0
        reg: 1
        area: 63
        con: [0, -1, -1, -1]
`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	path := writeFixture(t, twoByOneFixture)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.Width)

	chf, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, int32(2), chf.SpanCount)
	assert.Equal(t, uint16(1), chf.Spans[0].Reg)
	assert.Equal(t, recast.NotConnected, recast.GetCon(&chf.Spans[0], 0))
	assert.Equal(t, int32(0), recast.GetCon(&chf.Spans[0], 2))
	assert.Equal(t, int32(0), recast.GetCon(&chf.Spans[1], 0))
}

func TestBuildRejectsCellCountMismatch(t *testing.T) {
	f := &File{Width: 2, Height: 2, Cells: []Cell{{}}}
	_, err := f.Build()
	assert.Error(t, err)
}
