package tilebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare-nav/navgen/detour"
	"github.com/wayfare-nav/navgen/recast"
)

// rectCHF builds a solid w x h grid of unit cells, one span per cell, all
// region 1, fully connected to their in-bounds neighbours.
func rectCHF(w, h int32) *recast.CompactHeightfield {
	chf := &recast.CompactHeightfield{
		Width:  w,
		Height: h,
		BMin:   [3]float32{0, 0, 0},
		BMax:   [3]float32{float32(w), 1, float32(h)},
		Cs:     1,
		Ch:     1,
		Cells:  make([]recast.CompactCell, w*h),
		Spans:  make([]recast.CompactSpan, w*h),
		Areas:  make([]uint8, w*h),
	}
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			ci := x + y*w
			chf.Cells[ci] = recast.CompactCell{Index: uint32(ci), Count: 1}
			chf.Spans[ci] = recast.CompactSpan{Y: 0, Reg: 1}
			chf.Areas[ci] = recast.WalkableArea
			s := &chf.Spans[ci]
			for dir := int32(0); dir < 4; dir++ {
				nx := x + recast.GetDirOffsetX(dir)
				ny := y + recast.GetDirOffsetY(dir)
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					recast.SetCon(s, dir, recast.NotConnected)
					continue
				}
				recast.SetCon(s, dir, 0)
			}
		}
	}
	chf.SpanCount = w * h
	return chf
}

// rectMesh is a single quad polygon spanning (0,0)-(w,h), standing in for
// the polygonisation result an upstream polygoniser would hand to this
// package alongside rectCHF's region.
func rectMesh(w, h, nvp int32) *recast.PolyMesh {
	mesh := &recast.PolyMesh{
		Verts: []uint16{
			0, 0, 0,
			0, 0, uint16(h),
			uint16(w), 0, uint16(h),
			uint16(w), 0, 0,
		},
		NVerts: 4,
		Nvp:    nvp,
		NPolys: 1,
		Regs:   []uint16{1},
		Areas:  []uint8{recast.WalkableArea},
		Flags:  []uint16{0},
		BMin:   [3]float32{0, 0, 0},
		BMax:   [3]float32{float32(w), 1, float32(h)},
		Cs:     1,
		Ch:     1,
	}
	mesh.Polys = make([]uint16, nvp*2)
	for i := range mesh.Polys {
		mesh.Polys[i] = recast.MeshNullIdx
	}
	copy(mesh.Polys[:4], []uint16{0, 1, 2, 3})
	return mesh
}

func TestBuildProducesOneTileForSolidRectangle(t *testing.T) {
	chf := rectCHF(4, 4)
	mesh := rectMesh(4, 4, 6)
	ctx := recast.NewBuildContext(false)
	cfg := recast.DefaultConfig()

	result, err := Build(ctx, chf, mesh, cfg, 1, 2, 7)
	require.NoError(t, err)

	assert.Equal(t, int32(1), result.Contours.NConts)
	assert.NotEmpty(t, result.TileData)

	hdr, err := detour.DecodeHeader(result.TileData)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hdr.X)
	assert.Equal(t, int32(2), hdr.Y)
	assert.Equal(t, uint32(7), hdr.UserID)
}

func TestBuildFailsOnEmptyHeightfield(t *testing.T) {
	chf := &recast.CompactHeightfield{Cells: []recast.CompactCell{{}}}
	ctx := recast.NewBuildContext(false)
	cfg := recast.DefaultConfig()

	_, err := Build(ctx, chf, rectMesh(1, 1, 6), cfg, 0, 0, 0)
	assert.Error(t, err)
}

func TestBuildFailsOnMissingMesh(t *testing.T) {
	chf := rectCHF(4, 4)
	ctx := recast.NewBuildContext(false)
	cfg := recast.DefaultConfig()

	_, err := Build(ctx, chf, nil, cfg, 0, 0, 0)
	assert.Error(t, err)
}
