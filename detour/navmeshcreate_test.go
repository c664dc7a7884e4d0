package detour

import (
	"testing"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOffMeshPointCorners(t *testing.T) {
	bmin := d3.Vec3{0, 0, 0}
	bmax := d3.Vec3{10, 10, 10}

	ttable := []struct {
		name string
		pt   d3.Vec3
		want uint8
	}{
		{"east", d3.Vec3{12, 0, 5}, 0},
		{"northeast corner", d3.Vec3{12, 0, 12}, 1},
		{"north", d3.Vec3{5, 0, 12}, 2},
		{"northwest corner", d3.Vec3{-2, 0, 12}, 3},
		{"west", d3.Vec3{-2, 0, 5}, 4},
		{"southwest corner", d3.Vec3{-2, 0, -2}, 5},
		{"south", d3.Vec3{5, 0, -2}, 6},
		{"southeast corner", d3.Vec3{12, 0, -2}, 7},
		{"inside", d3.Vec3{5, 0, 5}, 0xff},
	}
	for _, tt := range ttable {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOffMeshPoint(tt.pt, bmin, bmax))
		})
	}
}

// rectParams builds a minimal single-quad NavMeshCreateParams: four
// vertices around a unit-scaled square and one ground polygon.
func rectParams() *NavMeshCreateParams {
	return &NavMeshCreateParams{
		Verts: []uint16{
			0, 0, 0,
			0, 0, 4,
			4, 0, 4,
			4, 0, 0,
		},
		VertCount: 4,
		Polys: []uint16{
			0, 1, 2, 3, meshNullIdx, meshNullIdx,
			meshNullIdx, meshNullIdx, meshNullIdx, meshNullIdx, meshNullIdx, meshNullIdx,
		},
		PolyFlags: []uint16{0},
		PolyAreas: []uint8{0},
		PolyCount: 1,
		Nvp:       6,
		UserID:    42,
		TileX:     1,
		TileY:     2,
		BMin:      [3]float32{0, 0, 0},
		BMax:      [3]float32{4, 1, 4},
		Cs:        1,
		Ch:        1,
	}
}

func TestCreateNavMeshDataHeaderRoundTrip(t *testing.T) {
	data, err := CreateNavMeshData(rectParams())
	require.NoError(t, err)

	hdr, err := DecodeHeader(data)
	require.NoError(t, err)

	assert.Equal(t, int32(4), hdr.VertCount)
	assert.Equal(t, int32(1), hdr.PolyCount)
	assert.Equal(t, int32(1), hdr.X)
	assert.Equal(t, int32(2), hdr.Y)
	assert.Equal(t, uint32(42), hdr.UserID)
}

func TestCreateNavMeshDataRejectsOversizedNvp(t *testing.T) {
	params := rectParams()
	params.Nvp = int32(VertsPerPolygon) + 1

	_, err := CreateNavMeshData(params)
	assert.Error(t, err)
}

func TestCreateNavMeshDataRejectsMissingVerts(t *testing.T) {
	params := rectParams()
	params.Verts = nil

	_, err := CreateNavMeshData(params)
	assert.Error(t, err)
}

func TestCreateNavMeshDataCountsPortalLinks(t *testing.T) {
	params := rectParams()
	// Tag the first edge as a cross-tile portal on cardinal side 2 (x+);
	// every other edge stays a non-portal border (dir 0xf).
	params.Polys[6] = 0x8000 | 2

	data, err := CreateNavMeshData(params)
	require.NoError(t, err)

	hdr, err := DecodeHeader(data)
	require.NoError(t, err)
	assert.Equal(t, int32(6), hdr.MaxLinkCount, "4 polygon edges plus 2 links for the one portal edge")
}

func TestCreateNavMeshDataBuildsBvTree(t *testing.T) {
	params := rectParams()
	params.BuildBvTree = true

	data, err := CreateNavMeshData(params)
	require.NoError(t, err)

	hdr, err := DecodeHeader(data)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hdr.BvNodeCount, "the header reserves 2*PolyCount nodes; a single-polygon tree is one leaf")
}
