package recast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedArea2AndLeftOnXZ(t *testing.T) {
	ttable := []struct {
		name           string
		ax, az         int32
		bx, bz         int32
		cx, cz         int32
		wantArea       int32
		wantLeftOnSign bool
	}{
		// In leftOnXZ's convention the +x side of a line running along +z is
		// its left: the side an outer contour from walkContour encloses.
		{"c left of a->b", 0, 0, 0, 4, 1, 2, -4, true},
		{"c right of a->b", 0, 0, 0, 4, -1, 2, 4, false},
		{"c on a->b", 0, 0, 0, 4, 0, 2, 0, true},
	}
	for _, tt := range ttable {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantArea, signedArea2(tt.ax, tt.az, tt.bx, tt.bz, tt.cx, tt.cz))
			assert.Equal(t, tt.wantLeftOnSign, leftOnXZ(tt.ax, tt.az, tt.bx, tt.bz, tt.cx, tt.cz))
		})
	}
}

func TestDistancePtSeg(t *testing.T) {
	// point directly above the segment midpoint
	d := distancePtSeg(2, 1, 0, 0, 4, 0)
	assert.Equal(t, float32(1), d)

	// point beyond the segment's end clamps to the endpoint
	d = distancePtSeg(6, 0, 0, 0, 4, 0)
	assert.Equal(t, float32(4), d)
}

func TestCalcAreaOfPolygon2D(t *testing.T) {
	// clockwise-in-xz square, as walkContour produces
	cw := []int32{0, 0, 0, 0, 0, 0, 4, 0, 4, 0, 4, 0, 4, 0, 0, 0}
	assert.Greater(t, calcAreaOfPolygon2D(cw, 4), int32(0))

	ccw := []int32{0, 0, 0, 0, 4, 0, 0, 0, 4, 0, 4, 0, 0, 0, 4, 0}
	assert.Less(t, calcAreaOfPolygon2D(ccw, 4), int32(0))
}

func TestRemoveDegenerateSegments(t *testing.T) {
	pts := []int32{
		0, 0, 0, 0,
		4, 0, 0, 0,
		4, 0, 0, 0, // duplicate of previous on x/z
		4, 0, 4, 0,
	}
	out := removeDegenerateSegments(pts)
	assert.Equal(t, 3, len(out)/4)
}

// squareContour builds a clockwise unit-grid square contour with corners at
// (x0,z0) and (x1,z1), all on the y=0 plane with no region flags.
func squareContour(x0, z0, x1, z1 int32, reg uint16) Contour {
	return Contour{
		Verts: []int32{
			x0, 0, z0, 0,
			x0, 0, z1, 0,
			x1, 0, z1, 0,
			x1, 0, z0, 0,
		},
		NVerts: 4,
		Reg:    reg,
		Area:   WalkableArea,
	}
}

func TestMergeContourHolesSplicesClosestVisiblePair(t *testing.T) {
	outer := squareContour(0, 0, 4, 4, 5)
	require.Greater(t, calcAreaOfPolygon2D(outer.Verts, outer.NVerts), int32(0))

	hole := Contour{
		Verts: []int32{
			1, 0, 1, 0,
			3, 0, 1, 0,
			3, 0, 3, 0,
			1, 0, 3, 0,
		},
		NVerts: 4,
		Reg:    5,
		Area:   WalkableArea,
	}
	require.Less(t, calcAreaOfPolygon2D(hole.Verts, hole.NVerts), int32(0))

	cset := &ContourSet{Conts: []Contour{outer, hole}, NConts: 2}
	ctx := NewBuildContext(false)

	mergeContourHoles(ctx, cset)

	merged := cset.Conts[0]
	assert.Equal(t, int32(10), merged.NVerts)
	assert.Equal(t, int32(0), cset.Conts[1].NVerts)

	wantXZ := [][2]int32{
		{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0},
		{1, 1}, {3, 1}, {3, 3}, {1, 3}, {1, 1},
	}
	for i, want := range wantXZ {
		gotX, gotZ := merged.Verts[i*4+0], merged.Verts[i*4+2]
		assert.Equal(t, want, [2]int32{gotX, gotZ}, "vertex %d", i)
	}
}

func TestMergeContourHolesNoEnclosingRegionWarns(t *testing.T) {
	hole := Contour{
		Verts: []int32{
			1, 0, 1, 0,
			3, 0, 1, 0,
			3, 0, 3, 0,
			1, 0, 3, 0,
		},
		NVerts: 4,
		Reg:    9,
		Area:   WalkableArea,
	}
	cset := &ContourSet{Conts: []Contour{hole}, NConts: 1}
	ctx := NewBuildContext(true)

	mergeContourHoles(ctx, cset)

	assert.Equal(t, int32(4), cset.Conts[0].NVerts, "unmerged hole is left untouched")
	assert.NotEmpty(t, ctx.Messages())
}

func TestBuildContoursSolidRectangleIsOneQuad(t *testing.T) {
	chf := buildRectCHF(4, 4, 1, nil)
	ctx := NewBuildContext(false)

	cset := BuildContours(ctx, chf, 0, 0, 0)

	require.Equal(t, int32(1), cset.NConts)
	cont := cset.Conts[0]
	assert.Equal(t, int32(4), cont.NVerts)
	assert.Greater(t, calcAreaOfPolygon2D(cont.Verts, cont.NVerts), int32(0))
}

func TestBuildContoursNotchAddsTwoCorners(t *testing.T) {
	blocked := map[[2]int32]bool{{3, 3}: true}
	chf := buildRectCHF(4, 4, 1, blocked)
	ctx := NewBuildContext(false)

	cset := BuildContours(ctx, chf, 0, 0, 0)

	require.Equal(t, int32(1), cset.NConts)
	assert.Equal(t, int32(6), cset.Conts[0].NVerts, "an L-shaped region has six corners")
}

func TestBuildContoursLongEdgeSplit(t *testing.T) {
	// A 32x3 solid rectangle has two long (32-cell) walls and two short
	// (3-cell) ones; maxEdgeLen=8 should bisect each long wall down to
	// four 8-cell edges while leaving the short walls untouched.
	chf := buildRectCHF(32, 3, 1, nil)
	ctx := NewBuildContext(false)

	cset := BuildContours(ctx, chf, 0, 8, ContourTessWallEdges)
	require.Equal(t, int32(1), cset.NConts)
	assert.Equal(t, int32(10), cset.Conts[0].NVerts, "4 corners plus 3 split points on each of the two long walls")

	csetNoSplit := BuildContours(ctx, chf, 0, 0, ContourTessWallEdges)
	require.Equal(t, int32(1), csetNoSplit.NConts)
	assert.Equal(t, int32(4), csetNoSplit.Conts[0].NVerts, "maxEdgeLen=0 disables the length-split pass")
}
