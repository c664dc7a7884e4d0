package detour

import "github.com/aurelien-rainone/gogeo/f32/d3"

// MeshHeader is the fixed-size prefix of a serialized tile: everything a
// reader needs before it can size and decode the variable-length sections
// that follow.
type MeshHeader struct {
	Magic           int32
	Version         int32
	X               int32
	Y               int32
	Layer           int32
	UserID          uint32
	PolyCount       int32
	VertCount       int32
	MaxLinkCount    int32
	DetailMeshCount int32
	DetailVertCount int32
	DetailTriCount  int32
	BvNodeCount     int32
	OffMeshConCount int32
	OffMeshBase     int32
	WalkableHeight  float32
	WalkableRadius  float32
	WalkableClimb   float32
	Bmin            [3]float32
	Bmax            [3]float32
	BvQuantFactor   float32
}

// Poly is a polygon within a tile: either a navigable ground polygon (its
// vertices index the tile's vertex array) or a two-vertex off-mesh
// connection stub.
type Poly struct {
	FirstLink   uint32
	Verts       [VertsPerPolygon]uint16
	Neis        [VertsPerPolygon]uint16
	Flags       uint16
	VertCount   uint8
	AreaAndType uint8 // packed: low 6 bits area id, high 2 bits polygon type
}

func (p *Poly) SetArea(a uint8) { p.AreaAndType = (p.AreaAndType & 0xc0) | (a & 0x3f) }
func (p *Poly) SetType(t uint8) { p.AreaAndType = (p.AreaAndType & 0x3f) | (t << 6) }
func (p *Poly) Area() uint8     { return p.AreaAndType & 0x3f }
func (p *Poly) Type() uint8     { return p.AreaAndType >> 6 }

// CalcPolyCenter derives the centroid of a convex polygon given its vertex
// indices and the tile's world-space vertex array.
func CalcPolyCenter(idx []uint16, nidx int32, verts []float32) d3.Vec3 {
	tc := d3.NewVec3()
	for j := int32(0); j < nidx; j++ {
		start := idx[j] * 3
		v := verts[start : start+3]
		tc[0] += v[0]
		tc[1] += v[1]
		tc[2] += v[2]
	}
	return tc.Scale(1 / float32(nidx))
}

// Link is a run-time polygon adjacency record. Space for MaxLinkCount of
// these is reserved in a serialized tile but never populated by
// CreateNavMeshData: links are rebuilt when a tile is attached to a live
// mesh, which is outside this package's scope.
type Link struct {
	Ref  uint32
	Next uint32
	Edge uint8
	Side uint8
	Bmin uint8
	Bmax uint8
}

// PolyDetail indexes one polygon's extra height-detail triangles.
type PolyDetail struct {
	VertBase  uint32
	TriBase   uint32
	VertCount uint8
	TriCount  uint8
}

// BVNode is one node of a tile's bounding-volume tree: a quantized AABB
// plus either a leaf polygon index (I >= 0) or a negated escape offset
// (I < 0) to skip this node's subtree during a DFS preorder query.
type BVNode struct {
	Bmin, Bmax [3]uint16
	I          int32
}

// OffMeshConnection is a user-defined point-to-point edge, at least one
// endpoint of which lies inside this tile.
type OffMeshConnection struct {
	Pos    [6]float32 // (ax,ay,az, bx,by,bz)
	Rad    float32
	Poly   uint16
	Flags  uint8 // offMeshConBidir or 0
	Side   uint8 // outcode of the end point (Pos[3:6]), 0xff if inside the tile
	UserID uint32
}
