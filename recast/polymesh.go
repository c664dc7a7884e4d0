package recast

// PolyMesh is the polygonised mesh that accompanies a compact heightfield
// into tile assembly: up to Nvp vertex indices per polygon plus, for each
// polygon edge, an "extra info" code (high bit set means a boundary edge
// carrying a cardinal direction nibble in the low bits, 0xf meaning a
// non-portal border; otherwise the code is the neighbour polygon index).
// Triangulating region contours into this shape, welding vertices, and
// merging triangles into larger polygons happens upstream of this package;
// PolyMesh is borrowed read-only for the duration of tile assembly, the same
// way CompactHeightfield is borrowed for contour extraction.
type PolyMesh struct {
	Verts  []uint16 // (x,y,z) * NVerts, in voxel units.
	Polys  []uint16 // NPolys*2*Nvp: vertex indices, then per-edge extra info.
	Regs   []uint16 // Region id per polygon.
	Flags  []uint16 // User-defined per-polygon flags.
	Areas  []uint8  // Area id per polygon.
	NVerts int32
	NPolys int32
	Nvp    int32
	BMin   [3]float32
	BMax   [3]float32
	Cs     float32
	Ch     float32
}
