package recast

// CompactCell points at the run of spans occupying one (x, y) column of a
// CompactHeightfield.
type CompactCell struct {
	Index uint32 // Index of the first span in the column, into Spans.
	Count uint8  // Number of spans in the column.
}

// CompactSpan is a single walkable voxel span within a CompactHeightfield.
// Con packs, one 6-bit field per cardinal direction, either NotConnected or the
// index (relative to the neighbour cell's first span) of the span this one
// connects to.
type CompactSpan struct {
	Y   uint16 // Minimum vertical voxel index of the span.
	Reg uint16 // Region id, high bit (BorderReg) marks a tile-border span.
	Con uint32 // Packed per-direction neighbour connections.
}

// CompactHeightfield is the read-only voxel grid this package consumes: a
// width x height grid of cells, each owning a run of spans already
// partitioned into regions by an upstream watershed pass. Constructing one
// from raw geometry (rasterization, region partitioning, area tagging) is
// outside this package's scope; callers bring a fully built field.
type CompactHeightfield struct {
	Width      int32 // Grid width along x, in voxel units.
	Height     int32 // Grid height along z, in voxel units.
	SpanCount  int32 // Total number of spans.
	BorderSize int32 // Non-navigable margin baked into Width/Height.
	MaxRegions uint16
	BMin       [3]float32 // World-space AABB minimum.
	BMax       [3]float32 // World-space AABB maximum.
	Cs         float32    // Cell size on the xz-plane.
	Ch         float32    // Cell height.

	Cells []CompactCell // Size Width*Height.
	Spans []CompactSpan // Size SpanCount.
	Areas []uint8        // Size SpanCount, parallel to Spans.
}

// dirOffsetX/dirOffsetZ give the (x, z) delta of the cell adjacent to a span
// in cardinal direction d. Direction numbering (0=west,1=north,2=east,
// 3=south; each step d -> d+1 turns clockwise) matches the rest of the
// package.
var dirOffsetX = [4]int32{-1, 0, 1, 0}
var dirOffsetZ = [4]int32{0, 1, 0, -1}

// GetDirOffsetX returns the x offset of direction d.
func GetDirOffsetX(d int32) int32 { return dirOffsetX[d&3] }

// GetDirOffsetY returns the z offset of direction d. Named for parity with
// the heightfield's own "y" grid axis (which maps to world z).
func GetDirOffsetY(d int32) int32 { return dirOffsetZ[d&3] }

// GetCon returns the neighbour-span offset packed for span s in direction
// dir, or NotConnected if s has no neighbour there.
func GetCon(s *CompactSpan, dir int32) int32 {
	shift := uint(dir) * 6
	return int32((s.Con >> shift) & 0x3f)
}

// SetCon packs neighbour offset i for span s in direction dir.
func SetCon(s *CompactSpan, dir, i int32) {
	shift := uint(dir) * 6
	s.Con = (s.Con &^ (0x3f << shift)) | (uint32(i&0x3f) << shift)
}

func iMin(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func iMax(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func iAbs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}
