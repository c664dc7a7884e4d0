package recast

// Contour build flags. Control how contour edges are tessellated during
// simplification.
const (
	// ContourTessWallEdges tessellates solid (impassable) edges during
	// contour simplification.
	ContourTessWallEdges int32 = 0x01
	// ContourTessAreaEdges tessellates edges between areas during contour
	// simplification.
	ContourTessAreaEdges int32 = 0x02
)

// Vertex flag bits packed into the high word of a contour vertex's flag/
// region field. The low 16 bits of that same word hold the neighbouring
// region id.
const (
	// BorderVertex marks a vertex that sits at a special junction of
	// border/area regions; it helps trace the border but carries no
	// adjacency information of its own.
	BorderVertex int32 = 0x10000
	// AreaBorder marks a vertex where the area id differs across the edge
	// that follows it.
	AreaBorder int32 = 0x20000
	// ContourRegMask extracts the 16-bit neighbour region id from a
	// vertex's packed flag/region field.
	ContourRegMask int32 = 0xffff
)

// BorderReg is the high bit of the 16-bit region id, marking a span or
// vertex as lying on the edge of the heightfield tile.
const BorderReg uint16 = 0x8000

// MeshNullIdx marks an unused slot in a polygon's vertex/neighbour array.
const MeshNullIdx uint16 = 0xffff

// NullArea is the area id of unwalkable spans.
const NullArea uint8 = 0

// WalkableArea is the default area id of a walkable span.
const WalkableArea uint8 = 63

// NotConnected is returned by GetCon when the requested direction has no
// neighbour span.
const NotConnected int32 = 0x3f
