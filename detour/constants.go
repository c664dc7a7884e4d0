package detour

// navMeshMagic/navMeshVersion identify a single serialized MeshTile
// payload, independent of the multi-tile set magic/version a caller's own
// container format might wrap around it.
const (
	navMeshMagic   int32 = 'N'<<24 | 'A'<<16 | 'V'<<8 | 'M'
	navMeshVersion int32 = 7
)

const (
	// VertsPerPolygon is the maximum number of vertices per navigation
	// polygon. Tied to the Nvp a PolyMesh was built with; CreateNavMeshData
	// rejects anything larger.
	VertsPerPolygon uint32 = 6

	// offMeshConBidir flags an off-mesh connection traversable in both
	// directions.
	offMeshConBidir uint8 = 1

	// maxAreas is the number of distinct user area ids representable in
	// Poly.AreaAndType's low six bits.
	maxAreas int32 = 64

	// extLink marks a Poly.Neis slot as an external (portal) link rather
	// than a same-tile polygon index; the low 4 bits then hold the side.
	extLink uint16 = 0x8000

	// meshNullIdx marks an unused polygon vertex/neighbour slot, and a
	// detail-mesh-less off-mesh link has no home polygon until insertion.
	meshNullIdx uint16 = 0xffff

	polyTypeGround            uint8 = 0
	polyTypeOffMeshConnection uint8 = 1
)
