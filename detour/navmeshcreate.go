package detour

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"unsafe"

	"github.com/aurelien-rainone/aligned"
	"github.com/aurelien-rainone/gogeo/f32"
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
)

// BVItem is one leaf entry fed into createBVTree: a quantized polygon AABB
// plus the polygon index it bounds.
type BVItem struct {
	BMin, BMax [3]uint16
	i          int32
}

type compareItemX []BVItem

func (s compareItemX) Len() int           { return len(s) }
func (s compareItemX) Less(i, j int) bool { return s[i].BMin[0] < s[j].BMin[0] }
func (s compareItemX) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type compareItemY []BVItem

func (s compareItemY) Len() int           { return len(s) }
func (s compareItemY) Less(i, j int) bool { return s[i].BMin[1] < s[j].BMin[1] }
func (s compareItemY) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type compareItemZ []BVItem

func (s compareItemZ) Len() int           { return len(s) }
func (s compareItemZ) Less(i, j int) bool { return s[i].BMin[2] < s[j].BMin[2] }
func (s compareItemZ) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func calcExtends(items []BVItem, imin, imax int32, bmin, bmax []uint16) {
	copy(bmin, items[imin].BMin[:])
	copy(bmax, items[imin].BMax[:])
	for i := imin + 1; i < imax; i++ {
		it := &items[i]
		for k := 0; k < 3; k++ {
			if it.BMin[k] < bmin[k] {
				bmin[k] = it.BMin[k]
			}
			if it.BMax[k] > bmax[k] {
				bmax[k] = it.BMax[k]
			}
		}
	}
}

func longestAxis(x, y, z uint16) int {
	axis := 0
	maxVal := x
	if y > maxVal {
		axis, maxVal = 1, y
	}
	if z > maxVal {
		axis = 2
	}
	return axis
}

// subdivide recursively splits items[imin:imax] along its longest axis at
// the median, writing a DFS-preorder node for each call into nodes and
// recording, for an internal node, the negated count of nodes in its
// subtree as an escape offset.
func subdivide(items []BVItem, imin, imax int32, curNode *int32, nodes []BVNode) {
	inum := imax - imin
	icur := *curNode

	node := &nodes[*curNode]
	*curNode++

	if inum == 1 {
		node.Bmin = items[imin].BMin
		node.Bmax = items[imin].BMax
		node.I = items[imin].i
		return
	}

	calcExtends(items, imin, imax, node.Bmin[:], node.Bmax[:])
	axis := longestAxis(node.Bmax[0]-node.Bmin[0], node.Bmax[1]-node.Bmin[1], node.Bmax[2]-node.Bmin[2])

	switch axis {
	case 0:
		sort.Sort(compareItemX(items[imin : imin+inum]))
	case 1:
		sort.Sort(compareItemY(items[imin : imin+inum]))
	default:
		sort.Sort(compareItemZ(items[imin : imin+inum]))
	}

	isplit := imin + inum/2
	subdivide(items, imin, isplit, curNode, nodes)
	subdivide(items, isplit, imax, curNode, nodes)

	node.I = -(*curNode - icur)
}

func int32Clamp(a, low, high int32) int32 {
	if a < low {
		return low
	}
	if a > high {
		return high
	}
	return a
}

// createBVTree quantizes every polygon's (or, if present, detail mesh's)
// AABB against params.Cs and recursively subdivides them into nodes, which
// must have capacity for 2*params.PolyCount entries. Returns the number of
// nodes written.
func createBVTree(params *NavMeshCreateParams, nodes []BVNode) int32 {
	quantFactor := 1.0 / params.Cs
	items := make([]BVItem, params.PolyCount)
	for i := int32(0); i < params.PolyCount; i++ {
		it := &items[i]
		it.i = i
		if len(params.DetailMeshes) > 0 {
			vb := params.DetailMeshes[i*4+0]
			ndv := params.DetailMeshes[i*4+1]
			var bmin, bmax [3]float32
			dv := params.DetailVerts[vb*3:]
			copy(bmin[:], dv[:3])
			copy(bmax[:], dv[:3])
			for j := int32(1); j < ndv; j++ {
				d3.Vec3Min(bmin[:], dv[j*3:])
				d3.Vec3Max(bmax[:], dv[j*3:])
			}
			it.BMin[0] = uint16(int32Clamp(int32((bmin[0]-params.BMin[0])*quantFactor), 0, 0xffff))
			it.BMin[1] = uint16(int32Clamp(int32((bmin[1]-params.BMin[1])*quantFactor), 0, 0xffff))
			it.BMin[2] = uint16(int32Clamp(int32((bmin[2]-params.BMin[2])*quantFactor), 0, 0xffff))
			it.BMax[0] = uint16(int32Clamp(int32((bmax[0]-params.BMin[0])*quantFactor), 0, 0xffff))
			it.BMax[1] = uint16(int32Clamp(int32((bmax[1]-params.BMin[1])*quantFactor), 0, 0xffff))
			it.BMax[2] = uint16(int32Clamp(int32((bmax[2]-params.BMin[2])*quantFactor), 0, 0xffff))
		} else {
			p := params.Polys[i*params.Nvp*2:]
			it.BMin = [3]uint16{params.Verts[p[0]*3+0], params.Verts[p[0]*3+1], params.Verts[p[0]*3+2]}
			it.BMax = it.BMin
			for j := int32(1); j < params.Nvp; j++ {
				if p[j] == meshNullIdx {
					break
				}
				x, y, z := params.Verts[p[j]*3+0], params.Verts[p[j]*3+1], params.Verts[p[j]*3+2]
				if x < it.BMin[0] {
					it.BMin[0] = x
				}
				if y < it.BMin[1] {
					it.BMin[1] = y
				}
				if z < it.BMin[2] {
					it.BMin[2] = z
				}
				if x > it.BMax[0] {
					it.BMax[0] = x
				}
				if y > it.BMax[1] {
					it.BMax[1] = y
				}
				if z > it.BMax[2] {
					it.BMax[2] = z
				}
			}
			it.BMin[1] = uint16(math32.Floor(float32(it.BMin[1]) * params.Ch / params.Cs))
			it.BMax[1] = uint16(math32.Ceil(float32(it.BMax[1]) * params.Ch / params.Cs))
		}
	}

	var curNode int32
	subdivide(items, 0, params.PolyCount, &curNode, nodes)
	return curNode
}

// classifyOffMeshPoint returns the outcode of pt against the tile AABB
// [bmin,bmax] on the xz-plane: one of the eight cell codes 0-7 for a point
// outside exactly one or two adjacent faces, or 0xff if pt is inside (or
// touches no face uniquely, e.g. a corner straddling non-adjacent faces).
func classifyOffMeshPoint(pt, bmin, bmax d3.Vec3) uint8 {
	const (
		xp uint8 = 1 << 0
		zp uint8 = 1 << 1
		xm uint8 = 1 << 2
		zm uint8 = 1 << 3
	)

	var outcode uint8
	if pt[0] >= bmax[0] {
		outcode |= xp
	}
	if pt[2] >= bmax[2] {
		outcode |= zp
	}
	if pt[0] < bmin[0] {
		outcode |= xm
	}
	if pt[2] < bmin[2] {
		outcode |= zm
	}

	switch outcode {
	case xp:
		return 0
	case xp | zp:
		return 1
	case zp:
		return 2
	case xm | zp:
		return 3
	case xm:
		return 4
	case xm | zm:
		return 5
	case zm:
		return 6
	case xp | zm:
		return 7
	}
	return 0xff
}

// NavMeshCreateParams is the source data consumed by CreateNavMeshData: a
// PolyMesh's output plus off-mesh connections and the tile's own framing
// (grid position, agent dimensions, bounds).
type NavMeshCreateParams struct {
	Verts     []uint16
	VertCount int32
	Polys     []uint16
	PolyFlags []uint16
	PolyAreas []uint8
	PolyCount int32
	Nvp       int32

	DetailMeshes     []int32
	DetailVerts      []float32
	DetailVertsCount int32
	DetailTris       []uint8
	DetailTriCount   int32

	OffMeshConVerts  []float32
	OffMeshConRad    []float32
	OffMeshConFlags  []uint16
	OffMeshConAreas  []uint8
	OffMeshConDir    []uint8
	OffMeshConUserID []uint32
	OffMeshConCount  int32

	UserID    uint32
	TileX     int32
	TileY     int32
	TileLayer int32
	BMin      [3]float32
	BMax      [3]float32

	WalkableHeight float32
	WalkableRadius float32
	WalkableClimb  float32
	Cs             float32
	Ch             float32

	BuildBvTree bool
}

// CreateNavMeshData assembles params into the serialized byte layout of one
// MeshTile: header, vertices, polygons (ground and off-mesh), detail mesh,
// bounding-volume tree, and off-mesh connection records, in that order.
// Off-mesh connections whose start endpoint classifies outside the tile's
// (height-padded) AABB are dropped; they belong to whichever neighbouring
// tile contains their start point.
func CreateNavMeshData(params *NavMeshCreateParams) ([]uint8, error) {
	if params.Nvp > int32(VertsPerPolygon) {
		return nil, fmt.Errorf("detour: Nvp %d exceeds VertsPerPolygon %d", params.Nvp, VertsPerPolygon)
	}
	if params.VertCount >= 0xffff {
		return nil, fmt.Errorf("detour: VertCount %d too large", params.VertCount)
	}
	if params.VertCount == 0 || params.Verts == nil {
		return nil, fmt.Errorf("detour: missing vertices")
	}
	if params.PolyCount == 0 || params.Polys == nil {
		return nil, fmt.Errorf("detour: missing polygons")
	}

	nvp := params.Nvp

	var (
		offMeshConClass       []uint8
		storedOffMeshConCount int32
		offMeshConLinkCount   int32
	)

	if params.OffMeshConCount > 0 {
		offMeshConClass = make([]uint8, params.OffMeshConCount*2)

		hmin := math32.MaxFloat32
		hmax := -math32.MaxFloat32
		if params.DetailVerts != nil && params.DetailVertsCount != 0 {
			for i := int32(0); i < params.DetailVertsCount; i++ {
				h := params.DetailVerts[i*3+1]
				f32.SetMin(&hmin, h)
				f32.SetMax(&hmax, h)
			}
		} else {
			for i := int32(0); i < params.VertCount; i++ {
				iv := params.Verts[i*3:]
				h := params.BMin[1] + float32(iv[1])*params.Ch
				f32.SetMin(&hmin, h)
				f32.SetMax(&hmax, h)
			}
		}
		hmin -= params.WalkableClimb
		hmax += params.WalkableClimb
		var bmin, bmax [3]float32
		copy(bmin[:], params.BMin[:])
		copy(bmax[:], params.BMax[:])
		bmin[1], bmax[1] = hmin, hmax

		for i := int32(0); i < params.OffMeshConCount; i++ {
			p0 := params.OffMeshConVerts[(i*2+0)*3:]
			p1 := params.OffMeshConVerts[(i*2+1)*3:]
			offMeshConClass[i*2+0] = classifyOffMeshPoint(p0, bmin[:], bmax[:])
			offMeshConClass[i*2+1] = classifyOffMeshPoint(p1, bmin[:], bmax[:])

			if offMeshConClass[i*2+0] == 0xff && (p0[1] < bmin[1] || p0[1] > bmax[1]) {
				offMeshConClass[i*2+0] = 0
			}
			if offMeshConClass[i*2+0] == 0xff {
				offMeshConLinkCount++
				storedOffMeshConCount++
			}
			if offMeshConClass[i*2+1] == 0xff {
				offMeshConLinkCount++
			}
		}
	}

	totPolyCount := params.PolyCount + storedOffMeshConCount
	totVertCount := params.VertCount + storedOffMeshConCount*2

	var edgeCount, portalCount int32
	for i := int32(0); i < params.PolyCount; i++ {
		p := params.Polys[i*2*nvp:]
		for j := int32(0); j < nvp; j++ {
			if p[j] == meshNullIdx {
				break
			}
			edgeCount++
			if (p[nvp+j] & 0x8000) != 0 {
				dir := p[nvp+j] & 0xf
				if dir != 0xf {
					portalCount++
				}
			}
		}
	}
	maxLinkCount := edgeCount + portalCount*2 + offMeshConLinkCount*2

	var uniqueDetailVertCount, detailTriCount int32
	if params.DetailMeshes != nil {
		detailTriCount = params.DetailTriCount
		for i := int32(0); i < params.PolyCount; i++ {
			p := params.Polys[i*nvp*2:]
			ndv := params.DetailMeshes[i*4+1]
			var nv int32
			for j := int32(0); j < nvp; j++ {
				if p[j] == meshNullIdx {
					break
				}
				nv++
			}
			uniqueDetailVertCount += ndv - nv
		}
	} else {
		for i := int32(0); i < params.PolyCount; i++ {
			p := params.Polys[i*nvp*2:]
			var nv int32
			for j := int32(0); j < nvp; j++ {
				if p[j] == meshNullIdx {
					break
				}
				nv++
			}
			detailTriCount += nv - 2
		}
	}

	headerSize := aligned.AlignN(int(unsafe.Sizeof(MeshHeader{})), 4)
	vertsSize := aligned.AlignN(4*3*int(totVertCount), 4)
	polysSize := aligned.AlignN(int(unsafe.Sizeof(Poly{}))*int(totPolyCount), 4)
	linksSize := aligned.AlignN(int(unsafe.Sizeof(Link{}))*int(maxLinkCount), 4)
	detailMeshesSize := aligned.AlignN(int(unsafe.Sizeof(PolyDetail{}))*int(params.PolyCount), 4)
	detailVertsSize := aligned.AlignN(4*3*int(uniqueDetailVertCount), 4)
	detailTrisSize := aligned.AlignN(4*int(detailTriCount), 4)
	var bvTreeSize int
	if params.BuildBvTree {
		bvTreeSize = aligned.AlignN(int(unsafe.Sizeof(BVNode{}))*int(params.PolyCount*2), 4)
	}
	offMeshConsSize := aligned.AlignN(int(unsafe.Sizeof(OffMeshConnection{}))*int(storedOffMeshConCount), 4)

	dataSize := headerSize + vertsSize + polysSize + linksSize +
		detailMeshesSize + detailVertsSize + detailTrisSize + bvTreeSize + offMeshConsSize
	data := make([]uint8, 0, dataSize)

	var hdr MeshHeader
	navVerts := make([]float32, 3*totVertCount)
	navPolys := make([]Poly, totPolyCount)
	navDMeshes := make([]PolyDetail, params.PolyCount)
	navDVerts := make([]float32, 3*uniqueDetailVertCount)
	navDTris := make([]uint8, 4*detailTriCount)
	var navBvtree []BVNode
	if params.BuildBvTree {
		navBvtree = make([]BVNode, params.PolyCount*2)
	}
	offMeshCons := make([]OffMeshConnection, storedOffMeshConCount)

	hdr.Magic = navMeshMagic
	hdr.Version = navMeshVersion
	hdr.X = params.TileX
	hdr.Y = params.TileY
	hdr.Layer = params.TileLayer
	hdr.UserID = params.UserID
	hdr.PolyCount = totPolyCount
	hdr.VertCount = totVertCount
	hdr.MaxLinkCount = maxLinkCount
	copy(hdr.Bmin[:], params.BMin[:])
	copy(hdr.Bmax[:], params.BMax[:])
	hdr.DetailMeshCount = params.PolyCount
	hdr.DetailVertCount = uniqueDetailVertCount
	hdr.DetailTriCount = detailTriCount
	hdr.BvQuantFactor = 1.0 / params.Cs
	hdr.OffMeshBase = params.PolyCount
	hdr.WalkableHeight = params.WalkableHeight
	hdr.WalkableRadius = params.WalkableRadius
	hdr.WalkableClimb = params.WalkableClimb
	hdr.OffMeshConCount = storedOffMeshConCount
	if params.BuildBvTree {
		hdr.BvNodeCount = params.PolyCount * 2
	}

	offMeshVertsBase := params.VertCount
	offMeshPolyBase := params.PolyCount

	for i := int32(0); i < params.VertCount; i++ {
		iv := params.Verts[i*3 : i*3+3]
		v := navVerts[i*3 : i*3+3]
		v[0] = params.BMin[0] + float32(iv[0])*params.Cs
		v[1] = params.BMin[1] + float32(iv[1])*params.Ch
		v[2] = params.BMin[2] + float32(iv[2])*params.Cs
	}

	var n int32
	for i := int32(0); i < params.OffMeshConCount; i++ {
		if offMeshConClass[i*2+0] != 0xff {
			continue
		}
		linkv := params.OffMeshConVerts[i*2*3:]
		v := navVerts[(offMeshVertsBase+n*2)*3:]
		copy(v[0:3], linkv[0:3])
		copy(v[3:6], linkv[3:6])
		n++
	}

	src := params.Polys
	for i := int32(0); i < params.PolyCount; i++ {
		p := &navPolys[i]
		p.Flags = params.PolyFlags[i]
		p.SetArea(params.PolyAreas[i])
		p.SetType(polyTypeGround)
		for j := int32(0); j < nvp; j++ {
			if src[j] == meshNullIdx {
				break
			}
			p.Verts[j] = src[j]
			if (src[nvp+j] & 0x8000) != 0 {
				dir := src[nvp+j] & 0xf
				switch dir {
				case 0xf:
					p.Neis[j] = 0
				case 0:
					p.Neis[j] = extLink | 4
				case 1:
					p.Neis[j] = extLink | 2
				case 2:
					p.Neis[j] = extLink | 0
				case 3:
					p.Neis[j] = extLink | 6
				}
			} else {
				p.Neis[j] = src[nvp+j] + 1
			}
			p.VertCount++
		}
		src = src[nvp*2:]
	}

	n = 0
	for i := int32(0); i < params.OffMeshConCount; i++ {
		if offMeshConClass[i*2+0] != 0xff {
			continue
		}
		p := &navPolys[offMeshPolyBase+n]
		p.VertCount = 2
		p.Verts[0] = uint16(offMeshVertsBase + n*2 + 0)
		p.Verts[1] = uint16(offMeshVertsBase + n*2 + 1)
		p.Flags = params.OffMeshConFlags[i]
		p.SetArea(params.OffMeshConAreas[i])
		p.SetType(polyTypeOffMeshConnection)
		n++
	}

	if len(params.DetailMeshes) > 0 {
		var vbase uint16
		for i := int32(0); i < params.PolyCount; i++ {
			dtl := &navDMeshes[i]
			vb := uint8(params.DetailMeshes[i*4+0])
			ndv := uint8(params.DetailMeshes[i*4+1])
			nv := navPolys[i].VertCount
			dtl.VertBase = uint32(vbase)
			dtl.VertCount = ndv - nv
			dtl.TriBase = uint32(params.DetailMeshes[i*4+2])
			dtl.TriCount = uint8(params.DetailMeshes[i*4+3])
			if ndv-nv != 0 {
				start, length := (vb+nv)*3, 3*(ndv-nv)
				copy(navDVerts[vbase*3:], params.DetailVerts[start:start+length])
				vbase += uint16(ndv - nv)
			}
		}
		copy(navDTris, params.DetailTris[:4*params.DetailTriCount])
	} else {
		var tbase int32
		for i := int32(0); i < params.PolyCount; i++ {
			dtl := &navDMeshes[i]
			nv := navPolys[i].VertCount
			dtl.TriBase = uint32(tbase)
			dtl.TriCount = uint8(nv - 2)
			for j := uint8(2); j < nv; j++ {
				t := navDTris[tbase*4:]
				t[0] = 0
				t[1] = j - 1
				t[2] = j
				t[3] = 1 << 2
				if j == 2 {
					t[3] |= 1 << 0
				}
				if j == nv-1 {
					t[3] |= 1 << 4
				}
				tbase++
			}
		}
	}

	if params.BuildBvTree {
		createBVTree(params, navBvtree)
	}

	n = 0
	for i := int32(0); i < params.OffMeshConCount; i++ {
		if offMeshConClass[i*2+0] != 0xff {
			continue
		}
		con := &offMeshCons[n]
		con.Poly = uint16(offMeshPolyBase + n)
		endPts := params.OffMeshConVerts[i*2*3:]
		copy(con.Pos[0:], endPts[:3])
		copy(con.Pos[3:], endPts[3:6])
		con.Rad = params.OffMeshConRad[i]
		if params.OffMeshConDir[i] != 0 {
			con.Flags = offMeshConBidir
		}
		con.Side = offMeshConClass[i*2+1]
		if len(params.OffMeshConUserID) != 0 {
			con.UserID = params.OffMeshConUserID[i]
		}
		n++
	}

	buf := bytes.NewBuffer(data)
	w := aligned.NewWriter(buf, 4, binary.LittleEndian)
	if err := w.WriteVal(hdr); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navVerts); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navPolys); err != nil {
		return nil, err
	}
	// Link space is reserved but left zeroed; links are rebuilt when a
	// tile is attached to a live mesh, outside this package's scope.
	if err := w.WriteSlice(make([]uint8, linksSize)); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navDMeshes); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navDVerts); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navDTris); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(navBvtree); err != nil {
		return nil, err
	}
	if err := w.WriteSlice(offMeshCons); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
