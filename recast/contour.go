package recast

import "github.com/aurelien-rainone/assertgo"

// Contour is a single region's boundary, before and after simplification.
//
// Verts holds the simplified polyline as (x, y, z, flags) quadruples; y is
// in cell-height units, x/z in cell-size units. The low 16 bits of flags
// carry the region id of the polygon across that edge (0 if none), bit 16
// (BorderVertex) marks a special junction vertex, bit 17 (AreaBorder) marks
// an area-id transition. RVerts holds the raw, pre-simplification trace in
// the same layout; it is retained so that later simplification passes (and
// debugging) can refer back to it.
//
// A contour with fewer than three simplified vertices carries no usable
// geometry: BuildContours drops such contours after simplification, and a
// hole that mergeContourHoles splices into its outer contour stays in the
// set with NVerts zero.
type Contour struct {
	Verts   []int32 // (x,y,z,flags) * NVerts
	NVerts  int32
	RVerts  []int32 // (x,y,z,flags) * NRVerts
	NRVerts int32
	Reg     uint16
	Area    uint8
}

// ContourSet is the complete set of region contours traced from one
// CompactHeightfield, plus the frame they live in.
type ContourSet struct {
	Conts      []Contour
	NConts     int32
	BMin       [3]float32
	BMax       [3]float32
	Cs         float32
	Ch         float32
	Width      int32
	Height     int32
	BorderSize int32
	MaxError   float32
}

// BuildContours traces, simplifies and hole-merges the region boundaries of
// chf into cset.
//
// maxError bounds how far a simplified edge may deviate from the raw trace
// (in voxel units, squared internally). maxEdgeLen, when non-zero together
// with a tessellation flag in buildFlags, additionally splits long edges.
// See ContourTessWallEdges / ContourTessAreaEdges.
func BuildContours(ctx *BuildContext, chf *CompactHeightfield, maxError float32, maxEdgeLen int32, buildFlags int32) *ContourSet {
	assert.True(ctx != nil, "ctx should not be nil")

	w := chf.Width
	h := chf.Height
	borderSize := chf.BorderSize

	ctx.StartTimer(TimerBuildContours)
	defer ctx.StopTimer(TimerBuildContours)

	cset := &ContourSet{
		Cs:         chf.Cs,
		Ch:         chf.Ch,
		Width:      chf.Width - borderSize*2,
		Height:     chf.Height - borderSize*2,
		BorderSize: borderSize,
		MaxError:   maxError,
	}
	copy(cset.BMin[:], chf.BMin[:])
	copy(cset.BMax[:], chf.BMax[:])
	if borderSize > 0 {
		pad := float32(borderSize) * chf.Cs
		cset.BMin[0] += pad
		cset.BMin[2] += pad
		cset.BMax[0] -= pad
		cset.BMax[2] -= pad
	}

	flags := make([]uint8, chf.SpanCount)

	ctx.StartTimer(TimerBuildContoursTrace)
	markBoundaries(chf, flags)
	ctx.StopTimer(TimerBuildContoursTrace)

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i, ni := int32(c.Index), int32(c.Index)+int32(c.Count); i < ni; i++ {
				if flags[i] == 0 || flags[i] == 0xf {
					flags[i] = 0
					continue
				}
				reg := chf.Spans[i].Reg
				if reg == 0 || (reg&BorderReg) != 0 {
					continue
				}
				area := chf.Areas[i]

				ctx.StartTimer(TimerBuildContoursTrace)
				raw := walkContour(x, y, i, chf, flags)
				ctx.StopTimer(TimerBuildContoursTrace)
				if raw == nil {
					continue
				}

				ctx.StartTimer(TimerBuildContoursSimplify)
				simplified := simplifyContour(raw, maxError, maxEdgeLen, buildFlags)
				simplified = removeDegenerateSegments(simplified)
				ctx.StopTimer(TimerBuildContoursSimplify)

				if len(simplified)/4 < 3 {
					continue
				}

				cont := Contour{
					NVerts:  int32(len(simplified) / 4),
					Verts:   simplified,
					NRVerts: int32(len(raw) / 4),
					RVerts:  raw,
					Reg:     reg,
					Area:    area,
				}
				if borderSize > 0 {
					for j := int32(0); j < cont.NVerts; j++ {
						cont.Verts[j*4+0] -= borderSize
						cont.Verts[j*4+2] -= borderSize
					}
					for j := int32(0); j < cont.NRVerts; j++ {
						cont.RVerts[j*4+0] -= borderSize
						cont.RVerts[j*4+2] -= borderSize
					}
				}
				cset.Conts = append(cset.Conts, cont)
				cset.NConts++
			}
		}
	}

	mergeContourHoles(ctx, cset)

	return cset
}

// markBoundaries computes, for every walkable non-border span, a 4-bit mask
// of edges that do NOT connect to another span of the same region. A span
// whose mask ends up all-zero (fully interior) or all-set (fully isolated,
// handled as a degenerate single-span region) needs no trace.
func markBoundaries(chf *CompactHeightfield, flags []uint8) {
	w := chf.Width
	h := chf.Height
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i, ni := int32(c.Index), int32(c.Index)+int32(c.Count); i < ni; i++ {
				s := &chf.Spans[i]
				if s.Reg == 0 || (s.Reg&BorderReg) != 0 {
					flags[i] = 0
					continue
				}
				var res uint8
				for dir := int32(0); dir < 4; dir++ {
					var r uint16
					if GetCon(s, dir) != NotConnected {
						ax := x + GetDirOffsetX(dir)
						ay := y + GetDirOffsetY(dir)
						ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
						r = chf.Spans[ai].Reg
					}
					if r == s.Reg {
						res |= 1 << uint(dir)
					}
				}
				flags[i] = res ^ 0xf // invert: set bits are boundary edges
			}
		}
	}
}

// walkContour traces the raw boundary polyline of the region owning span i
// at cell (x, y), starting from the first boundary direction found. It
// rotates clockwise across boundary edges (emitting a corner vertex) and
// counter-clockwise across internal edges (stepping to the neighbour span),
// until it returns to the starting span/direction. A hard iteration cap
// guards against malformed input; exceeding it abandons this region: the
// partial trace is discarded and nil is returned.
func walkContour(x, y, i int32, chf *CompactHeightfield, flags []uint8) []int32 {
	var dir uint8
	for (flags[i] & (1 << dir)) == 0 {
		dir++
	}
	startDir := dir
	starti := i
	startx, starty := x, y

	area := chf.Areas[i]
	var points []int32

	const maxIter = 40000
	iter := 0
	for iter < maxIter {
		iter++
		if (flags[i] & (1 << dir)) != 0 {
			px, py, pz, isBorderVertex := cornerVertex(x, y, i, int32(dir), chf)

			var r int32
			var isAreaBorder bool
			s := &chf.Spans[i]
			if GetCon(s, int32(dir)) != NotConnected {
				ax := x + GetDirOffsetX(int32(dir))
				ay := y + GetDirOffsetY(int32(dir))
				ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, int32(dir))
				r = int32(chf.Spans[ai].Reg)
				if area != chf.Areas[ai] {
					isAreaBorder = true
				}
			}
			if isBorderVertex {
				r |= BorderVertex
			}
			if isAreaBorder {
				r |= AreaBorder
			}
			points = append(points, px, py, pz, r)

			flags[i] &^= 1 << dir
			dir = (dir + 1) & 0x3 // rotate CW
		} else {
			nx := x + GetDirOffsetX(int32(dir))
			ny := y + GetDirOffsetY(int32(dir))
			s := &chf.Spans[i]
			ni := int32(-1)
			if GetCon(s, int32(dir)) != NotConnected {
				ni = int32(chf.Cells[nx+ny*chf.Width].Index) + GetCon(s, int32(dir))
			}
			if ni == -1 {
				// Should never happen on well-formed input.
				return points
			}
			x, y, i = nx, ny, ni
			dir = (dir + 3) & 0x3 // rotate CCW
		}

		if i == starti && int32(dir) == int32(startDir) && x == startx && y == starty {
			return points
		}
	}
	return nil
}

// cornerVertex computes the position of the corner at cell (x,y) on the d
// side of span i, along with whether it is a border vertex (see
// regsBorderVertex).
func cornerVertex(x, y, i, d int32, chf *CompactHeightfield) (px, py, pz int32, isBorderVertex bool) {
	s := &chf.Spans[i]
	ch := int32(s.Y)
	dp := (d + 1) & 0x3

	var regs [4]uint32
	regs[0] = uint32(chf.Spans[i].Reg) | (uint32(chf.Areas[i]) << 16)

	if GetCon(s, d) != NotConnected {
		ax := x + GetDirOffsetX(d)
		ay := y + GetDirOffsetY(d)
		ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, d)
		as := &chf.Spans[ai]
		ch = iMax(ch, int32(as.Y))
		regs[1] = uint32(chf.Spans[ai].Reg) | (uint32(chf.Areas[ai]) << 16)
		if GetCon(as, dp) != NotConnected {
			ax2 := ax + GetDirOffsetX(dp)
			ay2 := ay + GetDirOffsetY(dp)
			ai2 := int32(chf.Cells[ax2+ay2*chf.Width].Index) + GetCon(as, dp)
			ch = iMax(ch, int32(chf.Spans[ai2].Y))
			regs[2] = uint32(chf.Spans[ai2].Reg) | (uint32(chf.Areas[ai2]) << 16)
		}
	}
	if GetCon(s, dp) != NotConnected {
		ax := x + GetDirOffsetX(dp)
		ay := y + GetDirOffsetY(dp)
		ai := int32(chf.Cells[ax+ay*chf.Width].Index) + GetCon(s, dp)
		as := &chf.Spans[ai]
		ch = iMax(ch, int32(as.Y))
		regs[3] = uint32(chf.Spans[ai].Reg) | (uint32(chf.Areas[ai]) << 16)
		if GetCon(as, d) != NotConnected {
			ax2 := ax + GetDirOffsetX(d)
			ay2 := ay + GetDirOffsetY(d)
			ai2 := int32(chf.Cells[ax2+ay2*chf.Width].Index) + GetCon(as, d)
			ch = iMax(ch, int32(chf.Spans[ai2].Y))
			regs[2] = uint32(chf.Spans[ai2].Reg) | (uint32(chf.Areas[ai2]) << 16)
		}
	}

	px, pz = x, y
	switch d {
	case 0:
		pz++
	case 1:
		px++
		pz++
	case 2:
		px++
	}
	py = ch

	return px, py, pz, regsBorderVertex(regs)
}

// regsBorderVertex implements the border-vertex predicate: true iff, under
// some rotation of the four corner codes, two consecutive equal exterior
// codes (BorderReg set) are followed by two consecutive interior codes
// (BorderReg clear) that share the same area id, and none of the four codes
// is zero.
func regsBorderVertex(regs [4]uint32) bool {
	for j := int32(0); j < 4; j++ {
		a, b, c, d := j, (j+1)&0x3, (j+2)&0x3, (j+3)&0x3
		twoSameExts := (regs[a]&regs[b]&uint32(BorderReg)) != 0 && regs[a] == regs[b]
		twoInts := ((regs[c] | regs[d]) & uint32(BorderReg)) == 0
		intsSameArea := (regs[c] >> 16) == (regs[d] >> 16)
		noZeros := regs[a] != 0 && regs[b] != 0 && regs[c] != 0 && regs[d] != 0
		if twoSameExts && twoInts && intsSameArea && noZeros {
			return true
		}
	}
	return false
}

func distancePtSeg(x, z, px, pz, qx, qz int32) float32 {
	pqx := float32(qx - px)
	pqz := float32(qz - pz)
	dx := float32(x - px)
	dz := float32(z - pz)
	d := pqx*pqx + pqz*pqz
	var t float32
	if d > 0 {
		t = (pqx*dx + pqz*dz) / d
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx = float32(px) + t*pqx - float32(x)
	dz = float32(pz) + t*pqz - float32(z)
	return dx*dx + dz*dz
}

// simplifyContour reduces a closed raw polyline into a simplified polyline
// under a squared-deviation bound, per the two-pass (deviation, then
// optional edge-length split) algorithm. Each output vertex stores (x,y,z,
// flags); the flags word is rewritten at the end from the raw polyline's
// classification around the anchor this vertex came from.
func simplifyContour(points []int32, maxError float32, maxEdgeLen, buildFlags int32) []int32 {
	pn := int32(len(points) / 4)
	var simplified []int32

	hasConnections := false
	for i := int32(0); i < pn; i++ {
		if (points[i*4+3] & ContourRegMask) != 0 {
			hasConnections = true
			break
		}
	}

	if hasConnections {
		for i := int32(0); i < pn; i++ {
			ii := (i + 1) % pn
			differentRegs := (points[i*4+3] & ContourRegMask) != (points[ii*4+3] & ContourRegMask)
			areaBorders := (points[i*4+3] & AreaBorder) != (points[ii*4+3] & AreaBorder)
			if differentRegs || areaBorders {
				simplified = append(simplified, points[i*4+0], points[i*4+1], points[i*4+2], i)
			}
		}
	}

	if len(simplified) == 0 {
		// Isolated contour: seed with the lexicographically least and
		// greatest vertices; the deviation pass below refines from there.
		llx, lly, llz, lli := points[0], points[1], points[2], int32(0)
		urx, ury, urz, uri := points[0], points[1], points[2], int32(0)
		for i := int32(0); i < pn; i++ {
			x, y, z := points[i*4+0], points[i*4+1], points[i*4+2]
			if x < llx || (x == llx && z < llz) {
				llx, lly, llz, lli = x, y, z, i
			}
			if x > urx || (x == urx && z > urz) {
				urx, ury, urz, uri = x, y, z, i
			}
		}
		simplified = append(simplified, llx, lly, llz, lli)
		simplified = append(simplified, urx, ury, urz, uri)
	}

	insertPoint := func(pos int, pt [4]int32) {
		simplified = append(simplified, 0, 0, 0, 0)
		copy(simplified[(pos+1)*4:], simplified[pos*4:len(simplified)-4])
		copy(simplified[pos*4:], pt[:])
	}

	// Deviation pass: keep splitting edges until every raw vertex along a
	// tessellated side is within maxError of its simplified edge.
	for i := 0; i < len(simplified)/4; {
		ii := (i + 1) % (len(simplified) / 4)

		ax, az, ai := simplified[i*4+0], simplified[i*4+2], simplified[i*4+3]
		bx, bz, bi := simplified[ii*4+0], simplified[ii*4+2], simplified[ii*4+3]

		var maxd float32
		maxi := int32(-1)
		var ci, cinc, endi int32

		if bx > ax || (bx == ax && bz > az) {
			cinc = 1
			ci = (ai + cinc) % pn
			endi = bi
		} else {
			cinc = pn - 1
			ci = (bi + cinc) % pn
			endi = ai
			ax, bx = bx, ax
			az, bz = bz, az
		}

		if (points[ci*4+3]&ContourRegMask) == 0 || (points[ci*4+3]&AreaBorder) != 0 {
			for ci != endi {
				d := distancePtSeg(points[ci*4+0], points[ci*4+2], ax, az, bx, bz)
				if d > maxd {
					maxd = d
					maxi = ci
				}
				ci = (ci + cinc) % pn
			}
		}

		if maxi != -1 && maxd > maxError*maxError {
			insertPoint(i+1, [4]int32{points[maxi*4+0], points[maxi*4+1], points[maxi*4+2], maxi})
		} else {
			i++
		}
	}

	// Length-split pass.
	if maxEdgeLen > 0 && (buildFlags&(ContourTessWallEdges|ContourTessAreaEdges)) != 0 {
		for i := 0; i < len(simplified)/4; {
			ii := (i + 1) % (len(simplified) / 4)

			ax, az, ai := simplified[i*4+0], simplified[i*4+2], simplified[i*4+3]
			bx, bz, bi := simplified[ii*4+0], simplified[ii*4+2], simplified[ii*4+3]

			maxi := int32(-1)
			ci := (ai + 1) % pn

			tess := false
			if (buildFlags&ContourTessWallEdges) != 0 && (points[ci*4+3]&ContourRegMask) == 0 {
				tess = true
			}
			if (buildFlags&ContourTessAreaEdges) != 0 && (points[ci*4+3]&AreaBorder) != 0 {
				tess = true
			}

			if tess {
				dx := bx - ax
				dz := bz - az
				if dx*dx+dz*dz > maxEdgeLen*maxEdgeLen {
					var n int32
					if bi < ai {
						n = bi + pn - ai
					} else {
						n = bi - ai
					}
					if n > 1 {
						if bx > ax || (bx == ax && bz > az) {
							maxi = (ai + n/2) % pn
						} else {
							maxi = (ai + (n+1)/2) % pn
						}
					}
				}
			}

			if maxi != -1 {
				insertPoint(i+1, [4]int32{points[maxi*4+0], points[maxi*4+1], points[maxi*4+2], maxi})
			} else {
				i++
			}
		}
	}

	for i := 0; i < len(simplified)/4; i++ {
		ai := (simplified[i*4+3] + 1) % pn
		bi := simplified[i*4+3]
		simplified[i*4+3] = (points[ai*4+3] & (ContourRegMask | AreaBorder)) | (points[bi*4+3] & BorderVertex)
	}

	return simplified
}

func calcAreaOfPolygon2D(verts []int32, nverts int32) int32 {
	var area int32
	j := nverts - 1
	for i := int32(0); i < nverts; i++ {
		vi := verts[i*4:]
		vj := verts[j*4:]
		area += vi[0]*vj[2] - vj[0]*vi[2]
		j = i
	}
	return (area + 1) / 2
}

func vertsEqualXZ(verts []int32, i, j int32) bool {
	return verts[i*4+0] == verts[j*4+0] && verts[i*4+2] == verts[j*4+2]
}

// removeDegenerateSegments drops any simplified vertex equal on (x,z) to
// its cyclic successor.
func removeDegenerateSegments(simplified []int32) []int32 {
	npts := int32(len(simplified) / 4)
	for i := int32(0); i < npts; i++ {
		ni := (i + 1) % npts
		if vertsEqualXZ(simplified, i, ni) {
			simplified = append(simplified[:i*4], simplified[(i+1)*4:]...)
			npts--
			i--
		}
	}
	return simplified
}

func signedArea2(ax, az, bx, bz, cx, cz int32) int32 {
	return (bx-ax)*(cz-az) - (cx-ax)*(bz-az)
}

// leftOnXZ reports whether c lies on or to the left of the directed line
// a->b, in the x/z projection.
func leftOnXZ(ax, az, bx, bz, cx, cz int32) bool {
	return signedArea2(ax, az, bx, bz, cx, cz) <= 0
}

// mergeContourHoles finds every hole (negative-area) contour, locates its
// enclosing outer (same region id, positive area) contour, and splices it
// in via the closest mutually-visible vertex pair. Contours that cannot be
// merged (no outer found, or no admissible pair) are left untouched.
func mergeContourHoles(ctx *BuildContext, cset *ContourSet) {
	if cset.NConts == 0 {
		return
	}
	ctx.StartTimer(TimerMergeContourHoles)
	defer ctx.StopTimer(TimerMergeContourHoles)

	for hi := range cset.Conts {
		hole := &cset.Conts[hi]
		if hole.NVerts < 3 || calcAreaOfPolygon2D(hole.Verts, hole.NVerts) >= 0 {
			continue
		}

		outerIdx := -1
		for oi := range cset.Conts {
			outer := &cset.Conts[oi]
			if oi == hi || outer.Reg != hole.Reg || outer.NVerts < 3 {
				continue
			}
			if calcAreaOfPolygon2D(outer.Verts, outer.NVerts) > 0 {
				outerIdx = oi
				break
			}
		}
		if outerIdx == -1 {
			ctx.Warningf("mergeContourHoles: no outer contour for region %d", hole.Reg)
			continue
		}

		outer := &cset.Conts[outerIdx]
		bestI, bestJ, bestDist := int32(-1), int32(-1), int32(0)
		n := outer.NVerts
		for i := int32(0); i < n; i++ {
			prevI := (i - 1 + n) % n
			nextI := (i + 1) % n
			ax, az := outer.Verts[i*4+0], outer.Verts[i*4+2]
			pax, paz := outer.Verts[prevI*4+0], outer.Verts[prevI*4+2]
			nax, naz := outer.Verts[nextI*4+0], outer.Verts[nextI*4+2]

			for j := int32(0); j < hole.NVerts; j++ {
				cx, cz := hole.Verts[j*4+0], hole.Verts[j*4+2]
				if !leftOnXZ(pax, paz, ax, az, cx, cz) || !leftOnXZ(ax, az, nax, naz, cx, cz) {
					continue
				}
				dx := ax - cx
				dz := az - cz
				dist := dx*dx + dz*dz
				if bestI == -1 || dist < bestDist {
					bestI, bestJ, bestDist = i, j, dist
				}
			}
		}

		if bestI == -1 {
			ctx.Warningf("mergeContourHoles: no visible bridge for region %d", hole.Reg)
			continue
		}

		spliceHole(outer, hole, bestI, bestJ)
	}
}

// spliceHole rewrites outer's vertex array to include hole's vertices,
// entering and leaving at the admissible (i,j) bridge, duplicating both
// endpoints to produce the zero-width seam. hole's own array is emptied;
// the caller keeps the now-empty contour in place (degenerate, filtered out
// by any downstream consumer that checks NVerts).
func spliceHole(outer, hole *Contour, i, j int32) {
	nOuter := outer.NVerts
	nHole := hole.NVerts
	merged := make([]int32, (nOuter+nHole+2)*4)

	var nv int32
	for k := int32(0); k <= nOuter; k++ {
		src := outer.Verts[((i+k)%nOuter)*4:]
		copy(merged[nv*4:nv*4+4], src[:4])
		nv++
	}
	for k := int32(0); k <= nHole; k++ {
		src := hole.Verts[((j+k)%nHole)*4:]
		copy(merged[nv*4:nv*4+4], src[:4])
		nv++
	}

	outer.Verts = merged
	outer.NVerts = nv
	hole.Verts = nil
	hole.NVerts = 0
}
