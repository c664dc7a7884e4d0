package recast

// buildRectCHF constructs a CompactHeightfield over a w x h grid of unit
// cells, one span per non-blocked cell, all at height 0 and region reg.
// blocked cells get no span and no region, carving holes or notches out of
// an otherwise solid rectangle.
func buildRectCHF(w, h int32, reg uint16, blocked map[[2]int32]bool) *CompactHeightfield {
	chf := &CompactHeightfield{
		Width:  w,
		Height: h,
		BMin:   [3]float32{0, 0, 0},
		BMax:   [3]float32{float32(w), 1, float32(h)},
		Cs:     1,
		Ch:     1,
		Cells:  make([]CompactCell, w*h),
	}

	var index uint32
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			ci := x + y*w
			if blocked[[2]int32{x, y}] {
				chf.Cells[ci] = CompactCell{Index: index, Count: 0}
				continue
			}
			chf.Cells[ci] = CompactCell{Index: index, Count: 1}
			chf.Spans = append(chf.Spans, CompactSpan{Y: 0, Reg: reg})
			chf.Areas = append(chf.Areas, WalkableArea)
			index++
		}
	}
	chf.SpanCount = int32(len(chf.Spans))

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if blocked[[2]int32{x, y}] {
				continue
			}
			s := &chf.Spans[chf.Cells[x+y*w].Index]
			for dir := int32(0); dir < 4; dir++ {
				nx := x + GetDirOffsetX(dir)
				ny := y + GetDirOffsetY(dir)
				if nx < 0 || nx >= w || ny < 0 || ny >= h || blocked[[2]int32{nx, ny}] {
					SetCon(s, dir, NotConnected)
					continue
				}
				SetCon(s, dir, 0)
			}
		}
	}

	return chf
}
