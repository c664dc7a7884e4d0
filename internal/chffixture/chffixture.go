// Package chffixture loads a recast.CompactHeightfield from a YAML
// description. Rasterizing raw geometry into a compact heightfield is
// outside this module's scope, so fixtures and the CLI's demo build both
// need some way to hand in a fully-formed field; this is that way.
package chffixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayfare-nav/navgen/recast"
)

// Span is one voxel span within a fixture cell, in the order fixtures list
// them bottom-up. Con holds the per-direction neighbour span offset (or -1
// for NotConnected), indexed west, north, east, south.
type Span struct {
	Y    uint16 `yaml:"y"`
	Reg  uint16 `yaml:"reg"`
	Area uint8  `yaml:"area"`
	Con  [4]int `yaml:"con"`
}

// Cell is the list of spans stacked at one (x, z) grid column.
type Cell struct {
	Spans []Span `yaml:"spans"`
}

// File is the on-disk fixture shape: a full grid of cells plus the
// heightfield-level metadata CompactHeightfield carries alongside them.
type File struct {
	Width      int32      `yaml:"width"`
	Height     int32      `yaml:"height"`
	BorderSize int32      `yaml:"border_size"`
	MaxRegions uint16     `yaml:"max_regions"`
	BMin       [3]float32 `yaml:"bmin"`
	BMax       [3]float32 `yaml:"bmax"`
	Cs         float32    `yaml:"cs"`
	Ch         float32    `yaml:"ch"`
	Cells      []Cell     `yaml:"cells"` // length must equal width*height, row-major (x + z*width)
}

// Load reads and decodes a fixture file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chffixture: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("chffixture: decoding %s: %w", path, err)
	}
	return &f, nil
}

// Build converts a decoded fixture into a recast.CompactHeightfield,
// packing each span's per-direction Con fields via recast.SetCon.
func (f *File) Build() (*recast.CompactHeightfield, error) {
	if int32(len(f.Cells)) != f.Width*f.Height {
		return nil, fmt.Errorf("chffixture: cells length %d does not match width*height %d", len(f.Cells), f.Width*f.Height)
	}

	chf := &recast.CompactHeightfield{
		Width:      f.Width,
		Height:     f.Height,
		BorderSize: f.BorderSize,
		MaxRegions: f.MaxRegions,
		BMin:       f.BMin,
		BMax:       f.BMax,
		Cs:         f.Cs,
		Ch:         f.Ch,
		Cells:      make([]recast.CompactCell, len(f.Cells)),
	}

	var index uint32
	for i, cell := range f.Cells {
		chf.Cells[i] = recast.CompactCell{Index: index, Count: uint8(len(cell.Spans))}
		for _, s := range cell.Spans {
			span := recast.CompactSpan{Y: s.Y, Reg: s.Reg}
			for dir, con := range s.Con {
				if con < 0 {
					recast.SetCon(&span, int32(dir), recast.NotConnected)
				} else {
					recast.SetCon(&span, int32(dir), int32(con))
				}
			}
			chf.Spans = append(chf.Spans, span)
			chf.Areas = append(chf.Areas, s.Area)
		}
		index += uint32(len(cell.Spans))
	}
	chf.SpanCount = int32(len(chf.Spans))

	return chf, nil
}
