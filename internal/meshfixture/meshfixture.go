// Package meshfixture loads a polygon mesh from a human-writable YAML file.
//
// Triangulating region contours into polygons and merging them is an
// upstream concern this module does not implement (see recast.PolyMesh);
// meshfixture exists only so tests and the CLI have a way to hand tile
// assembly a polygon mesh without a full polygoniser, the same role
// internal/chffixture plays for compact heightfields.
package meshfixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayfare-nav/navgen/recast"
)

// Edge is one polygon edge's "extra info" code in source form. Exactly one
// of PortalDir or Neighbor should be set; neither set means a non-portal
// border edge (dir 0xf).
type Edge struct {
	Neighbor  *int32 `yaml:"neighbor,omitempty"`
	PortalDir *int32 `yaml:"portal_dir,omitempty"`
}

// Poly is one polygon: vertex indices and, parallel to them, the edge that
// follows each vertex.
type Poly struct {
	Verts []uint16 `yaml:"verts"`
	Edges []Edge   `yaml:"edges"`
	Reg   uint16   `yaml:"reg"`
	Area  uint8    `yaml:"area"`
	Flags uint16   `yaml:"flags"`
}

// File is the on-disk shape of a polygon mesh fixture.
type File struct {
	Nvp   int32       `yaml:"nvp"`
	BMin  [3]float32  `yaml:"bmin"`
	BMax  [3]float32  `yaml:"bmax"`
	Cs    float32     `yaml:"cs"`
	Ch    float32     `yaml:"ch"`
	Verts [][3]uint16 `yaml:"verts"`
	Polys []Poly      `yaml:"polys"`
}

// Load reads and parses a polygon mesh fixture.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("meshfixture: reading %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("meshfixture: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Build converts the fixture into a recast.PolyMesh.
func (f *File) Build() (*recast.PolyMesh, error) {
	if f.Nvp <= 0 {
		return nil, fmt.Errorf("meshfixture: nvp must be positive")
	}

	mesh := &recast.PolyMesh{
		Nvp:    f.Nvp,
		BMin:   f.BMin,
		BMax:   f.BMax,
		Cs:     f.Cs,
		Ch:     f.Ch,
		NVerts: int32(len(f.Verts)),
		NPolys: int32(len(f.Polys)),
		Regs:   make([]uint16, len(f.Polys)),
		Areas:  make([]uint8, len(f.Polys)),
		Flags:  make([]uint16, len(f.Polys)),
	}

	mesh.Verts = make([]uint16, len(f.Verts)*3)
	for i, v := range f.Verts {
		mesh.Verts[i*3+0] = v[0]
		mesh.Verts[i*3+1] = v[1]
		mesh.Verts[i*3+2] = v[2]
	}

	mesh.Polys = make([]uint16, int(f.Nvp)*2*len(f.Polys))
	for i := range mesh.Polys {
		mesh.Polys[i] = recast.MeshNullIdx
	}

	for pi, p := range f.Polys {
		if len(p.Verts) > int(f.Nvp) {
			return nil, fmt.Errorf("meshfixture: polygon %d has %d verts, exceeds nvp %d", pi, len(p.Verts), f.Nvp)
		}
		if len(p.Edges) != len(p.Verts) {
			return nil, fmt.Errorf("meshfixture: polygon %d has %d verts but %d edges", pi, len(p.Verts), len(p.Edges))
		}
		base := mesh.Polys[pi*int(f.Nvp)*2:]
		for j, v := range p.Verts {
			base[j] = v
			e := p.Edges[j]
			switch {
			case e.PortalDir != nil:
				base[int(f.Nvp)+j] = 0x8000 | uint16(*e.PortalDir)
			case e.Neighbor != nil:
				base[int(f.Nvp)+j] = uint16(*e.Neighbor)
			default:
				base[int(f.Nvp)+j] = 0x8000 | 0xf
			}
		}
		mesh.Regs[pi] = p.Reg
		mesh.Areas[pi] = p.Area
		mesh.Flags[pi] = p.Flags
	}

	return mesh, nil
}
