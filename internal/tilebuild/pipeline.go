// Package tilebuild wires recast's contour stage to detour's tile
// serializer, instrumenting each stage for Prometheus.
package tilebuild

import (
	"fmt"
	"time"

	"github.com/wayfare-nav/navgen/detour"
	"github.com/wayfare-nav/navgen/internal/metrics"
	"github.com/wayfare-nav/navgen/recast"
)

// Result bundles a tile build's intermediate and final artifacts so callers
// (tests, the CLI's build summary) can inspect a stage without re-running it.
type Result struct {
	Contours *recast.ContourSet
	TileData []byte
}

// Build traces and simplifies region boundaries from chf (recast's
// contour-extraction stage), then assembles a tile from mesh, the polygon
// mesh an upstream polygoniser produced from those same regions. Turning
// contours into polygons is outside this package's scope; mesh is read-only
// input, borrowed for the duration of the build the same way chf is.
// tileX/tileY/userID locate the resulting tile within a multi-tile mesh;
// pass zero for all three when building a single-tile mesh.
func Build(ctx *recast.BuildContext, chf *recast.CompactHeightfield, mesh *recast.PolyMesh, cfg recast.Config, tileX, tileY int32, userID uint32) (*Result, error) {
	start := time.Now()
	cset := recast.BuildContours(ctx, chf, cfg.MaxSimplificationError, cfg.MaxEdgeLen, cfg.BuildFlags)
	metrics.StageDuration.WithLabelValues("contours").Observe(time.Since(start).Seconds())
	metrics.ContoursPerTile.Observe(float64(cset.NConts))

	if cset.NConts == 0 {
		metrics.TilesBuiltTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tilebuild: no contours traced from heightfield")
	}

	if mesh == nil || mesh.NPolys == 0 {
		metrics.TilesBuiltTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tilebuild: no polygon mesh supplied")
	}
	if mesh.Nvp > cfg.MaxVertsPerPoly {
		metrics.TilesBuiltTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tilebuild: mesh.Nvp %d exceeds configured MaxVertsPerPoly %d", mesh.Nvp, cfg.MaxVertsPerPoly)
	}
	metrics.PolysPerTile.Observe(float64(mesh.NPolys))

	start = time.Now()
	data, err := assembleTile(mesh, tileX, tileY, userID)
	metrics.StageDuration.WithLabelValues("assemble").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TilesBuiltTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.TileDataBytes.Observe(float64(len(data)))
	metrics.TilesBuiltTotal.WithLabelValues("ok").Inc()

	return &Result{Contours: cset, TileData: data}, nil
}

// assembleTile adapts a PolyMesh into detour's NavMeshCreateParams shape and
// serializes it. Polygon flags are passed through from mesh and no off-mesh
// connections or detail mesh are attached; a richer pipeline stage can
// populate NavMeshCreateParams directly and call detour.CreateNavMeshData
// itself when those are needed.
func assembleTile(mesh *recast.PolyMesh, tileX, tileY int32, userID uint32) ([]byte, error) {
	params := &detour.NavMeshCreateParams{
		Verts:       mesh.Verts,
		VertCount:   mesh.NVerts,
		Polys:       mesh.Polys,
		PolyFlags:   mesh.Flags,
		PolyAreas:   mesh.Areas,
		PolyCount:   mesh.NPolys,
		Nvp:         mesh.Nvp,
		UserID:      userID,
		TileX:       tileX,
		TileY:       tileY,
		BMin:        mesh.BMin,
		BMax:        mesh.BMax,
		Cs:          mesh.Cs,
		Ch:          mesh.Ch,
		BuildBvTree: true,
	}
	return detour.CreateNavMeshData(params)
}
