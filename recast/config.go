package recast

// Config carries the build settings of a tile build. A CompactHeightfield
// already encodes most of the voxel grid's own geometry (Width, Height, Cs,
// Ch, BMin/BMax, BorderSize); Config supplies the knobs that steer contour
// simplification and polygon assembly on top of it.
type Config struct {
	// BorderSize is the non-navigable margin baked into the heightfield.
	// It is carried in the settings file but not read by any stage:
	// BuildContours takes the margin from CompactHeightfield.BorderSize.
	// [Limit: >=0] [Units: vx]
	BorderSize int32 `yaml:"border_size" mapstructure:"border_size"`

	// TileSize is the width/height of a tile on the xz-plane. It is carried
	// in the settings file but not read by any stage; a build assembles one
	// tile from the whole heightfield it is given, without slicing it.
	// [Limit: >=0] [Units: vx]
	TileSize int32 `yaml:"tile_size" mapstructure:"tile_size"`

	// MaxEdgeLen is the maximum length a tessellated contour edge may
	// reach before simplifyContour splits it. Zero disables length-based
	// tessellation regardless of BuildFlags.
	// [Limit: >=0] [Units: vx]
	MaxEdgeLen int32 `yaml:"max_edge_len" mapstructure:"max_edge_len"`

	// MaxSimplificationError bounds how far a simplified edge may
	// deviate from the raw contour trace. [Limit: >=0] [Units: vx]
	MaxSimplificationError float32 `yaml:"max_simplification_error" mapstructure:"max_simplification_error"`

	// BuildFlags selects which edge classes get length-tessellated; see
	// ContourTessWallEdges / ContourTessAreaEdges.
	BuildFlags int32 `yaml:"build_flags" mapstructure:"build_flags"`

	// MaxVertsPerPoly is the polygon fan size the upstream polygoniser is
	// expected to respect; tile assembly rejects a supplied PolyMesh whose
	// Nvp exceeds it. [Limit: >= 3, and <= 6 if feeding Detour tiles]
	MaxVertsPerPoly int32 `yaml:"max_verts_per_poly" mapstructure:"max_verts_per_poly"`
}

// DefaultConfig returns parameter values representative of a human-scale
// agent on a quarter-meter voxel grid.
func DefaultConfig() Config {
	return Config{
		BorderSize:             0,
		TileSize:               0,
		MaxEdgeLen:             12,
		MaxSimplificationError: 1.3,
		BuildFlags:             ContourTessWallEdges,
		MaxVertsPerPoly:        6,
	}
}
