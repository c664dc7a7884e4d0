package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wayfare-nav/navgen/internal/chffixture"
	"github.com/wayfare-nav/navgen/internal/meshfixture"
	"github.com/wayfare-nav/navgen/internal/tilebuild"
	"github.com/wayfare-nav/navgen/recast"
)

var (
	inputVal     string
	polyInputVal string
	tileXVal     int32
	tileYVal     int32
	userIDVal    uint32
	verbose      bool
)

// buildCmd traces, simplifies and merges region boundaries from a compact
// heightfield fixture, then serializes a tile from that region data plus a
// polygon mesh fixture standing in for an upstream polygoniser's output.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a navigation mesh tile from a compact heightfield and polygon mesh fixture",
	Long: `Build a navigation mesh tile from a compact heightfield fixture and a
polygon mesh fixture, both in YAML. Build process is controlled by the
settings file bound with --config (falls back to recast.DefaultConfig()
if none is found). The resulting tile is written to OUTFILE in the binary
layout read by go-detour.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputVal == "" {
			return fmt.Errorf("--input is required")
		}
		if polyInputVal == "" {
			return fmt.Errorf("--poly-input is required")
		}

		cfg := recast.DefaultConfig()
		if viper.ConfigFileUsed() != "" {
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("unmarshaling build settings: %w", err)
			}
		}

		fixture, err := chffixture.Load(inputVal)
		if err != nil {
			return err
		}
		chf, err := fixture.Build()
		if err != nil {
			return err
		}

		meshFixture, err := meshfixture.Load(polyInputVal)
		if err != nil {
			return err
		}
		mesh, err := meshFixture.Build()
		if err != nil {
			return err
		}

		ctx := recast.NewBuildContext(verbose)
		result, err := tilebuild.Build(ctx, chf, mesh, cfg, tileXVal, tileYVal, userIDVal)
		if verbose {
			for _, m := range ctx.Messages() {
				fmt.Println(m)
			}
		}
		if err != nil {
			return fmt.Errorf("building tile: %w", err)
		}

		if err := os.WriteFile(args[0], result.TileData, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}

		fmt.Printf("%s: %d contours, %d polys, %d bytes\n",
			args[0], result.Contours.NConts, mesh.NPolys, len(result.TileData))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&inputVal, "input", "", "compact heightfield fixture (YAML, required)")
	buildCmd.Flags().StringVar(&polyInputVal, "poly-input", "", "polygon mesh fixture (YAML, required)")
	buildCmd.Flags().Int32Var(&tileXVal, "tile-x", 0, "tile X coordinate stored in the header")
	buildCmd.Flags().Int32Var(&tileYVal, "tile-y", 0, "tile Y coordinate stored in the header")
	buildCmd.Flags().Uint32Var(&userIDVal, "user-id", 0, "tile user id stored in the header")
	buildCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print build progress")
}
