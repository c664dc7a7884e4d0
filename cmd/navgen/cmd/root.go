package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd is the base command invoked when navgen is called without a
// subcommand.
var RootCmd = &cobra.Command{
	Use:   "navgen",
	Short: "build navigation mesh tiles from compact heightfield fixtures",
	Long: `navgen turns a pre-partitioned compact heightfield and an
externally supplied polygon mesh into a detour navigation mesh tile:
	- trace and simplify region contours,
	- merge contour holes into their enclosing region,
	- assemble the supplied polygon mesh into a tile,
	- serialize the result as a binary tile.

Rasterizing raw geometry, watershed region partitioning, and
triangulating contours into polygons happen upstream of navgen; it
consumes a YAML compact heightfield fixture and a YAML polygon mesh
fixture.`,
}

// Execute runs RootCmd; subcommands attach themselves to it in their own
// init functions. Called once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "build settings file (default navgen.yml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("navgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("NAVGEN")
	viper.AutomaticEnv()
	// A missing config file is not fatal; commands fall back to
	// recast.DefaultConfig().
	_ = viper.ReadInConfig()
}
