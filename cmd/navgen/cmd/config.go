package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wayfare-nav/navgen/recast"
)

// configCmd writes a build settings file prefilled with recast.DefaultConfig.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a build settings file",
	Long: `Create a build settings file in YAML format, prefilled with
default values. If FILE is not provided, 'navgen.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "navgen.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}

		data, err := yaml.Marshal(recast.DefaultConfig())
		if err != nil {
			fmt.Println("marshaling default config:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Println("writing", path, ":", err)
			os.Exit(1)
		}
		fmt.Printf("build settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
