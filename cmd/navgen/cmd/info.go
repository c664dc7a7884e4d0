package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"

	"github.com/wayfare-nav/navgen/detour"
)

// infoCmd dumps a serialized tile's header fields.
var infoCmd = &cobra.Command{
	Use:   "info TILEFILE",
	Short: "show header fields of a built navigation mesh tile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		hdr, err := detour.DecodeHeader(data)
		if err != nil {
			return err
		}
		for _, f := range structs.New(hdr).Fields() {
			fmt.Printf("%-16s %v\n", f.Name(), f.Value())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
