// Command navgen builds detour navigation mesh tiles from pre-partitioned
// compact heightfield fixtures.
package main

import "github.com/wayfare-nav/navgen/cmd/navgen/cmd"

func main() {
	cmd.Execute()
}
