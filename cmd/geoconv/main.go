// Command geoconv converts coordinates between reference systems described
// in a TOML or YAML frames file.
package main

import (
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
