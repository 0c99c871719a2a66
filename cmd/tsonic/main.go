// Command tsonic is the compiler CLI's entry point, a thin main that
// defers everything to cmd.Execute.
package main

import (
	"os"

	"github.com/tsoniclang/tsonic/cmd/tsonic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
