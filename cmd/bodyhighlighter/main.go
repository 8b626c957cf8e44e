// bodyhighlighter renders muscle highlight diagrams from exercise files and serves the
// interactive demo.
package main

import (
	"os"

	"github.com/fitglue/bodyhighlighter/cmd/bodyhighlighter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
