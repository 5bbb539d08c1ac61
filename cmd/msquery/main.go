// MSQuery - mass spectrometry simulation and data exploration tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/msquery/cmd/msquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
