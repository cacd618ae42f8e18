package main

import (
	"os"

	"github.com/warp/region-engine/cmd/regionctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
