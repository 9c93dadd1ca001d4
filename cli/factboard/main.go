package main

import (
	"os"

	factboardcmder "github.com/papercomputeco/factboard/cmd/factboard"
)

func main() {
	cmd := factboardcmder.NewFactboardCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
