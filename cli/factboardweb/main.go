package main

import (
	"os"

	servecmder "github.com/papercomputeco/factboard/cmd/factboard/serve"
	"github.com/papercomputeco/factboard/cmd/factboard/setup"
)

func main() {
	cmd := servecmder.NewServeCmd()

	cmd.Use = "factboardweb"
	cmd.SilenceUsage = true
	setup.AddPersistentFlags(cmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
