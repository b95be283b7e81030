package main

import (
	"os"

	dropletcmd "github.com/dropletstack/provision/pkg/dropletctl/cmd"
)

func main() {
	root := dropletcmd.NewRootCommand(dropletcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
