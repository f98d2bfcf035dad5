package commands

import (
	"fmt"
	"path/filepath"

	"github.com/matttelliott/bookmarker-ai/internal/config"
)

// DefaultConfigFile is written by init when neither --config nor --output is given.
const DefaultConfigFile = "bookmarker.yaml"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	switch {
	case i.Output != "":
		path = filepath.Join(i.Output, DefaultConfigFile)
	case path == "":
		path = DefaultConfigFile
	}

	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
