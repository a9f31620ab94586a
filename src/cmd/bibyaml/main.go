package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibyaml/src/cmd/bibyaml/imagescmd"
	"bibyaml/src/cmd/bibyaml/standardizecmd"
)

var rootCmd = &cobra.Command{
	Use:   "bibyaml",
	Short: "Round-trip tools for YAML record collections (layout standardizing, image thumbnails)",
}

func execute() error {
	rootCmd.AddCommand(standardizecmd.New())
	rootCmd.AddCommand(imagescmd.New())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
