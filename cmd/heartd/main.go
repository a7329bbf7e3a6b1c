package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "heartd",
		Short:        "Herz der Farben",
		Long:         "heartd draws a heart of randomly colored cells and cycles through named color themes.",
		SilenceUsage: true,
	}
	root.AddCommand(serveCommand(), renderCommand(), themesCommand())
	return root
}
