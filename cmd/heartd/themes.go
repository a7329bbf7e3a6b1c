package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"heart-of-colors/internal/theme"
)

func themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the themes in traversal order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listThemes(cmd.OutOrStdout(), theme.Default())
		},
	}
}

func listThemes(w io.Writer, themes *theme.Registry) error {
	r := lipgloss.NewRenderer(w)
	for i, name := range themes.Names() {
		palette, err := themes.Palette(name)
		if err != nil {
			return err
		}
		swatches := make([]string, 0, len(palette))
		for _, hex := range palette {
			swatches = append(swatches, r.NewStyle().Background(lipgloss.Color(hex)).Render("  ")+" "+hex)
		}
		if _, err := fmt.Fprintf(w, "%2d  %-26s %s\n", i, name, strings.Join(swatches, " ")); err != nil {
			return err
		}
	}
	return nil
}
