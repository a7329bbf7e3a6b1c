package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"heart-of-colors/internal/gallery"
	"heart-of-colors/internal/pattern"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/theme"
)

type renderFlags struct {
	theme    string
	out      string
	seed     uint64
	cellSize int
	gap      int
}

func renderCommand() *cobra.Command {
	flags := renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one heart as a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderPNG(cmd.OutOrStdout(), flags)
		},
	}
	themes := theme.Default()
	cmd.Flags().StringVarP(&flags.theme, "theme", "t", themes.Names()[0], "theme name")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", `output file, "-" for stdout`)
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "color seed; 0 picks colors at random")
	cmd.Flags().IntVar(&flags.cellSize, "cell-size", render.DefaultCellSize, "cell side in pixels")
	cmd.Flags().IntVar(&flags.gap, "gap", render.DefaultGap, "pixels between cells")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func renderPNG(stdout io.Writer, flags renderFlags) error {
	themes := theme.Default()
	cursor, err := themes.Index(flags.theme)
	if err != nil {
		return err
	}

	var src render.Source
	if flags.seed != 0 {
		src = render.NewSeededSource(flags.seed)
	}
	g := gallery.New(themes, pattern.Heart, render.Options{CellSize: flags.cellSize, Gap: flags.gap})
	frame, err := g.Frame(cursor, src)
	if err != nil {
		return err
	}

	if flags.out == "-" {
		return render.EncodePNG(stdout, frame.Image)
	}
	f, err := os.Create(flags.out)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, frame.Image); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", flags.out, err)
	}
	return f.Close()
}
