package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/Faultbox/sandrunner/internal/engine/texture"
	"github.com/Faultbox/sandrunner/internal/sprite"
)

// sheet adapts a decoded image to sprite.Texture.
type sheet struct {
	img *image.RGBA
}

func (s sheet) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func newAtlasCmd() *cobra.Command {
	var rows, columns, frames uint32
	cmd := &cobra.Command{
		Use:   "atlas <image>",
		Short: "Print the frame cells of a sprite sheet",
		Long: `Cut a sprite sheet into a rows x columns grid and print the source
rectangle and average colour of each frame, in playback order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := texture.Load(args[0])
			if err != nil {
				return err
			}
			atlas, err := sprite.NewAtlas(sheet{img}, frames, rows, columns)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w, h := atlas.Texture().Size()
			cell := atlas.CellSize()
			fmt.Fprintf(out, "%s: %dx%d, %d frames of %dx%d\n", args[0], w, h, atlas.Frames(), cell.W, cell.H)
			for i := uint32(0); i < atlas.Frames(); i++ {
				r := atlas.Cell(i)
				c := texture.Average(img, image.Rect(r.X, r.Y, r.Right(), r.Bottom()))
				fmt.Fprintf(out, "  %2d  x=%-5d y=%-5d w=%-5d h=%-5d  #%02x%02x%02x%02x\n", i, r.X, r.Y, r.W, r.H, c.R, c.G, c.B, c.A)
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&rows, "rows", 1, "Grid rows")
	cmd.Flags().Uint32Var(&columns, "columns", 1, "Grid columns")
	cmd.Flags().Uint32Var(&frames, "frames", 1, "Frames in use")
	return cmd
}
