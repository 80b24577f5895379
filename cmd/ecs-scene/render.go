package main

import (
	"fmt"
	"image/color"
	"io"
	"text/tabwriter"

	ebitengine "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/scene/ecs"
)

const baseSpriteSize = 8

var background = color.RGBA{245, 245, 240, 255}

func drawScene(scene *ecs.Scene, screen *ebitengine.Image) {
	screen.Fill(background)
	for _, item := range ecs.Each2[Position, Sprite](scene) {
		pos, sprite := item.C1, item.C2
		c := color.RGBA{sprite.Color[0], sprite.Color[1], sprite.Color[2], 255}
		size := baseSpriteSize * max(sprite.Scale, 0.1)

		switch sprite.Shape {
		case ShapeSquare:
			vector.DrawFilledRect(screen, pos.X-size/2, pos.Y-size/2, size, size, c, false)
		default:
			vector.DrawFilledCircle(screen, pos.X, pos.Y, size/2, c, false)
		}
	}
}

// Generate writes the report as aligned plain text.
func (r *Report) Generate(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Frames:\t%d\n", r.Frames)
	fmt.Fprintf(tw, "Live entities:\t%d\n", r.Scene.LiveEntityCount)
	fmt.Fprintf(tw, "Rows:\t%d (%d free)\n", r.Scene.RowCount, r.Scene.FreeSlotCount)
	fmt.Fprintf(tw, "Singletons:\t%d\n", r.Scene.SingletonCount)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "COMPONENT\tCOUNT\tBLOCKS\tCAPACITY")
	for _, c := range r.Scene.Components {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", c.Name, c.Count, c.Blocks, c.Capacity)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SYSTEM\tRUNS\tAVG\tMAX")
	for _, s := range r.Scheduler.Systems {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Name, s.ExecutionCount, s.AvgDuration, s.MaxDuration)
	}
	return tw.Flush()
}
