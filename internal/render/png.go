package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"mail-route-service/internal/domain"
)

const (
	pngEdge     = 20
	pngCell     = 20
	pngStopSize = 1
	pngHubSize  = 5
)

// WritePNG draws centers as black squares and every route as a polyline in
// its own color. Colors depend only on the route index.
func WritePNG(w io.Writer, res *domain.PlanResult) error {
	width := 2*pngEdge + res.Grid.Width*pngCell
	height := 2*pngEdge + res.Grid.Height*pngCell
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, c := range res.Centers {
		fillSquare(img, pixelOf(res.Grid, c), pngHubSize, color.Black)
	}

	for i, rp := range res.Routes {
		if len(rp.Stops) == 0 {
			continue
		}
		col := routeColor(i)
		from := pixelOf(res.Grid, rp.Stops[0])
		fillSquare(img, from, pngStopSize, col)
		for _, p := range rp.Stops[1:] {
			to := pixelOf(res.Grid, p)
			drawLine(img, from, to, col)
			fillSquare(img, to, pngStopSize, col)
			from = to
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func pixelOf(g domain.Grid, p domain.Point) image.Point {
	c := g.CoordinatesOf(p)
	return image.Pt(pngEdge+c.Col*pngCell, pngEdge+c.Row*pngCell)
}

func fillSquare(img *image.RGBA, at image.Point, size int, c color.Color) {
	r := image.Rect(at.X-size, at.Y-size, at.X+size+1, at.Y+size+1)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLine rasterises a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, a, b image.Point, c color.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		img.Set(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// routeColor spreads hues with the golden angle so neighbouring indexes differ.
func routeColor(i int) color.RGBA {
	h := math.Mod(float64(i)*137.508, 360)
	return hsvToRGB(h, 0.75, 0.85)
}

func hsvToRGB(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
