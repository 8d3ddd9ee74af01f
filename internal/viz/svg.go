package viz

import (
	"fmt"
	"strings"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, svgBackground)
}

// CanvasToSVG renders every lit braille dot as a circle, scale pixels
// apart.
func CanvasToSVG(cv *Canvas, scale float64) string {
	if cv == nil {
		return ""
	}

	var sb strings.Builder
	svgHeader(&sb, float64(cv.PixelWidth())*scale, float64(cv.PixelHeight())*scale)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	r := scale * 0.4
	for y := 0; y < cv.PixelHeight(); y++ {
		for x := 0; x < cv.PixelWidth(); x++ {
			if cv.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WireframeToSVG projects the line index buffer through cam onto a w x h
// image as one path of segments.
func WireframeToSVG(cam *Camera, positions []float64, lines []uint32, w, h int, stroke string) string {
	var sb strings.Builder
	svgHeader(&sb, float64(w), float64(h))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="`, stroke)

	n := uint32(len(positions) / 3)
	first := true
	for i := 0; i+1 < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		if a >= n || b >= n {
			continue
		}
		x1, y1, _, ok1 := cam.ProjectF(vertex(positions, a), w, h)
		x2, y2, _, ok2 := cam.ProjectF(vertex(positions, b), w, h)
		if !ok1 || !ok2 {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "M%.1f,%.1f L%.1f,%.1f", x1, y1, x2, y2)
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}
