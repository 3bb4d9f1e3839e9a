package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/catasim/internal/catapult"
)

// TrajectoryToSVG draws a flight path with the ground line at y = 0.
// Fewer than two points produce an empty string.
func TrajectoryToSVG(points []catapult.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds, always including the launch height
	minX, maxX := points[0].X, points[0].X
	minY, maxY := 0.0, 0.0
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, toY(0), width, toY(0), strokeColor))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(p.X), toY(p.Y)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(p.X), toY(p.Y)))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
