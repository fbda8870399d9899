package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// SVG Renderer
// ============================================================

// RenderSVG сериализует сцену в SVG. Зум — один масштаб на весь слой,
// не поэлементный.
func RenderSVG(scene *Scene) (string, error) {
	if scene == nil {
		return "", fmt.Errorf("scene is nil")
	}

	outerW := scene.Width * scene.Zoom
	outerH := scene.Height * scene.Zoom

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(outerW), formatFloat(outerH), formatFloat(outerW), formatFloat(outerH)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf(`  <g transform="scale(%s)">`, formatFloat(scene.Zoom)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf(`    <rect x="0" y="0" width="%s" height="%s" fill="%s" />`,
		formatFloat(scene.Width), formatFloat(scene.Height), ColorBackground))
	b.WriteString("\n")

	for _, line := range scene.Grid {
		b.WriteString(fmt.Sprintf(`    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="0.5" />`,
			formatFloat(line.X1), formatFloat(line.Y1), formatFloat(line.X2), formatFloat(line.Y2), ColorGrid))
		b.WriteString("\n")
	}

	for _, label := range scene.Labels {
		color := ColorLabel
		if label.Selected {
			color = ColorLabelActive
		}
		b.WriteString(fmt.Sprintf(`    <text data-row="%s" x="%s" y="%s" fill="%s" font-size="12" dominant-baseline="middle">%s</text>`,
			label.RowID, formatFloat(label.X), formatFloat(label.Y), color, escapeText(label.Text)))
		b.WriteString("\n")
	}

	for _, seat := range scene.Seats {
		stroke := ColorSeatStroke
		if seat.Selected {
			stroke = ColorSeatSelected
		}
		b.WriteString(fmt.Sprintf(`    <g data-seat="%s" data-row="%s">`, seat.SeatID, seat.RowID))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(`      <rect x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s" stroke="%s"><title>%s</title></rect>`,
			formatFloat(seat.X), formatFloat(seat.Y), formatFloat(seat.Size), formatFloat(seat.Size),
			seat.Fill, stroke, escapeText(seat.Tooltip)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(`      <text x="%s" y="%s" font-size="8" fill="%s" text-anchor="middle" dominant-baseline="middle">%d</text>`,
			formatFloat(seat.X+seat.Size/2), formatFloat(seat.Y+seat.Size/2), ColorLabel, seat.OrderNumber))
		b.WriteString("\n")
		b.WriteString("    </g>\n")
	}

	b.WriteString("  </g>\n")
	b.WriteString(`</svg>`)
	return b.String(), nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
