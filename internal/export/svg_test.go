package export

import (
	"strings"
	"testing"

	"github.com/BartoszBartmanski/StoSpa2/internal/tui"
)

func TestCanvasToSVGNilCanvas(t *testing.T) {
	if got := CanvasToSVG(nil, 4.0); got != "" {
		t.Fatalf("CanvasToSVG(nil) = %q, want empty string", got)
	}
}

func TestCanvasToSVGProducesValidXMLHeader(t *testing.T) {
	c := tui.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	svg := CanvasToSVG(c, 4.0)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Fatalf("SVG does not start with an XML header: %q", svg[:min(40, len(svg))])
	}
	if !strings.Contains(svg, "<circle") {
		t.Fatal("SVG has no circles despite lit pixels")
	}
}

func TestSeriesToSVGRequiresAtLeastTwoPoints(t *testing.T) {
	if got := SeriesToSVG([]SeriesPoint{{X: 0, Y: 0}}, 100, 100, "#fff"); got != "" {
		t.Fatalf("SeriesToSVG() with one point = %q, want empty", got)
	}
}

func TestSeriesToSVGDrawsPolyline(t *testing.T) {
	points := []SeriesPoint{{X: 0, Y: 0}, {X: 1, Y: 10}, {X: 2, Y: 5}}
	svg := SeriesToSVG(points, 200, 100, "#00ff00")
	if !strings.Contains(svg, "<path") {
		t.Fatal("SVG has no path element")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Fatal("SVG does not use the requested stroke color")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
