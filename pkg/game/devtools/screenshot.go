package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"undercroft/pkg/engine/geom"
	"undercroft/pkg/engine/world"
)

const screenshotHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Undercroft - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .seed { color: #888; margin-bottom: 20px; }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .start { color: #00ff00; font-weight: bold; }
        .wall { color: #666; }
        .room { color: #aaa; }
        .corridor { color: #888; }
        .cave { color: #aa8855; }
        .door { color: #ffff00; font-weight: bold; }
        .path { color: #ff66ff; font-weight: bold; }
        .summary { margin-top: 20px; color: #888; }
    </style>
</head>
<body>
`

// SaveScreenshotHTML renders the whole map of d as an HTML page in dir
// and returns the file written.
func SaveScreenshotHTML(dir string, d Dump) (string, error) {
	if d.Level == nil {
		return "", fmt.Errorf("no level")
	}
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp))

	if err := os.WriteFile(filename, []byte(renderHTML(d)), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

func renderHTML(d Dump) string {
	var b strings.Builder
	grid := d.Level.Grid
	o := d.overlay()

	b.WriteString(screenshotHead)
	fmt.Fprintf(&b, `    <div class="header">%s</div>`+"\n", html.EscapeString(d.Generator))
	fmt.Fprintf(&b, `    <div class="seed">Seed: %s</div>`+"\n", html.EscapeString(d.Seed))

	b.WriteString(`    <div class="map-container">` + "\n")
	for row := grid.Rows() - 1; row >= 0; row-- {
		b.WriteString(`        <div class="map-row">`)
		for col := 0; col < grid.Cols(); col++ {
			icon, class := cellHTMLInfo(grid.GetCell(row, col), o[geom.Pt(col, row)])
			fmt.Fprintf(&b, `<span class="%s">%s</span>`, class, icon)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString(`    </div>` + "\n")

	fmt.Fprintf(&b, `    <div class="summary">Open cells: %d, paths: %d</div>`+"\n", len(d.Level.OpenCells()), len(d.Paths))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// cellHTMLInfo returns the icon and CSS class for a cell
func cellHTMLInfo(cell *world.Cell, mark rune) (string, string) {
	switch mark {
	case '@':
		return "@", "start"
	case '*':
		return "*", "path"
	case 'D':
		return "+", "door"
	}
	if cell == nil {
		return "▒", "wall"
	}
	switch cell.Kind {
	case world.Room:
		return "·", "room"
	case world.Corridor:
		return "░", "corridor"
	case world.Cave:
		return "•", "cave"
	default:
		return "▒", "wall"
	}
}
