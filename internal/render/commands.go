package render

import (
	"encoding/json"

	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// DrawCommand is a single drawing operation for the frontend to execute.
// The frontend receives a list of these and replays them on a Canvas2D
// context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path", "marker", "save", "restore"
	ObjectID    string        `json:"objectId,omitempty"`    // point or contour id for hit correlation
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // path data for "path" ops
	Marker      string        `json:"marker,omitempty"`      // "anchor", "smooth", "handle" for "marker" ops
	X           float64       `json:"x,omitempty"`           // marker position
	Y           float64       `json:"y,omitempty"`           //
	Fill        string        `json:"fill,omitempty"`        // fill color
	Stroke      string        `json:"stroke,omitempty"`      // stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // stroke width in font units
	Opacity     float64       `json:"opacity,omitempty"`     // global alpha
}

// PathCommand is a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Q", cx, cy, x, y],
// ["C", c0x, c0y, c1x, c1y, x, y], ["Z"].
type PathCommand []interface{}

// ContourPath compiles one contour's segments into path commands.
func ContourPath(c glyph.ContourSnapshot) []PathCommand {
	segs := geom.Segments(c)
	if len(segs) == 0 {
		return nil
	}

	path := []PathCommand{{"M", segs[0].P0.X, segs[0].P0.Y}}
	for _, s := range segs {
		switch s.Kind {
		case geom.SegmentLine:
			path = append(path, PathCommand{"L", s.P1.X, s.P1.Y})
		case geom.SegmentQuad:
			path = append(path, PathCommand{"Q", s.C0.X, s.C0.Y, s.P1.X, s.P1.Y})
		default:
			path = append(path, PathCommand{"C", s.C0.X, s.C0.Y, s.C1.X, s.C1.Y, s.P1.X, s.P1.Y})
		}
	}
	if c.Closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

// OutlinePaths compiles every renderable contour of the snapshot.
func OutlinePaths(snap glyph.Snapshot) map[glyph.ContourID][]PathCommand {
	paths := make(map[glyph.ContourID][]PathCommand)
	for c := range geom.RenderableContours(snap) {
		if p := ContourPath(c); p != nil {
			paths[c.ID] = p
		}
	}
	return paths
}

// CommandsToJSON serializes a draw command buffer.
func CommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
