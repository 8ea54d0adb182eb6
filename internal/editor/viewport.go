package editor

// Viewport is the canvas pan/zoom state. It belongs to the editor shell,
// not the glyph model: the hand tool mutates pan and nothing else.
type Viewport struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// NewViewport returns a viewport at the origin with unit zoom.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}
