//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/editor"
	"github.com/glyphic/glyphic/backend-go/internal/event"
	"github.com/glyphic/glyphic/backend-go/internal/font"
	"github.com/glyphic/glyphic/backend-go/internal/geom"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
	"github.com/glyphic/glyphic/backend-go/internal/render"
	"github.com/glyphic/glyphic/backend-go/internal/tool"
)

// strokeWidth is in font units; the frontend scales it by zoom.
const strokeWidth = 2.0

type toolSet struct {
	pen       *tool.Pen
	selectT   *tool.Select
	hand      *tool.Hand
	transform *tool.Transform
}

var (
	bus      *event.Bus
	eng      *editor.Engine
	backend  *font.Memory
	viewport *editor.Viewport
	pipeline *render.Pipeline
	tools    toolSet
	active   string
)

func main() {
	bus = event.NewBus()
	eng = editor.NewEngine(bus)
	backend = font.NewMemory(nil)
	eng.SetSink(backend)
	viewport = editor.NewViewport()
	pipeline = render.NewPipeline()
	tools = toolSet{
		pen:       tool.NewPen(eng),
		selectT:   tool.NewSelect(eng),
		hand:      tool.NewHand(viewport),
		transform: tool.NewTransform(eng),
	}
	active = "select"

	glyphicEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	glyphicEditor.Set("loadFont", js.FuncOf(loadFont))
	glyphicEditor.Set("loadSampleFont", js.FuncOf(loadSampleFont))
	glyphicEditor.Set("openGlyph", js.FuncOf(openGlyph))
	glyphicEditor.Set("closeGlyph", js.FuncOf(closeGlyph))
	glyphicEditor.Set("setTool", js.FuncOf(setTool))
	glyphicEditor.Set("pointerDown", js.FuncOf(pointerDown))
	glyphicEditor.Set("pointerMove", js.FuncOf(pointerMove))
	glyphicEditor.Set("pointerUp", js.FuncOf(pointerUp))
	glyphicEditor.Set("cancelTool", js.FuncOf(cancelTool))
	glyphicEditor.Set("setSelection", js.FuncOf(setSelection))
	glyphicEditor.Set("deleteSelection", js.FuncOf(deleteSelection))
	glyphicEditor.Set("toggleSmooth", js.FuncOf(toggleSmooth))
	glyphicEditor.Set("insertMidpoint", js.FuncOf(insertMidpoint))
	glyphicEditor.Set("undo", js.FuncOf(undo))
	glyphicEditor.Set("redo", js.FuncOf(redo))
	glyphicEditor.Set("setViewport", js.FuncOf(setViewport))
	glyphicEditor.Set("onChange", js.FuncOf(onChange))

	// --- Queries (frontend ← backend) ---
	glyphicEditor.Set("render", js.FuncOf(renderFrame))
	glyphicEditor.Set("getGlyph", js.FuncOf(getGlyph))
	glyphicEditor.Set("getGlyphNames", js.FuncOf(getGlyphNames))
	glyphicEditor.Set("getSelection", js.FuncOf(getSelection))
	glyphicEditor.Set("getBounds", js.FuncOf(getBounds))
	glyphicEditor.Set("getViewport", js.FuncOf(getViewport))
	glyphicEditor.Set("canUndo", js.FuncOf(canUndo))
	glyphicEditor.Set("canRedo", js.FuncOf(canRedo))
	glyphicEditor.Set("getFont", js.FuncOf(getFont))

	js.Global().Set("glyphicEditor", glyphicEditor)

	// Signal that WASM is ready
	js.Global().Set("glyphicWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadFont(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing font JSON")
	}

	var doc document.FontDocument
	if err := json.Unmarshal([]byte(args[0].String()), &doc); err != nil {
		return errResult(err.Error())
	}
	if doc.Glyphs == nil {
		doc.Glyphs = map[string]glyph.Snapshot{}
	}

	eng.CloseGlyph()
	backend = font.NewMemory(&doc)
	eng.SetSink(backend)
	return okResult()
}

func loadSampleFont(this js.Value, args []js.Value) interface{} {
	fontID := "font_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		fontID = args[0].String()
	}

	eng.CloseGlyph()
	backend = font.NewMemory(document.NewSampleDocument(fontID))
	eng.SetSink(backend)
	return okResult()
}

func openGlyph(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing glyph name")
	}
	name := args[0].String()

	snap, ok := backend.Glyph(name)
	if !ok {
		return errResult("glyph not found: " + name)
	}

	eng.OpenGlyph(glyph.FromSnapshot(snap))
	return okResult()
}

func closeGlyph(this js.Value, args []js.Value) interface{} {
	eng.CloseGlyph()
	return okResult()
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	name := args[0].String()
	switch name {
	case "pen", "select", "hand", "transform":
		cancelActive()
		active = name
	}
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	switch active {
	case "pen":
		tools.pen.PointerDown(ev)
	case "select":
		tools.selectT.PointerDown(ev)
	case "hand":
		tools.hand.PointerDown(ev)
	case "transform":
		tools.transform.PointerDown(ev)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	switch active {
	case "pen":
		tools.pen.PointerMove(ev)
	case "select":
		tools.selectT.PointerMove(ev)
	case "hand":
		tools.hand.PointerMove(ev)
	case "transform":
		tools.transform.PointerMove(ev)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	switch active {
	case "pen":
		tools.pen.PointerUp(ev)
	case "select":
		tools.selectT.PointerUp(ev)
	case "hand":
		tools.hand.PointerUp(ev)
	case "transform":
		tools.transform.PointerUp(ev)
	}
	return nil
}

func cancelTool(this js.Value, args []js.Value) interface{} {
	cancelActive()
	return nil
}

func cancelActive() {
	switch active {
	case "pen":
		tools.pen.Cancel()
	case "select":
		tools.selectT.Cancel()
	case "hand":
		tools.hand.Cancel()
	case "transform":
		tools.transform.Cancel()
	}
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]glyph.PointID, length)
	for i := 0; i < length; i++ {
		ids[i] = glyph.PointID(arr.Index(i).String())
	}
	eng.SetSelection(ids)
	return nil
}

func deleteSelection(this js.Value, args []js.Value) interface{} {
	ctx, ok := eng.EditContext()
	if !ok || len(ctx.Selection) == 0 {
		return errResult("nothing selected")
	}
	return resultToJS(eng.RemovePoints(ctx.Selection))
}

func toggleSmooth(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing point id")
	}
	target := glyph.PointID(args[0].String())
	return resultToJS(eng.ApplyRule(editor.RuleToggleSmooth, target, editor.Delta{}))
}

func insertMidpoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing point id")
	}
	target := glyph.PointID(args[0].String())
	return resultToJS(eng.ApplyRule(editor.RuleInsertSegmentPoint, target, editor.Delta{}))
}

func undo(this js.Value, args []js.Value) interface{} {
	return resultToJS(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return resultToJS(eng.Redo())
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	viewport.PanX = args[0].Float()
	viewport.PanY = args[1].Float()
	if z := args[2].Float(); z > 0 {
		viewport.Zoom = z
	}
	return nil
}

// onChange registers a callback invoked with (eventName, payloadJSON) after
// every committed change.
func onChange(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return nil
	}
	callback := args[0]

	handler := func(ev event.Event) {
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			return
		}
		callback.Invoke(ev.Name, string(data))
	}
	for _, name := range []string{
		event.PointsAdded, event.PointsMoved, event.PointsRemoved, event.GlyphChanged,
	} {
		bus.Subscribe(name, handler)
	}
	return nil
}

// --- Query Handlers ---

func renderFrame(this js.Value, args []js.Value) interface{} {
	ctx, ok := eng.EditContext()
	if !ok {
		return js.ValueOf("[]")
	}
	commands := pipeline.Render(ctx, *viewport, strokeWidth)
	out, err := render.CommandsToJSON(commands)
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(out)
}

func getGlyph(this js.Value, args []js.Value) interface{} {
	snap, ok := eng.Snapshot()
	if !ok {
		return js.ValueOf("null")
	}
	return toJSON(snap)
}

func getGlyphNames(this js.Value, args []js.Value) interface{} {
	return toJSON(backend.Document().Font.GlyphOrder)
}

func getSelection(this js.Value, args []js.Value) interface{} {
	ctx, ok := eng.EditContext()
	if !ok {
		return js.ValueOf("[]")
	}
	return toJSON(ctx.Selection)
}

func getBounds(this js.Value, args []js.Value) interface{} {
	snap, ok := eng.Snapshot()
	if !ok {
		return js.ValueOf("null")
	}
	bounds, found := geom.TightBounds(snap)
	if !found {
		return js.ValueOf("null")
	}
	return toJSON(bounds)
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return toJSON(viewport)
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanRedo())
}

func getFont(this js.Value, args []js.Value) interface{} {
	return toJSON(backend.Document())
}

// --- Helpers ---

func pointerEvent(args []js.Value) (tool.PointerEvent, bool) {
	if len(args) < 2 {
		return tool.PointerEvent{}, false
	}
	return tool.PointerEvent{X: args[0].Float(), Y: args[1].Float()}, true
}

func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func resultToJS(res editor.Result) interface{} {
	return toJSON(res)
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
