package editor

import (
	"fmt"
	"strings"
)

// Effect tells a renderer how to refresh after an event.
type Effect int

const (
	// EffectNone means nothing visible changed.
	EffectNone Effect = iota
	// EffectUpdate means pixels changed but the canvas size did not.
	EffectUpdate
	// EffectNew means the canvas was replaced or resized.
	EffectNew
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectUpdate:
		return "update"
	case EffectNew:
		return "new"
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}

// Tool is the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolEyedropper
	ToolBucket
	ToolLine
	ToolSelection
	ToolMove
	ToolRectangle
	ToolEllipse
)

var toolNames = [...]string{
	ToolBrush:      "brush",
	ToolEraser:     "eraser",
	ToolEyedropper: "eyedropper",
	ToolBucket:     "bucket",
	ToolLine:       "line",
	ToolSelection:  "selection",
	ToolMove:       "move",
	ToolRectangle:  "rectangle",
	ToolEllipse:    "ellipse",
}

// Tools lists every tool in declaration order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range toolNames {
		out[i] = Tool(i)
	}
	return out
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool resolves a tool by its lower-case name.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Transform is a whole-layer pixel transform.
type Transform int

const (
	// TransformSilhouette paints every visible pixel with the main colour.
	TransformSilhouette Transform = iota
	// TransformApplyPalette snaps every visible pixel to the nearest
	// palette colour.
	TransformApplyPalette
	TransformFlipHorizontal
	TransformFlipVertical
)

var transformNames = [...]string{
	TransformSilhouette:     "silhouette",
	TransformApplyPalette:   "apply-palette",
	TransformFlipHorizontal: "flip-horizontal",
	TransformFlipVertical:   "flip-vertical",
}

func (t Transform) String() string {
	if t >= 0 && int(t) < len(transformNames) {
		return transformNames[t]
	}
	return fmt.Sprintf("Transform(%d)", int(t))
}

// ParseTransform resolves a transform by name.
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range transformNames {
		if name == s {
			return Transform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transform %q", s)
}
