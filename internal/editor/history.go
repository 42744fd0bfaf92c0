package editor

import (
	"image"

	"github.com/example/pixelpad/internal/pixel"
)

// DefaultUndoLimit bounds the undo stack when no limit is configured.
const DefaultUndoLimit = 100

// snapshot is a full copy of the document pixels and layer order.
type snapshot struct {
	size      pixel.Size
	layers    []*layer
	active    int
	selection image.Rectangle
}

type history struct {
	undo  []snapshot
	redo  []snapshot
	limit int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &history{limit: limit}
}

// push records s as the state before a mutation and clears redo.
func (h *history) push(s snapshot) {
	h.undo = append(h.undo, s)
	if over := len(h.undo) - h.limit; over > 0 {
		clear(h.undo[:over])
		h.undo = h.undo[over:]
		logger().Debug("history trimmed", "dropped", over, "limit", h.limit)
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

func (s *State) snapshot() snapshot {
	layers := make([]*layer, len(s.layers))
	for i, l := range s.layers {
		layers[i] = l.clone()
	}
	return snapshot{size: s.size, layers: layers, active: s.active, selection: s.selection}
}

// restore swaps the document for snap and reports the matching effect.
// Layers present in both keep their current name, visibility and alpha,
// since those edits are not recorded.
func (s *State) restore(snap snapshot) Effect {
	effect := EffectUpdate
	if snap.size != s.size {
		effect = EffectNew
	}
	live := make(map[int]*layer, len(s.layers))
	for _, l := range s.layers {
		live[l.id] = l
	}
	for _, l := range snap.layers {
		if cur, ok := live[l.id]; ok {
			l.name, l.visible, l.alpha = cur.name, cur.visible, cur.alpha
		}
	}
	s.size = snap.size
	s.layers = snap.layers
	s.active = snap.active
	s.selection = snap.selection
	return effect
}

func (s *State) undo() Effect {
	h := s.history
	if len(h.undo) == 0 {
		return EffectNone
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, s.snapshot())
	logger().Debug("undo", "remaining", len(h.undo))
	return s.restore(prev)
}

func (s *State) redo() Effect {
	h := s.history
	if len(h.redo) == 0 {
		return EffectNone
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, s.snapshot())
	logger().Debug("redo", "remaining", len(h.redo))
	return s.restore(next)
}

// CanUndo reports whether Undo would change anything.
func (s *State) CanUndo() bool { return len(s.history.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (s *State) CanRedo() bool { return len(s.history.redo) > 0 }
