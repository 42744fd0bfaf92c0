package editor

func (s *State) validLayer(i int) bool { return i >= 0 && i < len(s.layers) }

// insertLayer adds a blank layer at index i and makes it active.
func (s *State) insertLayer(i int) Effect {
	i = max(0, min(i, len(s.layers)))
	s.checkpoint()
	l := s.newLayer()
	s.layers = append(s.layers, nil)
	copy(s.layers[i+1:], s.layers[i:])
	s.layers[i] = l
	s.active = i
	return EffectUpdate
}

// deleteLayer removes layer i. The last remaining layer cannot be deleted.
func (s *State) deleteLayer(i int) Effect {
	if !s.validLayer(i) || len(s.layers) == 1 {
		return EffectNone
	}
	s.checkpoint()
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	if s.active > i || s.active == len(s.layers) {
		s.active--
	}
	return EffectUpdate
}

// swapLayers exchanges layers i and j. The active layer follows its content.
func (s *State) swapLayers(i, j int) Effect {
	if !s.validLayer(i) || !s.validLayer(j) || i == j {
		return EffectNone
	}
	s.checkpoint()
	s.layers[i], s.layers[j] = s.layers[j], s.layers[i]
	switch s.active {
	case i:
		s.active = j
	case j:
		s.active = i
	}
	return EffectUpdate
}
