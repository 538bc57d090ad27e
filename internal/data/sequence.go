package data

import "strconv"

// FrameName is the synthetic key dimension used when a bare element is
// wrapped into a single-frame sequence.
const FrameName = "Frame"

// FrameSequence is an insertion-ordered mapping from key to frame
// element. Keys are tuples of key-dimension values; the last entry is the
// default frame for first renders.
type FrameSequence struct {
	kdims []Dimension
	keys  []Key
	items map[string]Element
}

func NewFrameSequence(kdims ...Dimension) *FrameSequence {
	return &FrameSequence{kdims: kdims, items: make(map[string]Element)}
}

// Wrap lifts a bare element into a one-frame sequence keyed by the
// synthetic Frame dimension.
func Wrap(el Element) *FrameSequence {
	s := NewFrameSequence(Dim(FrameName))
	s.Add(KeyOf(0), el)
	return s
}

// Add appends a frame, replacing any existing entry for the key. Keys of
// the wrong arity are rejected.
func (s *FrameSequence) Add(key Key, el Element) error {
	if len(key) != len(s.kdims) {
		return ErrKeyArity
	}
	ks := key.String()
	if _, ok := s.items[ks]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[ks] = el
	return nil
}

func (s *FrameSequence) Len() int                   { return len(s.keys) }
func (s *FrameSequence) Keys() []Key                { return s.keys }
func (s *FrameSequence) KeyDimensions() []Dimension { return s.kdims }

// Last returns the current default frame, nil for an empty sequence.
func (s *FrameSequence) Last() Element {
	if len(s.keys) == 0 {
		return nil
	}
	return s.items[s.keys[len(s.keys)-1].String()]
}

// At returns the frame at position i in insertion order.
func (s *FrameSequence) At(i int) Element {
	if i < 0 || i >= len(s.keys) {
		return nil
	}
	return s.items[s.keys[i].String()]
}

// Get looks up a frame by exact key.
func (s *FrameSequence) Get(key Key) (Element, bool) {
	el, ok := s.items[key.String()]
	return el, ok
}

// Kind returns the element kind of the last frame, "" when empty.
func (s *FrameSequence) Kind() string {
	last := s.Last()
	if last == nil {
		return ""
	}
	return last.Kind()
}

// Uniform reports whether every frame shares the last frame's kind.
func (s *FrameSequence) Uniform() bool {
	kind := s.Kind()
	for _, k := range s.keys {
		if s.items[k.String()].Kind() != kind {
			return false
		}
	}
	return true
}

// Select filters the sequence down to frames whose key values match the
// selector. Naming a dimension the sequence does not have is an error;
// a selector matching nothing returns ErrKeyNotFound.
func (s *FrameSequence) Select(sel map[string]any) (*FrameSequence, error) {
	idx := make(map[string]int, len(s.kdims))
	for i, d := range s.kdims {
		idx[d.Name] = i
	}
	for name := range sel {
		if _, ok := idx[name]; !ok {
			return nil, ErrBadSelector
		}
	}
	out := NewFrameSequence(s.kdims...)
	for _, k := range s.keys {
		match := true
		for name, want := range sel {
			if !valueEqual(k[idx[name]], want) {
				match = false
				break
			}
		}
		if match {
			out.Add(k, s.items[k.String()])
		}
	}
	if out.Len() == 0 {
		return nil, ErrKeyNotFound
	}
	return out, nil
}

// Traverse walks every frame depth-first, descending into composite
// layers.
func (s *FrameSequence) Traverse(fn func(Element)) {
	for _, k := range s.keys {
		walkElement(s.items[k.String()], fn)
	}
}

func walkElement(el Element, fn func(Element)) {
	if el == nil {
		return
	}
	fn(el)
	if comp, ok := el.(Composite); ok {
		for _, entry := range comp.Layers() {
			walkElement(entry.Element, fn)
		}
	}
}

// LayerSplit is one distinct layer slot of a composite sequence: its
// identity, its key (keyed overlays only) and the per-frame sub-sequence
// of elements occupying the slot.
type LayerSplit struct {
	Key     Key
	Kind    string
	Group   string
	Label   string
	Ordinal int
	Seq     *FrameSequence
}

// SplitLayers decomposes a sequence of composites into the union of its
// layer slots across all frames, in first-seen order. Keyed overlays
// split by layer key; plain overlays split by (kind, group, label) with
// an ordinal separating repeated identities within one frame.
func (s *FrameSequence) SplitLayers() []LayerSplit {
	var splits []LayerSplit
	index := make(map[string]int)

	for _, fk := range s.keys {
		comp, ok := s.items[fk.String()].(Composite)
		if !ok {
			continue
		}
		seen := make(map[string]int)
		for _, entry := range comp.Layers() {
			el := entry.Element
			var slot string
			ordinal := 0
			if entry.Key != nil {
				slot = "key:" + entry.Key.String()
			} else {
				ident := el.Kind() + "." + el.Group() + "." + el.Label()
				ordinal = seen[ident]
				seen[ident]++
				slot = "id:" + ident + ":" + strconv.Itoa(ordinal)
			}
			i, ok := index[slot]
			if !ok {
				i = len(splits)
				index[slot] = i
				splits = append(splits, LayerSplit{
					Key:     entry.Key,
					Kind:    el.Kind(),
					Group:   el.Group(),
					Label:   el.Label(),
					Ordinal: ordinal,
					Seq:     NewFrameSequence(s.kdims...),
				})
			}
			splits[i].Seq.Add(fk, el)
		}
	}
	return splits
}
