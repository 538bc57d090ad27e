// Package compositor applies registered collapse operations to composite
// frame sequences before they are split into subplots. Data-mode
// operations merge redundant representations ahead of range computation;
// display-mode operations run afterwards and receive the per-frame
// computed ranges.
package compositor

import (
	"strings"

	"github.com/san-kum/layerplot/internal/data"
)

// Mode selects when an operation applies.
type Mode string

const (
	ModeData    Mode = "data"
	ModeDisplay Mode = "display"
)

// Params carries the display-mode inputs: computed ranges per frame and
// the ordered frame keys they belong to.
type Params struct {
	FrameRanges []data.Ranges
	Keys        []data.Key
}

// Transform rewrites one composite frame. Returning nil keeps the frame
// unchanged.
type Transform func(comp data.Composite, frameRanges data.Ranges) data.Element

// Operation is a registered collapse pass. Pattern is a "*"-separated
// list of layer kinds the composite must start with, e.g. "Curve*Curve".
type Operation struct {
	Name    string
	Pattern string
	Mode    Mode
	Fn      Transform
}

var registry []Operation

// Register adds an operation to the global table. Registration happens
// at startup, before any rendering.
func Register(op Operation) {
	registry = append(registry, op)
}

// Reset clears the operation table; test use only.
func Reset() {
	registry = nil
}

// Collapse runs every matching operation of the given mode over each
// composite frame of the sequence, returning a new sequence. Frames that
// are not composites, or that no operation matches, pass through
// untouched.
func Collapse(seq *data.FrameSequence, p Params, mode Mode) *data.FrameSequence {
	if seq == nil || len(registry) == 0 {
		return seq
	}
	rangeFor := make(map[string]data.Ranges, len(p.Keys))
	for i, k := range p.Keys {
		if i < len(p.FrameRanges) {
			rangeFor[k.String()] = p.FrameRanges[i]
		}
	}

	out := data.NewFrameSequence(seq.KeyDimensions()...)
	for _, key := range seq.Keys() {
		frame, _ := seq.Get(key)
		if comp, ok := frame.(data.Composite); ok {
			for _, op := range registry {
				if op.Mode != mode || !matches(op.Pattern, comp) {
					continue
				}
				if collapsed := op.Fn(comp, rangeFor[key.String()]); collapsed != nil {
					frame = collapsed
					if c, ok := collapsed.(data.Composite); ok {
						comp = c
					} else {
						break
					}
				}
			}
		}
		out.Add(key, frame)
	}
	return out
}

func matches(pattern string, comp data.Composite) bool {
	if pattern == "" {
		return true
	}
	kinds := strings.Split(pattern, "*")
	layers := comp.Layers()
	if len(layers) < len(kinds) {
		return false
	}
	for i, kind := range kinds {
		if layers[i].Element.Kind() != kind {
			return false
		}
	}
	return true
}
