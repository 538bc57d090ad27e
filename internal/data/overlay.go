package data

import "math"

// LayerEntry is one layer of a composite: the layer key (nil for plain
// overlays) and the element itself.
type LayerEntry struct {
	Key     Key
	Element Element
}

// Composite is a layered collection of elements sharing one axes region.
type Composite interface {
	Element
	Layers() []LayerEntry
	// KeyDimensions returns the grouping dimensions; empty for plain
	// overlays.
	KeyDimensions() []Dimension
	// Keyed reports whether layers carry a distinct key encoding.
	Keyed() bool
}

// Overlay is a plain composite: an ordered list of layers without a key
// encoding.
type Overlay struct {
	meta   Meta
	layers []Element
}

func NewOverlay(layers []Element, opts ...ElementOption) *Overlay {
	return &Overlay{meta: newMeta(KindOverlay, nil, opts), layers: layers}
}

func (o *Overlay) Kind() string  { return KindOverlay }
func (o *Overlay) Group() string { return o.meta.group }
func (o *Overlay) Label() string { return o.meta.label }
func (o *Overlay) Keyed() bool   { return false }

func (o *Overlay) KeyDimensions() []Dimension { return nil }

func (o *Overlay) Layers() []LayerEntry {
	entries := make([]LayerEntry, len(o.layers))
	for i, el := range o.layers {
		entries[i] = LayerEntry{Element: el}
	}
	return entries
}

// Dimensions of a plain overlay are those of its first layer.
func (o *Overlay) Dimensions() []Dimension {
	if o.meta.dims != nil {
		return o.meta.dims
	}
	if len(o.layers) == 0 {
		return nil
	}
	return o.layers[0].Dimensions()
}

func (o *Overlay) Range(i int) (float64, float64) {
	return layersRange(o.layers, i)
}

func (o *Overlay) Extents() Extents { return UnknownExtents(o.Is3D()) }

func (o *Overlay) Is3D() bool {
	return len(o.layers) > 0 && o.layers[0].Is3D()
}

// Get returns the layer stored under the given entry key, matching plain
// overlays by position within occurrence order.
func (o *Overlay) Get(key Key) (Element, bool) {
	for i, entry := range o.Layers() {
		if layerKeyMatch(entry, key, i) {
			return entry.Element, true
		}
	}
	return nil, false
}

// NdOverlay is a keyed composite: layers are indexed by values of one or
// more key dimensions, with insertion order preserved.
type NdOverlay struct {
	meta  Meta
	kdims []Dimension
	keys  []Key
	items map[string]Element
}

func NewNdOverlay(kdims []Dimension, opts ...ElementOption) *NdOverlay {
	return &NdOverlay{
		meta:  newMeta(KindNdOverlay, nil, opts),
		kdims: kdims,
		items: make(map[string]Element),
	}
}

// Add appends a keyed layer, replacing any existing entry for the key.
func (o *NdOverlay) Add(key Key, el Element) {
	ks := key.String()
	if _, ok := o.items[ks]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[ks] = el
}

func (o *NdOverlay) Kind() string  { return KindNdOverlay }
func (o *NdOverlay) Group() string { return o.meta.group }
func (o *NdOverlay) Label() string { return o.meta.label }
func (o *NdOverlay) Keyed() bool   { return true }

func (o *NdOverlay) KeyDimensions() []Dimension { return o.kdims }

func (o *NdOverlay) Keys() []Key { return o.keys }

func (o *NdOverlay) Layers() []LayerEntry {
	entries := make([]LayerEntry, 0, len(o.keys))
	for _, k := range o.keys {
		entries = append(entries, LayerEntry{Key: k, Element: o.items[k.String()]})
	}
	return entries
}

func (o *NdOverlay) Get(key Key) (Element, bool) {
	el, ok := o.items[key.String()]
	return el, ok
}

// Dimensions of a keyed overlay are the key dimensions followed by the
// dimensions of its first layer.
func (o *NdOverlay) Dimensions() []Dimension {
	if len(o.keys) == 0 {
		return o.kdims
	}
	first := o.items[o.keys[0].String()]
	return append(append([]Dimension{}, o.kdims...), first.Dimensions()...)
}

func (o *NdOverlay) Range(i int) (float64, float64) {
	if i < len(o.kdims) {
		return keyValueRange(o.keys, i)
	}
	els := make([]Element, 0, len(o.keys))
	for _, entry := range o.Layers() {
		els = append(els, entry.Element)
	}
	return layersRange(els, i-len(o.kdims))
}

func (o *NdOverlay) Extents() Extents { return UnknownExtents(o.Is3D()) }

func (o *NdOverlay) Is3D() bool {
	if len(o.keys) == 0 {
		return false
	}
	return o.items[o.keys[0].String()].Is3D()
}

func layersRange(layers []Element, i int) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, el := range layers {
		l, h := el.Range(i)
		if !math.IsNaN(l) && (math.IsNaN(lo) || l < lo) {
			lo = l
		}
		if !math.IsNaN(h) && (math.IsNaN(hi) || h > hi) {
			hi = h
		}
	}
	return lo, hi
}

func keyValueRange(keys []Key, i int) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, k := range keys {
		if i >= len(k) {
			continue
		}
		v, ok := k[i].(float64)
		if !ok {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

func layerKeyMatch(entry LayerEntry, key Key, pos int) bool {
	if entry.Key != nil {
		return entry.Key.Equal(key)
	}
	if len(key) == 1 {
		if idx, ok := key[0].(int); ok {
			return idx == pos
		}
	}
	return false
}
