// Package data provides the plottable data model: elements (curves,
// point clouds, 3D paths), layered composites (plain and keyed overlays)
// and the frame sequence that drives animation.
//
// A [FrameSequence] is an insertion-ordered mapping from animation keys
// to frames. Bare elements are lifted into single-frame sequences with
// [Wrap]. Composite frames can be decomposed into per-layer sequences
// with [FrameSequence.SplitLayers].
package data
