// Package plot turns frame sequences of elements into rendered terminal
// figures. Element renderers draw a single layer and keep axis
// decoration synchronized across frame updates; overlay renderers
// decompose composite frames into layered subplots sharing one axes,
// with stable z-ordering, cyclic styling and an aggregated legend.
package plot
