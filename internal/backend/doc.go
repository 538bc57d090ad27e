// Package backend implements the terminal plotting backend: a braille
// pixel [Canvas], the mutable [Axes] object renderers decorate (limits,
// scales, ticks, spines, labels, legend), drawable [Artist] kinds and a
// [Camera] for projecting 3D paths onto the canvas plane.
//
// Rendering composes lipgloss-styled rows; no terminal I/O happens here.
package backend
