// Package term is a terminal drawing host. Canvases are kept as private RGBA
// copies and drawn with truecolor half-block cells, two pixel rows per text
// row. [Model] runs an animation driver inside a bubbletea program.
package term
