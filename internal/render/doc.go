// Package render turns noise into RGBA pixel buffers.
//
//   - [Renderer]: per-frame full-canvas evaluation of a noise source
//   - [Frame]: one rendered buffer plus the time offset it was made at
//   - [Palette]: 256-entry lookup from noise level to color
//   - [Raster]: small drawing surface for the static gallery scenes
//
// Buffers are row-major, 4 bytes per pixel (R, G, B, A), alpha always 255 for
// rendered frames.
package render
