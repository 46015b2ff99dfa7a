// Package imaging is the codec boundary for card sprite processing.
//
// Every image enters the program through Decode or Open, which normalise
// whatever the file holds (paletted, gray, 16-bit, RGBA with gamma chunks)
// into an 8-bit non-premultiplied *image.NRGBA with its origin at (0,0).
// Every image leaves through Encode or Save, which always emit PNG.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The codec functions are
// stateless.
//
// # Error Handling
//
// File system failures are reported as *IOError and undecodable content as
// *DecodeError, both usable with errors.As. Save never truncates the target
// on failure: it writes a sibling temp file and renames it into place.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
