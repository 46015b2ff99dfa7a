// Package transform defines the pointwise pixel transforms used to clean up
// card sprites.
//
// A transform is a pure function from a pixel and its position to a new
// pixel. It never sees neighbouring pixels and never keeps state between
// calls, so applying it twice to the same inputs always gives the same
// output.
//
// # Coordinate System
//
// Positions are 0-based with the origin at the top-left corner. X grows to
// the right and Y grows downward. Width and height are the full image
// dimensions.
//
// # Variants
//
//   - normalize-alpha: identity on all four channels
//   - border-to-transparent: clears a frame of the given thickness
//   - near-white-to-transparent: clears pixels whose channels are all above a threshold
//   - red-to-gray: replaces saturated red with a fixed gray
package transform
