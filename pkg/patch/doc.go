// Package patch splits grayscale images into fixed-size square patches.
//
// Patches are the unit of classification sent to the accelerator. They are
// produced in row-major scan order, which is also the order they are
// transmitted in, and incomplete windows along the right and bottom edges
// are dropped rather than padded.
package patch
