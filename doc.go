// Package qoi implements a lossless encoder and decoder for the "Quite OK
// Image" (QOI) format.
//
// QOI images are small enough to fit in memory; this package's Encode and
// Decode operate over contiguous byte buffers and pixel slices rather than
// streaming incrementally. The encoder follows the reference operator
// priority (run, index, diff, luma, rgb, rgba) exactly, so re-encoding a
// decoded image reproduces the original bytes.
//
// Basic usage for decoding:
//
//	img, err := qoi.Decode(data)
//
// Basic usage for encoding:
//
//	data, err := qoi.Encode(img.Width, img.Height, img.Pixels)
//
// Importing this package also registers "qoi" with the standard image
// package, so image.Decode and image.DecodeConfig work transparently
// against QOI data once this package has been imported for its side effect.
package qoi
