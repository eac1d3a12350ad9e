// Package imageio reads carrier images and secret files from disk and
// writes the results back.
//
// Any format with a registered decoder can be opened: PNG, JPEG and GIF
// from the standard library, BMP, TIFF and WebP from golang.org/x/image.
// Images are always converted to opaque 8-bit NRGBA so the codec sees
// plain RGB channels. Output is PNG only, because any lossy format would
// destroy the embedded bits.
//
// Errors are returned as *model.CLIError so the CLI can map them to exit
// codes without inspecting them further.
package imageio
