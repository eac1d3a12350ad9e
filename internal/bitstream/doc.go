// Package bitstream packs and unpacks bytes as MSB-first bit sequences.
//
// The encoder slices a payload into fixed-width chunks with Reader; the
// decoder rebuilds bytes from chunks of varying width with Assembler.
// Bit order within a byte is always most significant first, so the
// first chunk of "h" (0x68) at width 6 is 0b011010.
package bitstream
