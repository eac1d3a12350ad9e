// Package stego hides a byte secret in the least-significant bits of an
// RGB image and recovers it again.
//
// The payload is the secret followed by model.Delimiter, read as an
// MSB-first bit stream and cut into chunks of BitDepth bits:
//
//	channel' = channel &^ (1<<k - 1) | chunk    k = min(depth, bits left)
//
// Channels are visited in row-major pixel order, R then G then B; alpha is
// never touched. Only the final chunk may be shorter than the depth.
//
// Decoding reads the same channels back until the recovered text ends
// with the delimiter. Because the length of the final chunk is not stored,
// the decoder tries a short read once the text ends with the first four
// delimiter bytes and keeps it only if it completes the delimiter. Encode
// therefore rejects secrets containing "####" or ending with '#'; for any
// other secret that fits, Decode(Encode(s)) == s.
package stego
