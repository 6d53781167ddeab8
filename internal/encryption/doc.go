// Package encryption seals and opens files with an authenticated cipher and walks
// directory trees applying that transform to every selected file.
//
// An artifact is nonce||ciphertext||tag with no header. Keys are 32 bytes; the suite
// (AES-256-GCM or ChaCha20-Poly1305) is not recorded and must match on both sides.
//
// Whole files are held in memory while they are transformed.
package encryption
