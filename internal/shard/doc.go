// Package shard splits a buffer into encrypted, individually hashed chunks and joins them back.
//
// Split encrypts under a fresh key, cuts the ciphertext into contiguous chunks (the last one
// absorbs the remainder) and records every chunk's digest in a manifest. Join verifies each
// chunk against the manifest before it is appended, concatenates strictly in manifest order
// and decrypts the result. Both operations are all-or-nothing and keep no state between calls.
package shard
