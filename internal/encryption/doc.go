// Package encryption provides one-shot authenticated encryption of whole buffers.
// Every ciphertext starts with a small envelope header naming the scheme, so decryption
// needs only the key. All schemes take 32-byte keys:
//   - gcm:       AES-256-GCM (tink)
//   - ctr-hmac:  AES-256-CTR with HMAC-SHA256, keys derived with HKDF
//   - xchacha20: XChaCha20-Poly1305
package encryption
