// Package vault turns scanner findings into redacted templates plus one
// encrypted payload, and reverses the process.
//
// The workflow is Scan, Recover, Encrypt, Template on the way in and
// Decrypt, Rehydrate on the way out. Encrypt must run before an in-place
// Template, since in-place templating overwrites the only other copy of the
// values.
//
// The vault file is a JSON envelope. The payload is encrypted with
// XChaCha20-Poly1305 under a key derived from the passphrase with argon2id;
// the envelope header is bound as associated data so its parameters cannot
// be altered either. A wrong passphrase and a damaged vault produce the same
// error.
package vault
