package vault

import (
	"crypto/rand"
	"encoding/json"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/arthur-debert/slinky/pkg/errors"
)

const (
	envelopeVersion = 1
	cipherName      = "xchacha20poly1305"
	kdfName         = "argon2id"
	saltSize        = 16

	// Upper bounds accepted when opening, so a forged header cannot make
	// key derivation exhaust the machine.
	maxKDFTime      = 64
	maxKDFMemoryKiB = 1 << 20
)

// KDFParams are the argon2id cost parameters
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDF follows the argon2 RFC's second recommended profile.
var DefaultKDF = KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}

// KDFHeader records how the key was derived
type KDFHeader struct {
	Name    string `json:"name"`
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
	Salt    []byte `json:"salt"`
}

// Envelope is the on-disk form of an encrypted vault.
type Envelope struct {
	Version    int       `json:"version"`
	Cipher     string    `json:"cipher"`
	KDF        KDFHeader `json:"kdf"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

// header is authenticated along with the ciphertext
func (e *Envelope) header() []byte {
	h, _ := json.Marshal(struct {
		Version int       `json:"version"`
		Cipher  string    `json:"cipher"`
		KDF     KDFHeader `json:"kdf"`
		Nonce   []byte    `json:"nonce"`
	}{e.Version, e.Cipher, e.KDF, e.Nonce})
	return h
}

// errWrongOrCorrupt is the single error for every failure to open a vault.
func errWrongOrCorrupt() error {
	return errors.New(errors.ErrCrypto, "wrong passphrase or corrupted vault")
}

func deriveKey(passphrase []byte, h KDFHeader) []byte {
	return argon2.IDKey(passphrase, h.Salt, h.Time, h.Memory, h.Threads, chacha20poly1305.KeySize)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Seal encrypts plaintext under passphrase.
func Seal(plaintext, passphrase []byte, params KDFParams) (*Envelope, error) {
	if len(passphrase) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "passphrase cannot be empty")
	}
	if params.Time == 0 || params.MemoryKiB == 0 || params.Threads == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "key derivation parameters must be positive")
	}

	salt := make([]byte, saltSize)
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, errors.ErrCrypto, "failed to generate salt")
	}
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, errors.ErrCrypto, "failed to generate nonce")
	}

	env := &Envelope{
		Version: envelopeVersion,
		Cipher:  cipherName,
		KDF: KDFHeader{
			Name:    kdfName,
			Time:    params.Time,
			Memory:  params.MemoryKiB,
			Threads: params.Threads,
			Salt:    salt,
		},
		Nonce: nonce,
	}

	key := deriveKey(passphrase, env.KDF)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCrypto, "failed to initialise cipher")
	}
	env.Ciphertext = aead.Seal(nil, nonce, plaintext, env.header())
	return env, nil
}

// Open authenticates and decrypts env. Any failure, including malformed
// header fields, yields the same CRYPTO error.
func Open(env *Envelope, passphrase []byte) ([]byte, error) {
	h := env.KDF
	if env.Version != envelopeVersion || env.Cipher != cipherName || h.Name != kdfName ||
		len(h.Salt) != saltSize || len(env.Nonce) != chacha20poly1305.NonceSizeX ||
		h.Time == 0 || h.Time > maxKDFTime ||
		h.Memory == 0 || h.Memory > maxKDFMemoryKiB ||
		h.Threads == 0 {
		return nil, errWrongOrCorrupt()
	}

	key := deriveKey(passphrase, h)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errWrongOrCorrupt()
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, env.header())
	if err != nil {
		return nil, errWrongOrCorrupt()
	}
	return plaintext, nil
}

// ParseEnvelope decodes a vault file. Undecodable input is reported as the
// same CRYPTO error as a failed decryption.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errWrongOrCorrupt()
	}
	return &env, nil
}
