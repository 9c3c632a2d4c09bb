package record

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Encrypted-record envelope: magic, KDF salt, AEAD nonce, ciphertext.
// The key is derived per file from the passphrase and the stored salt,
// so rotating the passphrase only requires re-saving.
const (
	envelopeMagic = "AFREC1"
	saltSize      = 16
)

// argon2id parameters, the library-recommended interactive settings.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = chacha20poly1305.KeySize
)

// CryptError reports an encryption or decryption failure.
type CryptError struct {
	Message string
	Cause   error
}

func (e *CryptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record crypt error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("record crypt error: %s", e.Message)
}

func (e *CryptError) Unwrap() error {
	return e.Cause
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// Encrypt seals plaintext under a key derived from the passphrase.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, &CryptError{Message: "empty passphrase"}
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, &CryptError{Message: "generating salt", Cause: err}
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, &CryptError{Message: "initializing cipher", Cause: err}
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, &CryptError{Message: "generating nonce", Cause: err}
	}

	out := make([]byte, 0, len(envelopeMagic)+saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, envelopeMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Decrypt opens an envelope produced by Encrypt.
func Decrypt(envelope, passphrase []byte) ([]byte, error) {
	if !IsEncrypted(envelope) {
		return nil, &CryptError{Message: "not an encrypted record envelope"}
	}
	if len(passphrase) == 0 {
		return nil, &CryptError{Message: "record is encrypted but no passphrase is configured"}
	}

	rest := envelope[len(envelopeMagic):]
	if len(rest) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, &CryptError{Message: "truncated envelope"}
	}
	salt := rest[:saltSize]
	nonce := rest[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := rest[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, &CryptError{Message: "initializing cipher", Cause: err}
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &CryptError{Message: "wrong passphrase or corrupted record", Cause: err}
	}
	return plaintext, nil
}

// IsEncrypted reports whether data carries the envelope magic. Records
// saved before a passphrase was configured are plain JSON and load
// without decryption.
func IsEncrypted(data []byte) bool {
	return len(data) >= len(envelopeMagic) && string(data[:len(envelopeMagic)]) == envelopeMagic
}
