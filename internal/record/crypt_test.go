package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"personal_info":{"first_name":"Jane"}}`)
	passphrase := []byte("correct horse battery staple")

	envelope, err := Encrypt(plaintext, passphrase)
	require.NoError(t, err)
	assert.True(t, IsEncrypted(envelope))
	assert.NotContains(t, string(envelope), "Jane")

	got, err := Decrypt(envelope, passphrase)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	plaintext := []byte("same input")
	passphrase := []byte("pass")

	a, err := Encrypt(plaintext, passphrase)
	require.NoError(t, err)
	b, err := Encrypt(plaintext, passphrase)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "per-file salt and nonce should differ between saves")
}

func TestDecryptWrongPassphrase(t *testing.T) {
	envelope, err := Encrypt([]byte("secret"), []byte("right"))
	require.NoError(t, err)

	_, err = Decrypt(envelope, []byte("wrong"))
	require.Error(t, err)

	var cryptErr *CryptError
	require.ErrorAs(t, err, &cryptErr)
	assert.Contains(t, cryptErr.Error(), "wrong passphrase")
}

func TestDecryptErrors(t *testing.T) {
	envelope, err := Encrypt([]byte("secret"), []byte("pass"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		data       []byte
		passphrase []byte
	}{
		{name: "plain JSON is not an envelope", data: []byte(`{"a":1}`), passphrase: []byte("pass")},
		{name: "empty input", data: nil, passphrase: []byte("pass")},
		{name: "encrypted but no passphrase", data: envelope, passphrase: nil},
		{name: "truncated envelope", data: envelope[:len(envelopeMagic)+4], passphrase: []byte("pass")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.data, tt.passphrase)
			var cryptErr *CryptError
			require.ErrorAs(t, err, &cryptErr)
		})
	}
}

func TestEncryptEmptyPassphrase(t *testing.T) {
	_, err := Encrypt([]byte("secret"), nil)
	var cryptErr *CryptError
	require.ErrorAs(t, err, &cryptErr)
}

func TestIsEncrypted(t *testing.T) {
	assert.False(t, IsEncrypted([]byte(`{"personal_info":{}}`)))
	assert.False(t, IsEncrypted([]byte("AFRE")))
	assert.False(t, IsEncrypted(nil))

	envelope, err := Encrypt([]byte("x"), []byte("p"))
	require.NoError(t, err)
	assert.True(t, IsEncrypted(envelope))
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	envelope, err := Encrypt([]byte("secret payload"), []byte("pass"))
	require.NoError(t, err)

	envelope[len(envelope)-1] ^= 0xff

	_, err = Decrypt(envelope, []byte("pass"))
	var cryptErr *CryptError
	require.ErrorAs(t, err, &cryptErr)
}
