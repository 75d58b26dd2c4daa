package secretbox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(fill byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestNewValidatesKey(t *testing.T) {
	_, err := New("nu-e-base64!!!")
	require.Error(t, err)

	_, err = New(base64.StdEncoding.EncodeToString([]byte("scurt")))
	require.Error(t, err)

	_, err = New(testKey(1))
	require.NoError(t, err)
}

func TestSealOpenRoundTrip(t *testing.T) {
	vault, err := New(testKey(1))
	require.NoError(t, err)

	sealed, err := vault.Seal("api-secret-foarte-sensibil")
	require.NoError(t, err)
	require.NotEmpty(t, sealed)
	assert.NotEqual(t, "api-secret-foarte-sensibil", sealed)

	plain, err := vault.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "api-secret-foarte-sensibil", plain)
}

func TestSealIsRandomized(t *testing.T) {
	vault, err := New(testKey(1))
	require.NoError(t, err)

	first, err := vault.Seal("valoare")
	require.NoError(t, err)
	second, err := vault.Seal("valoare")
	require.NoError(t, err)

	// Nonce proaspăt per sigilare: același text nu produce același rezultat.
	assert.NotEqual(t, first, second)
}

func TestEmptyValuesStayEmpty(t *testing.T) {
	vault, err := New(testKey(1))
	require.NoError(t, err)

	sealed, err := vault.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	plain, err := vault.Open("")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	vault, err := New(testKey(1))
	require.NoError(t, err)
	other, err := New(testKey(2))
	require.NoError(t, err)

	sealed, err := vault.Seal("secret")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	require.Error(t, err)
}

func TestOpenRejectsGarbage(t *testing.T) {
	vault, err := New(testKey(1))
	require.NoError(t, err)

	_, err = vault.Open("nu-e-base64!!!")
	require.Error(t, err)

	_, err = vault.Open(base64.StdEncoding.EncodeToString([]byte("scurt")))
	require.Error(t, err)
}
