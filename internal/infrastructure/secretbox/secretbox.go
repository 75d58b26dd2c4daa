package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// Vault sigilează și deschide credențiale API stocate per utilizator,
// folosind NaCl secretbox (XSalsa20-Poly1305) cu o cheie master de 32 de octeți.
// Formatul sigilat este base64(nonce || ciphertext).
type Vault struct {
	key [32]byte
}

// New construiește vault-ul dintr-o cheie base64 de exact 32 de octeți.
func New(masterKeyB64 string) (*Vault, error) {
	raw, err := base64.StdEncoding.DecodeString(masterKeyB64)
	if err != nil {
		return nil, fmt.Errorf("decodare MASTER_KEY: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("MASTER_KEY trebuie să aibă 32 de octeți, are %d", len(raw))
	}
	v := &Vault{}
	copy(v.key[:], raw)
	return v, nil
}

// Seal criptează o valoare. Valoarea goală rămâne goală (credențial nesetat).
func (v *Vault) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generare nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &v.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decriptează o valoare sigilată. Valoarea goală rămâne goală.
func (v *Vault) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decodare valoare sigilată: %w", err)
	}
	if len(raw) < 24 {
		return "", fmt.Errorf("valoare sigilată prea scurtă")
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &v.key)
	if !ok {
		return "", fmt.Errorf("decriptare eșuată (cheie greșită sau date corupte)")
	}
	return string(plain), nil
}
