// Package vault stores named household secrets (wifi password, shared
// logins) with authenticated encryption at rest. Rows in the credentials
// table only ever hold ciphertext; plaintext exists in memory.
package vault

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/okatsu/sharehouse/internal/models"
	"github.com/okatsu/sharehouse/internal/storage"
)

var (
	// ErrNoKey is returned by every operation when no vault key is configured.
	ErrNoKey = errors.New("vault key not configured")

	// ErrBadSeal is returned when a stored credential cannot be opened with
	// the configured key, usually because the key changed.
	ErrBadSeal = errors.New("credential cannot be opened with the configured key")
)

// Vault seals and opens credential values around the storage layer.
type Vault struct {
	store storage.Store
	aead  cipher.AEAD
}

// New creates a Vault with the given key. The key must be exactly
// chacha20poly1305.KeySize (32) bytes. A nil or empty key yields a disabled
// vault whose operations return ErrNoKey.
func New(store storage.Store, key []byte) (*Vault, error) {
	if len(key) == 0 {
		return &Vault{store: store}, nil
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	return &Vault{store: store, aead: aead}, nil
}

// Enabled reports whether a key is configured.
func (v *Vault) Enabled() bool {
	return v.aead != nil
}

// Put seals the value and stores it under the given name, optionally tied
// to a person. Returns the new credential id.
func (v *Vault) Put(ctx context.Context, name, value string, personID int64) (int64, error) {
	if v.aead == nil {
		return 0, ErrNoKey
	}
	if name == "" {
		return 0, errors.New("credential name must not be empty")
	}

	sealed, err := v.seal([]byte(value))
	if err != nil {
		return 0, err
	}

	id, err := v.store.CreateCredential(ctx, name, sealed, personID)
	if err != nil {
		return 0, fmt.Errorf("store credential: %w", err)
	}
	return id, nil
}

// List returns every credential with its value opened.
func (v *Vault) List(ctx context.Context) ([]models.Credential, error) {
	if v.aead == nil {
		return nil, ErrNoKey
	}

	sealed, err := v.store.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	creds := make([]models.Credential, 0, len(sealed))
	for _, row := range sealed {
		value, err := v.open(row.Sealed)
		if err != nil {
			return nil, fmt.Errorf("credential %q (id %d): %w", row.Name, row.ID, err)
		}
		creds = append(creds, models.Credential{
			ID:       row.ID,
			Name:     row.Name,
			Value:    string(value),
			PersonID: row.PersonID,
		})
	}
	return creds, nil
}

// Delete removes a credential by id and reports whether a row existed.
func (v *Vault) Delete(ctx context.Context, id int64) (bool, error) {
	if v.aead == nil {
		return false, ErrNoKey
	}
	found, err := v.store.DeleteCredential(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete credential: %w", err)
	}
	return found, nil
}

// seal encrypts plaintext as nonce || ciphertext.
func (v *Vault) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return v.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open reverses seal.
func (v *Vault) open(sealed []byte) ([]byte, error) {
	if len(sealed) < v.aead.NonceSize() {
		return nil, ErrBadSeal
	}
	nonce, ciphertext := sealed[:v.aead.NonceSize()], sealed[v.aead.NonceSize():]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrBadSeal
	}
	return plaintext, nil
}
