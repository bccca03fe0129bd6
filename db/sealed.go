package db

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrCorruptValue = errors.New("sealed value cannot be opened")

// SealedStore encrypts values with secretbox before they reach the backend.
// Keys are stored in the clear.
type SealedStore struct {
	inner Store
	key   [32]byte
}

// NewSealedStore accepts a 64-char hex key; any other secret is hashed down to 32 bytes.
func NewSealedStore(inner Store, secret string) (*SealedStore, error) {
	if secret == "" {
		return nil, errors.New("empty store secret")
	}
	s := &SealedStore{inner: inner}
	if raw, err := hex.DecodeString(secret); err == nil && len(raw) == 32 {
		copy(s.key[:], raw)
	} else {
		s.key = blake2b.Sum256([]byte(secret))
	}
	return s, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := s.open(raw)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", key, err)
	}
	return plain, true, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *SealedStore) Close() error {
	return s.inner.Close()
}

func (s *SealedStore) seal(value string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	out := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *SealedStore) open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrCorruptValue
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorruptValue
	}
	return string(plain), nil
}
