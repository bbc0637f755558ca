package kvstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sbx1:"

var ErrUnseal = errors.New("kvstore: cannot open sealed value")

// Sealed encrypts the values of selected keys with NaCl secretbox before they reach Inner.
// Other keys pass through untouched.
type Sealed struct {
	Inner Store
	key   [32]byte
	only  map[string]bool
}

// NewSealed derives the box key from secret. With no keys listed every value is sealed.
func NewSealed(inner Store, secret string, keys ...string) *Sealed {
	s := &Sealed{Inner: inner, key: sha256.Sum256([]byte(secret))}
	if len(keys) > 0 {
		s.only = map[string]bool{}
		for _, k := range keys {
			s.only[k] = true
		}
	}
	return s
}

func (s *Sealed) applies(key string) bool {
	if s.only == nil {
		return true
	}
	// keys may arrive namespaced as "<session>:<key>"
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	return s.only[key]
}

func (s *Sealed) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.Inner.Get(ctx, key)
	if err != nil || !ok || !s.applies(key) {
		return v, ok, err
	}
	plain, err := s.open(v)
	if err != nil {
		return "", false, err
	}
	return plain, true, nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	if !s.applies(key) {
		return s.Inner.Set(ctx, key, value)
	}
	boxed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.Inner.Set(ctx, key, boxed)
}

func (s *Sealed) Delete(ctx context.Context, keys ...string) error {
	return s.Inner.Delete(ctx, keys...)
}

func (s *Sealed) seal(plain string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealed) open(boxed string) (string, error) {
	if !strings.HasPrefix(boxed, sealedPrefix) {
		return "", ErrUnseal
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(boxed, sealedPrefix))
	if err != nil || len(raw) < 24 {
		return "", ErrUnseal
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrUnseal
	}
	return string(plain), nil
}
