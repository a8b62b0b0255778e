/*
 * Copyright 2024 The Sealgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sealer provides authenticated encryption of short expiring
// records, used to round-trip login state through an untrusted client.
// A sealed token is tamper-evident and carries its own expiration instant,
// enforced at unwrap time independently of the payload contents.
package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrSealerKey indicates the sealing key material is unavailable or unusable
var ErrSealerKey = errors.New("sealer key material unavailable")

// ErrDataExpired indicates the token decrypted cleanly but its embedded
// expiration instant has passed
var ErrDataExpired = errors.New("sealed data has expired")

// ErrIntegrity indicates the token could not be decoded, decrypted or
// authenticated (corrupted, forged, or sealed under a different key)
var ErrIntegrity = errors.New("sealed data failed integrity check")

// Sealer wraps and unwraps expiring, tamper-evident string records
type Sealer interface {
	// Wrap seals the provided data with the provided expiration instant
	Wrap(data string, expires time.Time) (string, error)
	// Unwrap returns the exact data passed to a prior Wrap, or fails with
	// ErrDataExpired or ErrIntegrity. There is no partial success.
	Unwrap(token string) (string, error)
}

const keySize = 32 // AES-256

// hkdfInfo contextualizes the derived key so the same master secret can
// safely serve other derivations later
var hkdfInfo = []byte("sealgate token sealing v1")

// AESSealer is a Sealer implementation using AES-256-GCM with a key derived
// from master secret material via HKDF-SHA256
type AESSealer struct {
	gcm cipher.AEAD
	now func() time.Time
}

// New returns an AESSealer keyed by HKDF expansion of the provided master
// secret. The secret may be any non-empty byte string.
func New(secret []byte) (*AESSealer, error) {
	if len(secret) == 0 {
		return nil, ErrSealerKey
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(newHKDF(secret), key); err != nil {
		return nil, errors.Wrap(ErrSealerKey, err.Error())
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(ErrSealerKey, err.Error())
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(ErrSealerKey, err.Error())
	}
	return &AESSealer{gcm: gcm, now: time.Now}, nil
}

// NewFromFile returns an AESSealer keyed from the master secret file at path
func NewFromFile(path string) (*AESSealer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(ErrSealerKey, err.Error())
	}
	return New(b)
}

// Wrap seals data with the provided expiration instant. The instant is
// stored alongside the payload inside the authenticated envelope.
func (s *AESSealer) Wrap(data string, expires time.Time) (string, error) {
	if s == nil || s.gcm == nil {
		return "", ErrSealerKey
	}
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(ErrSealerKey, err.Error())
	}
	plaintext := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(plaintext, uint64(expires.UnixMilli()))
	copy(plaintext[8:], data)
	sealed := s.gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Unwrap authenticates and decrypts the token, then enforces the embedded
// expiration instant
func (s *AESSealer) Unwrap(token string) (string, error) {
	if s == nil || s.gcm == nil {
		return "", ErrSealerKey
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrIntegrity
	}
	ns := s.gcm.NonceSize()
	if len(raw) < ns {
		return "", ErrIntegrity
	}
	plaintext, err := s.gcm.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrIntegrity
	}
	if len(plaintext) < 8 {
		return "", ErrIntegrity
	}
	expires := time.UnixMilli(int64(binary.BigEndian.Uint64(plaintext)))
	if s.now().After(expires) {
		return "", ErrDataExpired
	}
	return string(plaintext[8:]), nil
}
