package fhe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// DevKeySize sets the size of the development scheme symmetric key
const DevKeySize = 32

const devNonceSize = 12

// NewDevKey returns a new random key for the development scheme
func NewDevKey() ([]byte, error) {
	key := make([]byte, DevKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// DevScheme implements the Algebra interface with a symmetric scheme where
// the evaluator holds the key: each operation opens its operands, computes
// in plaintext and re-encrypts the outcome under a fresh nonce. It stands
// in for a production FHE backend during development and testing; the
// engine code is identical for both, as it only sees the Algebra
// interface. Ciphertexts are nonce||AES-GCM(key, 8-byte big-endian value).
type DevScheme struct {
	aead cipher.AEAD
}

// ensure that DevScheme implements the Algebra interface
var _ Algebra = (*DevScheme)(nil)

// NewDevScheme returns a DevScheme for the given key
func NewDevScheme(key []byte) (*DevScheme, error) {
	if len(key) != DevKeySize {
		return nil, fmt.Errorf("unexpected key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &DevScheme{aead: aead}, nil
}

// Encrypt encrypts the given value under a fresh nonce
func (s *DevScheme) Encrypt(v uint64) (Ciphertext, error) {
	nonce := make([]byte, devNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	pt := make([]byte, 8)
	binary.BigEndian.PutUint64(pt, v)
	return Ciphertext(s.aead.Seal(nonce, nonce, pt, nil)), nil
}

// Decrypt opens the given Ciphertext and returns the plaintext value
func (s *DevScheme) Decrypt(ct Ciphertext) (uint64, error) {
	if len(ct) < devNonceSize {
		return 0, fmt.Errorf("ciphertext too short: %d bytes", len(ct))
	}
	pt, err := s.aead.Open(nil, ct[:devNonceSize], ct[devNonceSize:], nil)
	if err != nil {
		return 0, err
	}
	if len(pt) != 8 {
		return 0, fmt.Errorf("unexpected plaintext length: %d", len(pt))
	}
	return binary.BigEndian.Uint64(pt), nil
}

// DecryptBit opens the given Ciphertext and decodes it as a boolean
func (s *DevScheme) DecryptBit(ct Ciphertext) (bool, error) {
	v, err := s.Decrypt(ct)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// EncryptConst implements the Algebra interface
func (s *DevScheme) EncryptConst(v uint64) (Ciphertext, error) {
	return s.Encrypt(v)
}

func (s *DevScheme) binOp(a, b Ciphertext, f func(x, y uint64) uint64) (Ciphertext, error) {
	x, err := s.Decrypt(a)
	if err != nil {
		return nil, err
	}
	y, err := s.Decrypt(b)
	if err != nil {
		return nil, err
	}
	return s.Encrypt(f(x, y))
}

// Eq implements the Algebra interface
func (s *DevScheme) Eq(a, b Ciphertext) (Ciphertext, error) {
	return s.binOp(a, b, func(x, y uint64) uint64 {
		if x == y {
			return 1
		}
		return 0
	})
}

// Sub implements the Algebra interface
func (s *DevScheme) Sub(a, b Ciphertext) (Ciphertext, error) {
	return s.binOp(a, b, func(x, y uint64) uint64 {
		return x - y
	})
}

// And implements the Algebra interface
func (s *DevScheme) And(a, b Ciphertext) (Ciphertext, error) {
	return s.binOp(a, b, func(x, y uint64) uint64 {
		if x != 0 && y != 0 {
			return 1
		}
		return 0
	})
}

// Or implements the Algebra interface
func (s *DevScheme) Or(a, b Ciphertext) (Ciphertext, error) {
	return s.binOp(a, b, func(x, y uint64) uint64 {
		if x != 0 || y != 0 {
			return 1
		}
		return 0
	})
}

// Xor implements the Algebra interface
func (s *DevScheme) Xor(a, b Ciphertext) (Ciphertext, error) {
	return s.binOp(a, b, func(x, y uint64) uint64 {
		if (x != 0) != (y != 0) {
			return 1
		}
		return 0
	})
}

// Not implements the Algebra interface
func (s *DevScheme) Not(a Ciphertext) (Ciphertext, error) {
	x, err := s.Decrypt(a)
	if err != nil {
		return nil, err
	}
	if x == 0 {
		return s.Encrypt(1)
	}
	return s.Encrypt(0)
}
