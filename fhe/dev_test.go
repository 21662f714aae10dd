package fhe

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func newTestScheme(c *qt.C) *DevScheme {
	key, err := NewDevKey()
	c.Assert(err, qt.IsNil)
	s, err := NewDevScheme(key)
	c.Assert(err, qt.IsNil)
	return s
}

func TestEncryptDecrypt(t *testing.T) {
	c := qt.New(t)
	s := newTestScheme(c)

	for _, v := range []uint64{0, 1, 2, 42, ^uint64(0)} {
		ct, err := s.Encrypt(v)
		c.Assert(err, qt.IsNil)
		got, err := s.Decrypt(ct)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, v)
	}

	// two encryptions of the same value must not be equal ciphertexts
	a, err := s.Encrypt(7)
	c.Assert(err, qt.IsNil)
	b, err := s.Encrypt(7)
	c.Assert(err, qt.IsNil)
	c.Assert(string(a), qt.Not(qt.Equals), string(b))
}

func TestDecryptWrongKey(t *testing.T) {
	c := qt.New(t)
	s1 := newTestScheme(c)
	s2 := newTestScheme(c)

	ct, err := s1.Encrypt(3)
	c.Assert(err, qt.IsNil)
	_, err = s2.Decrypt(ct)
	c.Assert(err, qt.IsNotNil)
}

func TestAlgebraOps(t *testing.T) {
	c := qt.New(t)
	s := newTestScheme(c)

	enc := func(v uint64) Ciphertext {
		ct, err := s.Encrypt(v)
		c.Assert(err, qt.IsNil)
		return ct
	}
	dec := func(ct Ciphertext, err error) uint64 {
		c.Assert(err, qt.IsNil)
		v, err := s.Decrypt(ct)
		c.Assert(err, qt.IsNil)
		return v
	}

	c.Assert(dec(s.Eq(enc(5), enc(5))), qt.Equals, uint64(1))
	c.Assert(dec(s.Eq(enc(5), enc(6))), qt.Equals, uint64(0))

	c.Assert(dec(s.Sub(enc(7), enc(4))), qt.Equals, uint64(3))
	// subtraction wraps
	c.Assert(dec(s.Sub(enc(4), enc(5))), qt.Equals, ^uint64(0))

	c.Assert(dec(s.And(enc(1), enc(1))), qt.Equals, uint64(1))
	c.Assert(dec(s.And(enc(1), enc(0))), qt.Equals, uint64(0))
	c.Assert(dec(s.Or(enc(0), enc(0))), qt.Equals, uint64(0))
	c.Assert(dec(s.Or(enc(0), enc(1))), qt.Equals, uint64(1))
	c.Assert(dec(s.Xor(enc(1), enc(1))), qt.Equals, uint64(0))
	c.Assert(dec(s.Xor(enc(0), enc(1))), qt.Equals, uint64(1))
	c.Assert(dec(s.Not(enc(0))), qt.Equals, uint64(1))
	c.Assert(dec(s.Not(enc(1))), qt.Equals, uint64(0))

	// logical ops treat any non-zero value as true
	c.Assert(dec(s.And(enc(3), enc(9))), qt.Equals, uint64(1))
	c.Assert(dec(s.Not(enc(42))), qt.Equals, uint64(0))
}

func TestCiphertextJSON(t *testing.T) {
	c := qt.New(t)
	s := newTestScheme(c)

	ct, err := s.Encrypt(9)
	c.Assert(err, qt.IsNil)

	b, err := json.Marshal(ct)
	c.Assert(err, qt.IsNil)

	var ct2 Ciphertext
	err = json.Unmarshal(b, &ct2)
	c.Assert(err, qt.IsNil)

	v, err := s.Decrypt(ct2)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(9))
	c.Assert(ct2.Handle(), qt.Equals, ct.Handle())
}
