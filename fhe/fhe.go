// Package fhe defines the ciphertext algebra that the verification engine
// evaluates its circuits over. The algebra is an external capability: the
// engine only composes the operations listed in the Algebra interface and
// never decrypts. A development scheme implementing the interface is
// provided in dev.go.
package fhe

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Ciphertext is an opaque encrypted scalar. Its layout is scheme-specific
// and must not be interpreted outside the Algebra implementation.
type Ciphertext []byte

// Handle returns a short keccak256-derived identifier of the Ciphertext,
// safe to print in logs.
func (ct Ciphertext) Handle() string {
	return hexutil.Encode(crypto.Keccak256(ct)[:8])
}

// MarshalJSON encodes the Ciphertext as a 0x-prefixed hex string
func (ct Ciphertext) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Bytes(ct))
}

// UnmarshalJSON decodes the Ciphertext from a 0x-prefixed hex string
func (ct *Ciphertext) UnmarshalJSON(b []byte) error {
	var hb hexutil.Bytes
	if err := json.Unmarshal(b, &hb); err != nil {
		return err
	}
	*ct = Ciphertext(hb)
	return nil
}

// Algebra contains the homomorphic operations needed by the validity
// circuit. Arithmetic operations work on encrypted uint64 scalars
// (subtraction wraps). Logical operations treat any non-zero plaintext as
// true and always produce an encryption of 0 or 1.
type Algebra interface {
	// EncryptConst injects the public constant v as a ciphertext
	EncryptConst(v uint64) (Ciphertext, error)
	// Eq returns an encrypted 1 if a and b encrypt the same value, else
	// an encrypted 0
	Eq(a, b Ciphertext) (Ciphertext, error)
	// Sub returns an encryption of a-b (wrapping uint64 arithmetic)
	Sub(a, b Ciphertext) (Ciphertext, error)
	// And returns an encrypted logical conjunction of a and b
	And(a, b Ciphertext) (Ciphertext, error)
	// Or returns an encrypted logical disjunction of a and b
	Or(a, b Ciphertext) (Ciphertext, error)
	// Xor returns an encrypted logical exclusive-or of a and b
	Xor(a, b Ciphertext) (Ciphertext, error)
	// Not returns an encrypted logical negation of a
	Not(a Ciphertext) (Ciphertext, error)
}
