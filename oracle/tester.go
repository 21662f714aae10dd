package oracle

import (
	"fmt"

	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/iden3/go-iden3-crypto/babyjub"
)

// ensure that Tester implements the Client interface
var _ Client = (*Tester)(nil)

// Tester simulates the decryption oracle for testing purposes. Requests
// are queued instead of answered, and the test decides when (and with
// which payload) each callback is delivered, which allows simulating the
// arbitrary delay and the untrusted nature of the real oracle.
type Tester struct {
	scheme  *fhe.DevScheme
	privK   babyjub.PrivateKey
	lastID  uint64
	pending map[uint64]fhe.Ciphertext
}

// NewTester returns a new Tester that decrypts with the given scheme and
// signs its callbacks with a fresh babyjub key
func NewTester(scheme *fhe.DevScheme) (*Tester, error) {
	privK := babyjub.NewRandPrivKey()
	return &Tester{
		scheme:  scheme,
		privK:   privK,
		pending: make(map[uint64]fhe.Ciphertext),
	}, nil
}

// PublicKey returns the Tester's babyjub public key, to be configured as
// the trusted oracle key
func (o *Tester) PublicKey() *babyjub.PublicKey {
	return o.privK.Public()
}

// RequestDecryption implements the Client interface, queueing the request
func (o *Tester) RequestDecryption(ct fhe.Ciphertext) (uint64, error) {
	o.lastID++
	o.pending[o.lastID] = ct
	return o.lastID, nil
}

// PendingCount returns the number of queued requests
func (o *Tester) PendingCount() int {
	return len(o.pending)
}

// Respond decrypts the queued request with the given requestID, signs the
// cleartexts, and hands them to deliver. The deliver function usually
// calls the verifier's Resolve, and may tamper with the payload first to
// exercise the proof gating.
func (o *Tester) Respond(requestID uint64,
	deliver func(requestID uint64, cleartexts []uint64, proof *Proof) error) error {
	ct, ok := o.pending[requestID]
	if !ok {
		return fmt.Errorf("no pending request with id %d", requestID)
	}
	v, err := o.scheme.Decrypt(ct)
	if err != nil {
		return err
	}
	cleartexts := []uint64{v}
	proof, err := Sign(o.privK, requestID, cleartexts)
	if err != nil {
		return err
	}
	delete(o.pending, requestID)
	return deliver(requestID, cleartexts, proof)
}

// RespondAll responds to every queued request in the order of their ids
func (o *Tester) RespondAll(
	deliver func(requestID uint64, cleartexts []uint64, proof *Proof) error) error {
	for id := uint64(1); id <= o.lastID; id++ {
		if _, ok := o.pending[id]; !ok {
			continue
		}
		if err := o.Respond(id, deliver); err != nil {
			return err
		}
	}
	return nil
}

// SignFor signs arbitrary cleartexts for the given requestID with the
// Tester's key. Used by tests that need a valid signature over a payload
// that differs from the genuine decryption.
func (o *Tester) SignFor(requestID uint64, cleartexts []uint64) (*Proof, error) {
	return Sign(o.privK, requestID, cleartexts)
}
