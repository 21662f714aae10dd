// Package oracle implements the decryption oracle surface consumed by the
// verifier: the request client, the decryption-authenticity proof format,
// and an in-process oracle used for testing.
package oracle

import (
	"github.com/fhemaze/fhemaze-node/fhe"
)

// Client defines the interface to request asynchronous decryptions from
// the oracle. The request returns immediately with an oracle-issued
// request id; the cleartexts are delivered later through the node's
// callback entry point, together with a Proof. The oracle is untrusted for
// integrity: the callback payload is only accepted after its Proof
// verifies.
type Client interface {
	// RequestDecryption asks the oracle to decrypt the given ciphertext
	// and returns the oracle-issued request id
	RequestDecryption(ct fhe.Ciphertext) (uint64, error)
}
