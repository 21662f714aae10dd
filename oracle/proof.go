package oracle

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// Proof contains the oracle's authenticity proof for a decryption
// callback: a babyjub signature over the poseidon digest of
// (requestID, cleartexts). It binds the cleartexts to the request id, so a
// callback payload can not be replayed for another request nor tampered
// with.
type Proof struct {
	Signature hexutil.Bytes `json:"signature"`
}

// Digest returns the poseidon hash binding the given requestID to its
// cleartexts
func Digest(requestID uint64, cleartexts []uint64) (*big.Int, error) {
	inputs := []*big.Int{new(big.Int).SetUint64(requestID)}
	for _, v := range cleartexts {
		inputs = append(inputs, new(big.Int).SetUint64(v))
	}
	return poseidon.Hash(inputs)
}

// Sign returns the Proof for the given requestID and cleartexts, signed
// with the oracle's private key
func Sign(privK babyjub.PrivateKey, requestID uint64,
	cleartexts []uint64) (*Proof, error) {
	msg, err := Digest(requestID, cleartexts)
	if err != nil {
		return nil, err
	}
	sigComp := privK.SignPoseidon(msg).Compress()
	return &Proof{Signature: sigComp[:]}, nil
}

// CheckProof verifies the given Proof against (requestID, cleartexts)
// using the oracle's public key. A malformed signature is reported as not
// verifying, not as an error.
func CheckProof(pubK *babyjub.PublicKey, requestID uint64,
	cleartexts []uint64, proof *Proof) (bool, error) {
	if proof == nil || len(proof.Signature) != len(babyjub.SignatureComp{}) {
		return false, nil
	}
	var sigComp babyjub.SignatureComp
	copy(sigComp[:], proof.Signature)
	sig, err := sigComp.Decompress()
	if err != nil {
		return false, nil
	}
	msg, err := Digest(requestID, cleartexts)
	if err != nil {
		return false, err
	}
	return pubK.VerifyPoseidon(msg, sig), nil
}
