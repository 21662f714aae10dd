package api

import (
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/types"
)

type newMazeReq struct {
	// fhe.Ciphertext Unmarshaler takes care of parsing the hex
	// representation of the ciphertexts
	Grid  [][]fhe.Ciphertext   `json:"grid"`
	Start types.EncryptedPoint `json:"start"`
	End   types.EncryptedPoint `json:"end"`
}

type newSolutionReq struct {
	Path []types.EncryptedPoint `json:"path"`
}

type resultResp struct {
	Valid    bool `json:"valid"`
	Revealed bool `json:"revealed"`
}
