package verifier

import (
	"math"
	"math/big"

	"github.com/vocdoni/arbo"
	kvdb "go.vocdoni.io/dvote/db"
)

var (
	// treeMaxLevels indicates the maximum number of levels in the
	// revealed-results MerkleTree
	treeMaxLevels = 64
	// treeKeyLen indicates the key (solutionID) length in the
	// revealed-results MerkleTree
	treeKeyLen = int(math.Ceil(float64(treeMaxLevels) / float64(8))) //nolint:gomnd
)

// resultsTree accumulates the revealed results in a Poseidon MerkleTree
// keyed by solutionID, so external consumers can anchor on a single root.
// Leaves are only ever appended on a successful reveal, which keeps the
// tree consistent with the write-once results table.
type resultsTree struct {
	tree *arbo.Tree
}

func newResultsTree(database kvdb.Database) (*resultsTree, error) {
	tree, err := arbo.NewTree(arbo.Config{
		Database:     database,
		MaxLevels:    treeMaxLevels,
		HashFunction: arbo.HashFunctionPoseidon,
	})
	if err != nil {
		return nil, err
	}
	return &resultsTree{tree: tree}, nil
}

func (rt *resultsTree) add(solutionID uint64, isValid bool) error {
	k := arbo.BigIntToBytes(treeKeyLen, new(big.Int).SetUint64(solutionID))
	bit := int64(0)
	if isValid {
		bit = 1
	}
	v := arbo.BigIntToBytes(treeKeyLen, big.NewInt(bit))
	return rt.tree.Add(k, v)
}

func (rt *resultsTree) root() ([]byte, error) {
	return rt.tree.Root()
}
