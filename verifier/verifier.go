// Package verifier implements the verification engine and the result
// store: it homomorphically evaluates the validity predicate of a solution
// against its maze, hands the single encrypted verdict to the decryption
// oracle, and finalizes the revealed boolean once the oracle callback
// proof verifies. The engine never decrypts anything itself and has no
// visibility into the plaintext outcome.
package verifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/fhemaze/fhemaze-node/db"
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/oracle"
	"github.com/fhemaze/fhemaze-node/types"
	"github.com/iden3/go-iden3-crypto/babyjub"
	kvdb "go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/log"
)

// Verifier evaluates solutions and resolves the oracle callbacks. All
// mutations are serialized by a single mutex: operations are atomic with
// respect to each other, and the oracle callback (the only source of
// genuine asynchrony) goes through the same mutex via Resolve.
type Verifier struct {
	mu         sync.Mutex
	db         *db.SQLite
	alg        fhe.Algebra
	oracle     oracle.Client
	oraclePubK *babyjub.PublicKey
	feed       *event.Feed
	results    *resultsTree
}

// Options is used to pass the parameters to load a new Verifier
type Options struct {
	SQLite *db.SQLite
	// Algebra is the homomorphic backend the validity circuit is
	// evaluated over
	Algebra fhe.Algebra
	// Oracle is the decryption oracle client
	Oracle oracle.Client
	// OraclePubK is the oracle's babyjub public key, trusted to verify
	// callback proofs
	OraclePubK *babyjub.PublicKey
	Feed       *event.Feed
	// TreeDB is the storage for the revealed-results accumulator tree
	TreeDB kvdb.Database
}

// New loads a new Verifier
func New(opts Options) (*Verifier, error) {
	if opts.SQLite == nil || opts.Algebra == nil || opts.Oracle == nil ||
		opts.Feed == nil || opts.TreeDB == nil {
		return nil, fmt.Errorf("verifier needs a db, an algebra, an oracle," +
			" an event feed and a tree storage")
	}
	if opts.OraclePubK == nil {
		return nil, fmt.Errorf("verifier needs the oracle public key to" +
			" verify decryption proofs")
	}
	results, err := newResultsTree(opts.TreeDB)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		db:         opts.SQLite,
		alg:        opts.Algebra,
		oracle:     opts.Oracle,
		oraclePubK: opts.OraclePubK,
		feed:       opts.Feed,
		results:    results,
	}, nil
}

// RequestVerification evaluates the validity circuit for the given
// solutionID and requests the decryption of the single resulting boolean
// ciphertext from the oracle, returning the oracle-issued request id.
// Fails with types.ErrAlreadyVerified if the result is already revealed,
// and with types.ErrAlreadyPending if a request is already outstanding for
// this solution (single-flight per solution).
func (v *Verifier) RequestVerification(solutionID uint64) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	solution, err := v.db.ReadSolutionByID(solutionID)
	if err != nil {
		return 0, err
	}
	result, err := v.db.ReadResultBySolutionID(solutionID)
	if err != nil {
		return 0, err
	}
	if result.Revealed {
		return 0, fmt.Errorf("solutionID: %d, %w", solutionID,
			types.ErrAlreadyVerified)
	}
	pending, err := v.db.HasPendingRequestForSolution(solutionID)
	if err != nil {
		return 0, err
	}
	if pending {
		return 0, fmt.Errorf("solutionID: %d, %w", solutionID,
			types.ErrAlreadyPending)
	}
	maze, err := v.db.ReadMazeByID(solution.MazeID)
	if err != nil {
		return 0, err
	}

	isValid, err := v.evalValidity(maze, solution)
	if err != nil {
		return 0, err
	}

	requestID, err := v.oracle.RequestDecryption(isValid)
	if err != nil {
		return 0, err
	}
	if err := v.db.StorePendingRequest(requestID, solutionID); err != nil {
		return 0, err
	}
	log.Debugf("[SolutionID=%d] verification requested, RequestID=%d,"+
		" verdict handle: %s", solutionID, requestID, isValid.Handle())

	v.feed.Send(types.Event{
		Kind:       types.EventVerificationRequested,
		MazeID:     solution.MazeID,
		SolutionID: solutionID,
		RequestID:  requestID,
		Timestamp:  time.Now(),
	})
	return requestID, nil
}

// Resolve finalizes a verification from an oracle callback. The callback
// is attacker-controlled input: the proof is verified against (requestID,
// cleartexts) before anything is written. On a failed proof the pending
// entry is kept, so a later callback with a correct proof can still
// resolve the request. The reveal is write-once: a second callback for the
// same request fails with types.ErrAlreadyVerified.
func (v *Verifier) Resolve(requestID uint64, cleartexts []uint64,
	proof *oracle.Proof) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	solutionID, err := v.db.ReadPendingRequest(requestID)
	if err != nil {
		return err
	}
	result, err := v.db.ReadResultBySolutionID(solutionID)
	if err != nil {
		return err
	}
	if result.Revealed {
		return fmt.Errorf("requestID: %d, solutionID: %d, %w", requestID,
			solutionID, types.ErrAlreadyVerified)
	}

	ok, err := oracle.CheckProof(v.oraclePubK, requestID, cleartexts, proof)
	if err != nil {
		return err
	}
	// the engine requests the decryption of exactly one boolean
	if !ok || len(cleartexts) != 1 {
		log.Warnw("decryption callback with invalid proof",
			"requestID", requestID, "solutionID", solutionID)
		return fmt.Errorf("requestID: %d, %w", requestID,
			types.ErrInvalidProof)
	}

	isValid := cleartexts[0] != 0
	if err := v.db.RevealResult(solutionID, isValid); err != nil {
		return err
	}
	if err := v.db.ConsumePendingRequest(requestID); err != nil {
		return err
	}
	if err := v.results.add(solutionID, isValid); err != nil {
		return err
	}
	log.Debugf("[SolutionID=%d] verification complete, isValid=%t",
		solutionID, isValid)

	v.feed.Send(types.Event{
		Kind:       types.EventVerificationComplete,
		SolutionID: solutionID,
		RequestID:  requestID,
		Timestamp:  time.Now(),
	})
	return nil
}

// GetVerificationResult returns the types.VerificationResult for the given
// solutionID. It is a pure read, safe to call at any time; between
// submission and a successful Resolve it returns Revealed=false.
func (v *Verifier) GetVerificationResult(solutionID uint64) (*types.VerificationResult, error) {
	return v.db.ReadResultBySolutionID(solutionID)
}

// ResultsRoot returns the root of the revealed-results accumulator tree
func (v *Verifier) ResultsRoot() ([]byte, error) {
	return v.results.root()
}
