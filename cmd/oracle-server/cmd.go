// oracle-server is a development decryption oracle: it holds the
// development FHE key, decrypts the ciphertexts it is asked about, signs
// the cleartexts with its babyjub key, and delivers the result to the
// node's callback endpoint on its own schedule.
package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/oracle"
	"github.com/gin-gonic/gin"
	"github.com/iden3/go-iden3-crypto/babyjub"
	flag "github.com/spf13/pflag"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
	"go.vocdoni.io/dvote/log"
)

var port, dir, callbackURL, logLevel string

type server struct {
	r *gin.Engine
	sync.Mutex

	db     db.Database
	scheme *fhe.DevScheme
	privK  babyjub.PrivateKey
	c      *http.Client
}

func main() {
	flag.StringVarP(&port, "port", "p", "9000", "network port for the HTTP API")
	flag.StringVarP(&dir, "dir", "d", "~/.oracle-server", "db & keys directory")
	flag.StringVarP(&callbackURL, "callback", "c",
		"http://127.0.0.1:8080/verification/callback",
		"node callback url for decryption results")
	flag.StringVarP(&logLevel, "logLevel", "l", "info", "log level (info, debug, warn, error)")
	flag.Parse()

	log.Init(logLevel, "stdout")

	opts := db.Options{Path: dir}
	database, err := pebbledb.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	s := server{}
	s.db = database
	s.c = &http.Client{}
	if err = s.loadKeys(); err != nil {
		log.Fatal(err)
	}

	s.r = gin.Default()
	s.r.GET("/status", s.getStatus)
	s.r.GET("/publickey", s.getPublicKey)
	s.r.POST("/decrypt", s.postDecrypt)

	if err = s.r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

var (
	dbKeyFHEKey        = []byte("fhekey")
	dbKeySigningKey    = []byte("signingkey")
	dbKeyNextRequestID = []byte("nextRequestID")
)

// loadKeys loads the FHE key and the babyjub signing key from the db,
// generating and storing them on the first run
func (s *server) loadKeys() error {
	rTx := s.db.ReadTx()
	fheKey, err := rTx.Get(dbKeyFHEKey)
	if err != nil {
		fheKey = nil
	}
	signKey, err := rTx.Get(dbKeySigningKey)
	if err != nil {
		signKey = nil
	}
	rTx.Discard()

	wTx := s.db.WriteTx()
	defer wTx.Discard()

	if fheKey == nil {
		if fheKey, err = fhe.NewDevKey(); err != nil {
			return err
		}
		if err = wTx.Set(dbKeyFHEKey, fheKey); err != nil {
			return err
		}
	}
	if signKey == nil {
		privK := babyjub.NewRandPrivKey()
		signKey = privK[:]
		if err = wTx.Set(dbKeySigningKey, signKey); err != nil {
			return err
		}
	}
	if err = wTx.Commit(); err != nil {
		return err
	}

	if s.scheme, err = fhe.NewDevScheme(fheKey); err != nil {
		return err
	}
	copy(s.privK[:], signKey)

	pubKComp := s.privK.Public().Compress()
	log.Infof("oracle public key: %s", hex.EncodeToString(pubKComp[:]))
	log.Infof("development FHE key: %s", hex.EncodeToString(fheKey))
	return nil
}

// nextRequestID allocates the next request id, persisting the counter
func (s *server) nextRequestID() (uint64, error) {
	s.Lock()
	defer s.Unlock()

	wTx := s.db.WriteTx()
	defer wTx.Discard()

	next := uint64(1)
	if b, err := wTx.Get(dbKeyNextRequestID); err == nil {
		next = binary.LittleEndian.Uint64(b)
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, next+1)
	if err := wTx.Set(dbKeyNextRequestID, b); err != nil {
		return 0, err
	}
	if err := wTx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

type errorMsg struct {
	Message string `json:"message"`
}

func returnErr(c *gin.Context, err error) {
	log.Warnw("HTTP API Bad request error", "err", err)
	c.JSON(http.StatusBadRequest, errorMsg{
		Message: err.Error(),
	})
}

func (s *server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (s *server) getPublicKey(c *gin.Context) {
	pubKComp := s.privK.Public().Compress()
	c.JSON(http.StatusOK, hex.EncodeToString(pubKComp[:]))
}

func (s *server) postDecrypt(c *gin.Context) {
	var req oracle.DecryptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErr(c, err)
		return
	}
	if len(req.Ciphertexts) == 0 {
		c.JSON(http.StatusBadRequest, errorMsg{Message: "no ciphertexts"})
		return
	}

	requestID, err := s.nextRequestID()
	if err != nil {
		returnErr(c, err)
		return
	}

	go s.decryptAndCallback(requestID, req.Ciphertexts)

	// return the id, so the requester can correlate the callback later
	c.JSON(http.StatusOK, gin.H{
		"id": requestID,
	})
}

func (s *server) decryptAndCallback(requestID uint64, cts []fhe.Ciphertext) {
	cleartexts := make([]uint64, len(cts))
	for i, ct := range cts {
		v, err := s.scheme.Decrypt(ct)
		if err != nil {
			log.Errorf("requestID: %d, can not decrypt ciphertext %d: %s",
				requestID, i, err)
			return
		}
		cleartexts[i] = v
	}

	proof, err := oracle.Sign(s.privK, requestID, cleartexts)
	if err != nil {
		log.Errorf("requestID: %d, can not sign cleartexts: %s", requestID, err)
		return
	}

	jsonCallback, err := json.Marshal(oracle.Callback{
		RequestID:  requestID,
		Cleartexts: cleartexts,
		Proof:      *proof,
	})
	if err != nil {
		log.Errorf("requestID: %d, can not marshal callback: %s", requestID, err)
		return
	}
	resp, err := s.c.Post(callbackURL, "application/json",
		bytes.NewBuffer(jsonCallback))
	if err != nil {
		log.Errorf("requestID: %d, callback delivery failed: %s", requestID, err)
		return
	}
	defer resp.Body.Close() //nolint:errcheck
	log.Debugf("requestID: %d, callback delivered, status: %d",
		requestID, resp.StatusCode)
}
