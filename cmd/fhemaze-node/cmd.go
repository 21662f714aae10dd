package main

import (
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/event"
	"github.com/fhemaze/fhemaze-node/api"
	"github.com/fhemaze/fhemaze-node/db"
	"github.com/fhemaze/fhemaze-node/fhe"
	"github.com/fhemaze/fhemaze-node/oracle"
	"github.com/fhemaze/fhemaze-node/registry"
	"github.com/fhemaze/fhemaze-node/types"
	"github.com/fhemaze/fhemaze-node/verifier"
	_ "github.com/mattn/go-sqlite3"
	flag "github.com/spf13/pflag"
	kvdb "go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
	"go.vocdoni.io/dvote/log"
)

// Config contains the main configuration parameters of the node
type Config struct {
	dir, logLevel, port  string
	oracleURL, oracleKey string
	fheKey               string
}

func main() {
	config := Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	flag.StringVarP(&config.dir, "dir", "d", filepath.Join(home, ".fhemaze-node"),
		"storage data directory")
	flag.StringVarP(&config.logLevel, "logLevel", "l", "info", "log level (info, debug, warn, error)")
	flag.StringVarP(&config.port, "port", "p", "8080", "network port for the HTTP API")
	flag.StringVar(&config.oracleURL, "oracle", "http://127.0.0.1:9000",
		"decryption oracle server url")
	flag.StringVar(&config.oracleKey, "oraclekey", "",
		"decryption oracle babyjub public key (hex, compressed)")
	flag.StringVar(&config.fheKey, "fhekey", "",
		"development FHE scheme key (hex)")

	flag.CommandLine.SortFlags = false
	flag.Parse()

	log.Init(config.logLevel, "stdout")

	log.Debugf("Config: %#v\n", config)

	// prepare DB
	sqlDB, err := sql.Open("sqlite3", filepath.Join(config.dir, "fhemaze.sqlite3"))
	if err != nil {
		log.Fatal(err)
	}
	sqlite := db.NewSQLite(sqlDB)
	if err = sqlite.Migrate(); err != nil {
		log.Fatal(err)
	}

	// prepare the results accumulator storage
	opts := kvdb.Options{Path: filepath.Join(config.dir, "resultstree")}
	treeDB, err := pebbledb.New(opts)
	if err != nil {
		log.Fatal(err)
	}

	// prepare the ciphertext algebra
	if config.fheKey == "" {
		log.Fatal("fhekey flag can not be empty")
	}
	fheKey, err := hex.DecodeString(config.fheKey)
	if err != nil {
		log.Fatal(err)
	}
	algebra, err := fhe.NewDevScheme(fheKey)
	if err != nil {
		log.Fatal(err)
	}

	// prepare the oracle client and its trusted public key
	if config.oracleKey == "" {
		log.Fatal("oraclekey flag can not be empty")
	}
	oraclePubK, err := types.HexToPublicKey(config.oracleKey)
	if err != nil {
		log.Fatal(err)
	}
	oracleClient := oracle.NewHTTPClient(config.oracleURL)

	feed := new(event.Feed)

	reg, err := registry.New(sqlite, feed)
	if err != nil {
		log.Fatal(err)
	}

	verif, err := verifier.New(verifier.Options{
		SQLite:     sqlite,
		Algebra:    algebra,
		Oracle:     oracleClient,
		OraclePubK: oraclePubK,
		Feed:       feed,
		TreeDB:     treeDB,
	})
	if err != nil {
		log.Fatal(err)
	}

	a, err := api.New(reg, verif)
	if err != nil {
		log.Fatal(err)
	}
	if err = a.Serve(config.port); err != nil {
		log.Fatal(err)
	}
}
