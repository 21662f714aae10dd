package oracle

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"github.com/fhemaze/fhemaze-node/fhe"
)

// HTTPClient implements the oracle Client over HTTP, used to make requests
// to an external decryption-oracle server
type HTTPClient struct {
	url string
	c   *http.Client
}

// ensure that HTTPClient implements the Client interface
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a new HTTPClient for the given oracleURL
func NewHTTPClient(oracleURL string) *HTTPClient {
	httpClient := &http.Client{}
	return &HTTPClient{
		url: oracleURL,
		c:   httpClient,
	}
}

type errorMsg struct {
	Message string `json:"message"`
}

// DecryptionRequest is the payload sent to the oracle server. Only
// aggregated result ciphertexts ever cross this boundary; plaintext maze
// or path data never does.
type DecryptionRequest struct {
	Ciphertexts []fhe.Ciphertext `json:"ciphertexts"`
}

// Callback is the payload the oracle delivers to the node's callback entry
// point once a requested decryption is done
type Callback struct {
	RequestID  uint64   `json:"requestId"`
	Cleartexts []uint64 `json:"cleartexts"`
	Proof      Proof    `json:"proof"`
}

// RequestDecryption sends the given ciphertext to the oracle server to
// trigger the asynchronous decryption, and returns the oracle-issued
// request id
func (c *HTTPClient) RequestDecryption(ct fhe.Ciphertext) (uint64, error) {
	jsonReq, err := json.Marshal(DecryptionRequest{
		Ciphertexts: []fhe.Ciphertext{ct},
	})
	if err != nil {
		return 0, err
	}
	resp, err := c.c.Post(c.url+"/decrypt", "application/json",
		bytes.NewBuffer(jsonReq))
	if err != nil {
		return 0, err
	}

	// resp.body.id contains the request id that the callback will carry
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode == http.StatusBadRequest {
		var errMsg errorMsg
		if err = json.Unmarshal(body, &errMsg); err != nil {
			return 0, err
		}
		return 0, errors.New(errMsg.Message)
	}

	var m map[string]uint64
	err = json.Unmarshal(body, &m)
	if err != nil {
		return 0, err
	}

	return m["id"], nil
}
