package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fhemaze/fhemaze-node/oracle"
	"github.com/fhemaze/fhemaze-node/registry"
	"github.com/fhemaze/fhemaze-node/verifier"
	"github.com/gin-gonic/gin"
	"go.vocdoni.io/dvote/log"
)

// API allows external requests to the Node
type API struct {
	r  *gin.Engine
	rg *registry.Registry
	v  *verifier.Verifier
}

// New returns a new API with the endpoints, without starting to listen
func New(reg *registry.Registry, verif *verifier.Verifier) (*API, error) {
	if reg == nil || verif == nil {
		return nil, fmt.Errorf("can not create the API: both the registry" +
			" and the verifier are needed")
	}

	a := API{rg: reg, v: verif}

	r := gin.Default()

	r.POST("/maze", a.postNewMaze)
	r.GET("/maze/:mazeid", a.getMaze)
	r.POST("/maze/:mazeid/solution", a.postSubmitSolution)
	r.POST("/solution/:solutionid/verify", a.postRequestVerification)
	r.GET("/solution/:solutionid/result", a.getVerificationResult)
	r.POST("/verification/callback", a.postVerificationCallback)
	r.GET("/results/root", a.getResultsRoot)

	a.r = r

	return &a, nil
}

// Serve serves the API at the given port
func (a *API) Serve(port string) error {
	return a.r.Run(":" + port)
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

func paramID(c *gin.Context, name string) (uint64, error) {
	idInt, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, err
	}
	return uint64(idInt), nil
}

func (a *API) postNewMaze(c *gin.Context) {
	var d newMazeReq
	if err := c.ShouldBindJSON(&d); err != nil {
		returnErr(c, err)
		return
	}

	mazeID, err := a.rg.CreateMaze(d.Grid, d.Start, d.End)
	if err != nil {
		returnErr(c, err)
		return
	}

	c.JSON(http.StatusOK, mazeID)
}

func (a *API) getMaze(c *gin.Context) {
	mazeID, err := paramID(c, "mazeid")
	if err != nil {
		returnErr(c, err)
		return
	}
	info, err := a.rg.MazeInfo(mazeID)
	if err != nil {
		returnErr(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (a *API) postSubmitSolution(c *gin.Context) {
	mazeID, err := paramID(c, "mazeid")
	if err != nil {
		returnErr(c, err)
		return
	}

	var d newSolutionReq
	if err := c.ShouldBindJSON(&d); err != nil {
		returnErr(c, err)
		return
	}

	solutionID, err := a.rg.SubmitSolution(mazeID, d.Path)
	if err != nil {
		returnErr(c, err)
		return
	}

	c.JSON(http.StatusOK, solutionID)
}

func (a *API) postRequestVerification(c *gin.Context) {
	solutionID, err := paramID(c, "solutionid")
	if err != nil {
		returnErr(c, err)
		return
	}

	requestID, err := a.v.RequestVerification(solutionID)
	if err != nil {
		returnErr(c, err)
		return
	}

	c.JSON(http.StatusOK, requestID)
}

func (a *API) getVerificationResult(c *gin.Context) {
	solutionID, err := paramID(c, "solutionid")
	if err != nil {
		returnErr(c, err)
		return
	}

	result, err := a.v.GetVerificationResult(solutionID)
	if err != nil {
		returnErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resultResp{
		Valid:    result.Valid,
		Revealed: result.Revealed,
	})
}

// postVerificationCallback is the entry point for the decryption oracle
// callbacks. The payload is untrusted: Resolve verifies the proof before
// any state is written.
func (a *API) postVerificationCallback(c *gin.Context) {
	var d oracle.Callback
	if err := c.ShouldBindJSON(&d); err != nil {
		returnErr(c, err)
		return
	}

	if err := a.v.Resolve(d.RequestID, d.Cleartexts, &d.Proof); err != nil {
		returnErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) getResultsRoot(c *gin.Context) {
	root, err := a.v.ResultsRoot()
	if err != nil {
		returnErr(c, err)
		return
	}
	c.JSON(http.StatusOK, hexutil.Encode(root))
}
