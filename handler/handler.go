package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	"github.com/cross_escrow/model"
)

// writeErr maps protocol aborts to 422 with their stable numeric code so
// clients can match on codes, missing objects to 404, everything else to
// 500.
func writeErr(c *gin.Context, err error) {
	var coded *model.Error
	if errors.As(err, &coded) {
		status := http.StatusUnprocessableEntity
		if coded == model.ErrObjectNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"code": coded.Code, "error": coded.Name})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseAmount(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseHex(s string) ([]byte, error) {
	return hexutil.Decode(s)
}

func parseProof(proof []string) ([][]byte, error) {
	var out [][]byte
	for _, p := range proof {
		b, err := parseHex(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func encodeProof(proof [][]byte) []string {
	out := make([]string, 0, len(proof))
	for _, p := range proof {
		out = append(out, hexutil.Encode(p))
	}
	return out
}
