package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/herbverse/plantdb"
)

// StatusOf maps a catalog error to its HTTP status.
func StatusOf(err error) int {
	switch plantdb.CodeOf(err) {
	case plantdb.InvalidRecord, plantdb.EmptyQuery, plantdb.InvalidFilter:
		return http.StatusBadRequest
	case plantdb.DuplicateKey:
		return http.StatusConflict
	case plantdb.NotFound:
		return http.StatusNotFound
	case plantdb.Unauthorized:
		return http.StatusForbidden
	case plantdb.StoreFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError responds with the error's status and a {"message", "code"} body. The message of a
// coded error is its cause only, so e.g. non-admins read the plain admin-only sentence.
func writeError(c *gin.Context, err error) {
	msg := err.Error()
	var e plantdb.Error
	if errors.As(err, &e) && e.Err != nil {
		msg = e.Err.Error()
	}
	c.IndentedJSON(StatusOf(err), gin.H{
		"message": msg,
		"code":    plantdb.CodeOf(err).String(),
	})
}
