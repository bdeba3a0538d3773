package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/apierr"
)

// fail writes the structured error envelope. Unexpected errors are
// logged server-side and surface as a bare 500.
func fail(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr.Status == 500 {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(apiErr.Status, apiErr.Envelope())
}

func failBinding(c *gin.Context, err error) {
	fail(c, apierr.BadRequest("Invalid request body: "+err.Error()))
}

// idParam parses a numeric path parameter, 404ing on garbage since no
// resource can match it.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		fail(c, apierr.NotFound("Not found"))
		return 0, false
	}
	return uint(id), true
}
