package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into v. An empty body leaves v at its
// zero value; fields are only checked for presence by the services.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
