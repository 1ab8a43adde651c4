package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the success envelope every handler uses: the
// status repeated in the body, a human message and the payload.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the failure envelope, carrying the error text in
// place of the payload.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
