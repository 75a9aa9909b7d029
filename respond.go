package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, response{Success: true, Message: message, Data: data})
}

// fail reports a handled failure (not found, downstream error already
// logged). The envelope carries the outcome, so the HTTP status stays 200.
func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response{Success: false, Message: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response{Success: false, Message: err.Error()})
}

func forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, response{Success: false, Message: message})
}

// paramID reads a numeric path parameter. ok is false after an error
// response has already been written.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
