package http

import (
	"github.com/gin-gonic/gin"
)

const (
	responseSuccess = "success"
	responseError   = "error"
)

// Envelope is the body of every response. Data is omitted for empty
// successes and for errors.
type Envelope[T any] struct {
	StatusCode   int    `json:"status_code"`
	ResponseType string `json:"response_type"`
	Description  string `json:"description"`
	Data         *T     `json:"data,omitempty"`
}

func respond[T any](c *gin.Context, status int, description string, data T) {
	c.JSON(status, Envelope[T]{
		StatusCode:   status,
		ResponseType: responseSuccess,
		Description:  description,
		Data:         &data,
	})
}

func respondEmpty(c *gin.Context, status int, description string) {
	c.JSON(status, Envelope[struct{}]{
		StatusCode:   status,
		ResponseType: responseSuccess,
		Description:  description,
	})
}

func respondError(c *gin.Context, status int, description string) {
	c.AbortWithStatusJSON(status, Envelope[struct{}]{
		StatusCode:   status,
		ResponseType: responseError,
		Description:  description,
	})
}
