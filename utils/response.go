package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aakash/content-server/apperror"
)

func JSON200(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func JSON201(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func JSON204(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func JSON400(c *gin.Context, message interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func JSON404(c *gin.Context, message interface{}) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func JSON409(c *gin.Context, message interface{}) {
	c.JSON(http.StatusConflict, gin.H{"error": message})
}

func JSON422(c *gin.Context, message interface{}) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": message})
}

func JSON429(c *gin.Context, message interface{}) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": message})
}

func JSON500(c *gin.Context, message interface{}) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func JSON502(c *gin.Context, message interface{}) {
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}

// JSONError maps a taxonomy error to its response status. The original cause
// stays in server logs only; clients receive the message text.
func JSONError(c *gin.Context, err error) {
	var (
		validationErr  *apperror.ValidationError
		notFoundErr    *apperror.NotFoundError
		conflictErr    *apperror.ConflictError
		overloadedErr  *apperror.OverloadedError
		objectStoreErr *apperror.ObjectStoreError
		processingErr  *apperror.ProcessingError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": validationErr.Fields})
	case errors.As(err, &notFoundErr):
		JSON404(c, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		JSON409(c, conflictErr.Error())
	case errors.As(err, &overloadedErr):
		JSON429(c, "service overloaded, retry later")
	case errors.As(err, &objectStoreErr):
		JSON502(c, "object storage unavailable")
	case errors.As(err, &processingErr):
		JSON422(c, "image could not be processed")
	default:
		JSON500(c, "internal server error")
	}
}
