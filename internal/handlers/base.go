package handlers

import (
	"errors"
	"net/http"

	"boardhub/internal/auth"
	"boardhub/internal/middleware"
	"boardhub/internal/services"
	"boardhub/internal/utils"

	"github.com/gin-gonic/gin"
)

func credential(c *gin.Context) string {
	return c.GetString(middleware.CredentialKey)
}

// idParam reads a positive id path parameter, answering 400 when it is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		c.JSON(http.StatusBadRequest, services.Result{Message: "invalid " + name})
	}
	return id, ok
}

func bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, services.Result{Message: "invalid request body"})
		return false
	}
	return true
}

// respond writes v as 200 JSON or maps err onto a status.
func respond(c *gin.Context, v interface{}, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, services.Result{Message: "invalid credential"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, services.Result{Message: "forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, services.Result{Message: "not found"})
	default:
		c.JSON(http.StatusInternalServerError, services.Result{Message: "internal error"})
	}
}
