package controllers

import (
	"net/http"

	apperrors "storefront/common/errors"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err *apperrors.Error) {
	c.JSON(err.Code, gin.H{"error": err.Message})
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
}
