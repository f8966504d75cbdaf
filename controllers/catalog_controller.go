package controllers

import (
	"net/http"

	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogController struct {
	catalog services.CatalogService
}

func NewCatalogController(catalog services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListProducts returns active products, optionally filtered by category.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		categoryID = &id
	}

	products, appErr := cc.catalog.ListProducts(c.Request.Context(), categoryID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (cc *CatalogController) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, appErr := cc.catalog.GetProduct(c.Request.Context(), id)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, appErr := cc.catalog.ListCategories(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
