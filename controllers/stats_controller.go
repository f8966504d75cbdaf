package controllers

import (
	"net/http"
	"strconv"

	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type StatsController struct {
	stats services.StatsService
}

func NewStatsController(stats services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

func (sc *StatsController) TopSellingProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, appErr := sc.stats.TopSellingProducts(c.Request.Context(), limit)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": rows})
}

func (sc *StatsController) CategorySalesRank(c *gin.Context) {
	rows, appErr := sc.stats.CategorySalesRank(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

func (sc *StatsController) ProductRatings(c *gin.Context) {
	minReviews, _ := strconv.Atoi(c.DefaultQuery("min_reviews", "1"))

	rows, appErr := sc.stats.ProductRatings(c.Request.Context(), minReviews)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": rows})
}

func (sc *StatsController) TopBuyers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, appErr := sc.stats.TopBuyers(c.Request.Context(), limit)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buyers": rows})
}

func (sc *StatsController) OrderAmountComparison(c *gin.Context) {
	rows, appErr := sc.stats.OrderAmountComparison(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

func (sc *StatsController) OrdersByStatus(c *gin.Context) {
	status := c.Query("status")

	rows, appErr := sc.stats.OrdersByStatus(c.Request.Context(), status)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

func (sc *StatsController) ProductsInPriceRange(c *gin.Context) {
	min, err := decimal.NewFromString(c.DefaultQuery("min", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
		return
	}
	max, err := decimal.NewFromString(c.DefaultQuery("max", "1000"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
		return
	}

	products, appErr := sc.stats.ProductsInPriceRange(c.Request.Context(), min, max)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (sc *StatsController) ReviewsAboveRating(c *gin.Context) {
	minRating, _ := strconv.Atoi(c.DefaultQuery("min_rating", "4"))

	rows, appErr := sc.stats.ReviewsAboveRating(c.Request.Context(), minRating)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": rows})
}
