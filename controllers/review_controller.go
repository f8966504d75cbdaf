package controllers

import (
	"net/http"
	"strconv"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewController struct {
	reviews services.ReviewService
}

func NewReviewController(reviews services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type addReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview submits a review; it stays hidden until approved.
func (rc *ReviewController) AddReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondUnauthenticated(c)
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review payload"})
		return
	}

	review, appErr := rc.reviews.AddReview(c.Request.Context(), userID, productID, req.Rating, req.Comment)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted for moderation",
		"review":  review,
	})
}

// ListProductReviews returns approved reviews for one product.
func (rc *ReviewController) ListProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	reviews, appErr := rc.reviews.ListProductReviews(c.Request.Context(), productID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// RecentReviews returns the latest approved reviews across the store.
func (rc *ReviewController) RecentReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	reviews, appErr := rc.reviews.RecentReviews(c.Request.Context(), limit)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
