package routes

import (
	"storefront/controllers"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the handlers the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Order    *controllers.OrderController
	Review   *controllers.ReviewController
	Stats    *controllers.StatsController
}

// Register mounts all routes. Browsing and login are public; the cart, the
// checkout pipeline and review submission require a bearer token.
func Register(r *gin.Engine, c Controllers, jwtSecret string) {
	r.POST("/auth/register", c.Auth.Register)
	r.POST("/auth/login", c.Auth.Login)

	r.GET("/catalog/products", c.Catalog.ListProducts)
	r.GET("/catalog/products/:id", c.Catalog.GetProduct)
	r.GET("/catalog/categories", c.Catalog.ListCategories)

	r.GET("/products/:id/reviews", c.Review.ListProductReviews)
	r.GET("/reviews/recent", c.Review.RecentReviews)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(jwtSecret))
	{
		authed.GET("/cart", c.Cart.GetCart)
		authed.POST("/cart/items", c.Cart.AddItem)
		authed.PATCH("/cart/items/:id", c.Cart.SetQuantity)
		authed.DELETE("/cart/items/:id", c.Cart.RemoveItem)

		authed.POST("/checkout", c.Checkout.Checkout)

		authed.GET("/orders", c.Order.ListOrders)
		authed.GET("/orders/:id", c.Order.GetOrder)
		authed.GET("/orders/:id/items", c.Order.GetOrderItems)
		authed.POST("/orders/:id/payment", c.Payment.Pay)

		authed.POST("/products/:id/reviews", c.Review.AddReview)

		admin := authed.Group("/admin/stats")
		{
			admin.GET("/top-products", c.Stats.TopSellingProducts)
			admin.GET("/category-sales", c.Stats.CategorySalesRank)
			admin.GET("/product-ratings", c.Stats.ProductRatings)
			admin.GET("/top-buyers", c.Stats.TopBuyers)
			admin.GET("/order-amounts", c.Stats.OrderAmountComparison)
			admin.GET("/orders-by-status", c.Stats.OrdersByStatus)
			admin.GET("/products-by-price", c.Stats.ProductsInPriceRange)
			admin.GET("/reviews-by-rating", c.Stats.ReviewsAboveRating)
		}
	}
}
