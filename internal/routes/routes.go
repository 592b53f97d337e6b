package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/handlers"
	"afrieats_backend/internal/handlers/payment"
	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/middleware"
)

// RegisterRoutes wires the storefront API.
func RegisterRoutes(r *gin.Engine, kv kvstore.Store, carts *handlers.CartHandlers, pay *payment.Handlers) {
	r.Use(corsMiddleware())

	api := r.Group("/api")

	// Cart
	cartGroup := api.Group("/cart", middleware.CartRateLimit(kv))
	cartGroup.GET("", carts.GetCart)
	cartGroup.POST("/add", carts.AddItem)
	cartGroup.POST("/update", carts.UpdateQuantity)
	cartGroup.POST("/remove", carts.RemoveItem)
	cartGroup.POST("/instructions", carts.SetInstructions)
	cartGroup.DELETE("", carts.ClearCart)

	// Card payments
	payGroup := api.Group("/payments", middleware.PaymentRateLimit(kv))
	payGroup.POST("/create-intent", pay.CreatePaymentIntent)
	payGroup.POST("/status", pay.PaymentStatus)

	// Wallet payments
	paypalGroup := api.Group("/paypal", middleware.PaymentRateLimit(kv))
	paypalGroup.POST("/create-order", pay.CreatePayPalOrder)
	paypalGroup.POST("/capture-order", pay.CapturePayPalOrder)

	// Checkout + confirmation view
	api.POST("/checkout", middleware.PaymentRateLimit(kv), pay.DoCheckout)
	api.GET("/orders/:orderId", pay.OrderSummary)

	// Connected sellers
	api.POST("/connect/onboard", pay.OnboardSeller)
	api.POST("/connect/pay", middleware.PaymentRateLimit(kv), pay.CreateSplitPayment)

	// Provider webhooks are never rate limited; a throttled delivery
	// would just make the provider retry.
	api.POST("/webhooks/stripe", pay.StripeWebhook)
	api.POST("/webhooks/paypal", pay.PayPalWebhook)
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
