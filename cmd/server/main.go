package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"afrieats_backend/internal/cart"
	"afrieats_backend/internal/config"
	"afrieats_backend/internal/handlers"
	"afrieats_backend/internal/handlers/payment"
	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/notify"
	"afrieats_backend/internal/orders"
	"afrieats_backend/internal/payments"
	"afrieats_backend/internal/routes"
	"afrieats_backend/internal/sellers"
	"afrieats_backend/internal/webhooks"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY missing — card payments will answer 503")
	} else {
		log.Println("✅ Stripe initialized")
	}

	kv, err := kvstore.NewRedis()
	if err != nil {
		log.Fatal("❌ Cannot start without Redis: ", err)
	}
	defer kv.Close()

	carts := cart.NewStore(kv)
	orderLog := orders.NewLog(kv)
	sellerStore := sellers.NewStore(kv)
	mailer := notify.NewMailer()

	cardGateway := payments.NewStripeGateway()
	walletGateway := payments.NewPayPalGateway()

	cards := payments.NewCardService(cardGateway)
	wallet := payments.NewWalletService(walletGateway)
	orchestrator := payments.NewOrchestrator(cards, wallet, carts, orderLog)
	connect := payments.NewConnectRouter(cardGateway, sellerStore)

	stripeReceiver := webhooks.NewStripeReceiver(os.Getenv("STRIPE_WEBHOOK_SECRET"), sellerStore, orderLog, mailer)
	paypalReceiver := webhooks.NewPayPalReceiver(walletGateway, os.Getenv("PAYPAL_WEBHOOK_ID"), orderLog, mailer)

	r := gin.Default()
	routes.RegisterRoutes(r, kv,
		&handlers.CartHandlers{Carts: carts},
		&payment.Handlers{
			Cards:    cards,
			Wallet:   wallet,
			Checkout: orchestrator,
			Connect:  connect,
			Stripe:   stripeReceiver,
			PayPal:   paypalReceiver,
		},
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 AfriEats backend listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped: ", err)
	}
}
