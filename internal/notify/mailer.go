package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"afrieats_backend/internal/models"
)

// Dispatcher sends the settlement emails. The webhook receiver calls
// both sends independently, so one failing recipient never blocks the
// other.
type Dispatcher interface {
	SendReceipt(email string, order models.OrderSummary, lines []models.CartLine) error
	SendKitchenAlert(order models.OrderSummary, lines []models.CartLine) error
}

// Mailer is the SMTP Dispatcher.
type Mailer struct{}

func NewMailer() *Mailer {
	return &Mailer{}
}

// SendReceipt emails the order confirmation to the customer.
func (m *Mailer) SendReceipt(email string, order models.OrderSummary, lines []models.CartLine) error {
	subject := fmt.Sprintf("✅ Order confirmed — AfriEats (%s)", order.OrderID)
	html := receiptHTML(order, lines)

	if err := m.send(email, subject, html); err != nil {
		return err
	}
	log.Printf("📧 Confirmation email sent to %s for order %s", email, order.OrderID)
	return nil
}

// SendKitchenAlert emails the kitchen staff so they start cooking.
func (m *Mailer) SendKitchenAlert(order models.OrderSummary, lines []models.CartLine) error {
	kitchen := os.Getenv("KITCHEN_EMAIL")
	if kitchen == "" {
		return fmt.Errorf("KITCHEN_EMAIL not configured")
	}

	subject := fmt.Sprintf("🍳 New paid order %s", order.OrderID)
	html := kitchenHTML(order, lines)

	if err := m.send(kitchen, subject, html); err != nil {
		return err
	}
	log.Printf("📧 Kitchen alert sent for order %s", order.OrderID)
	return nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@afrieats.co.uk"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}
