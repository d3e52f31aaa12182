package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// SendOrderConfirmation sends the post-checkout email. It is called from a
// goroutine after the order is committed; a send failure is logged and never
// affects the order.
func SendOrderConfirmation(order *models.Order, email string) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || user == "" {
		logger.Warn().Uint("order_id", order.ID).Msg("smtp not configured, skipping confirmation email")
		return
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	body := fmt.Sprintf(
		`<h1>Thank You for Your Order!</h1>
<p>Order ID: <b>%d</b> has been placed successfully.</p>
<p>Total: ₹%.2f</p>
<p>We will notify you once it ships.</p>`,
		order.ID, order.Total,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("Rivaya Support <%s>", user))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Rivaya Order Confirmation")
	m.SetBody("text/html", body)

	if err := gomail.NewDialer(host, port, user, pass).DialAndSend(m); err != nil {
		logger.Error().Err(err).Uint("order_id", order.ID).Msg("failed to send confirmation email")
		return
	}
	logger.Info().Uint("order_id", order.ID).Str("to", email).Msg("order confirmation email sent")
}
