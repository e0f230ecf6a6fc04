package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/playfiesta/store_api/internal/models"
)

// MailSender delivers a plain-text message. Implemented by *mailer.Mailer.
type MailSender interface {
	Send(to, subject, body string) error
}

// NotificationService composes and dispatches the admin mail sent when a new
// order arrives. Sending is best-effort: failures are logged and never
// propagate to the checkout flow.
type NotificationService struct {
	mail      MailSender
	adminAddr string
	panelURL  string
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(mail MailSender, adminAddr, panelURL string) *NotificationService {
	return &NotificationService{mail: mail, adminAddr: adminAddr, panelURL: panelURL}
}

// NotifyNewOrder sends the new-order mail to the admin address.
func (s *NotificationService) NotifyNewOrder(order *models.Order) {
	if s.mail == nil || s.adminAddr == "" {
		return
	}

	subject := fmt.Sprintf("New order %s from %s", shortID(order.ID), order.ClientName)

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", order.ID)
	fmt.Fprintf(&b, "Client: %s (%s)\n", order.ClientName, order.ClientPhone)
	fmt.Fprintf(&b, "Total: %s\n\n", order.Total.StringFixed(2))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx product %d @ %s\n", item.Quantity, item.ProductID, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nReview it at %s/orders/%s\n", s.panelURL, order.ID)

	if err := s.mail.Send(s.adminAddr, subject, b.String()); err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("order notification mail failed")
	}
}

// shortID is the 8-char display form of an order id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
