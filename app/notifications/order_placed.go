// Package notifications defines the storefront's outbound notifications.
package notifications

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/notification"
)

// OrderPlaced is the confirmation sent after a successful placement. It is
// mail-only; the body snapshots the shipping address text at send time.
type OrderPlaced struct {
	Order models.Order
	User  models.User
}

func (n *OrderPlaced) Via() []string { return []string{"mail"} }

func (n *OrderPlaced) ToMail() notification.MailData {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s\n", n.User.Name)
	fmt.Fprintf(&b, "Total Amount: ₹%.2f\n\nOrdered Items:\n", n.Order.TotalAmount)
	for _, it := range n.Order.Items {
		line := fmt.Sprintf("- %s (x%d)", it.Product.Name, it.Quantity)
		if it.Size != "" {
			line += " Size: " + it.Size
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nShipping Address:\n%s\n", n.Order.Address.Text())
	if n.Order.Address.PhoneNumber != "" {
		fmt.Fprintf(&b, "Phone: %s\n", n.Order.Address.PhoneNumber)
	}

	return notification.MailData{
		Subject: fmt.Sprintf("Order #%d placed successfully!", n.Order.ID),
		Text:    b.String(),
	}
}
