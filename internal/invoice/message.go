package invoice

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/noah-isme/sivakasi-crackers/internal/order"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

const dateLayout = "02/01/2006"

// Message builds the WhatsApp text for an order. Amounts are rounded here only.
func Message(shop Shop, o order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Invoice from %s*\n\n", shop.Name)
	if shop.Tagline != "" {
		fmt.Fprintf(&b, "*%s*\n", shop.Tagline)
	}
	fmt.Fprintf(&b, "Invoice #: %s\n", o.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", o.PlacedAt.Format(dateLayout))

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", o.Customer.Address)

	b.WriteString("*Order Summary:*\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "%s (%d x ₹%s) = ₹%s\n", l.Name, l.Quantity,
			pricing.Format(l.DiscountedPrice), pricing.Format(l.Subtotal-l.Discount))
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%s\n", pricing.Format(o.Summary.Subtotal))
	fmt.Fprintf(&b, "Discount: -₹%s\n", pricing.Format(o.Summary.Discount))
	fmt.Fprintf(&b, "GST (%s%%): ₹%s\n", pricing.RatePercent(o.Tax.RateBps), pricing.Format(o.Tax.GST))
	fmt.Fprintf(&b, "*Grand Total: ₹%s*\n\n", pricing.Format(o.Tax.GrandTotal))
	fmt.Fprintf(&b, "Thank you for choosing %s!", shop.Name)
	if shop.Footer != "" {
		fmt.Fprintf(&b, "\n%s", shop.Footer)
	}
	return b.String()
}

// ShareURL returns a wa.me deep link. An empty number lets the user pick the recipient.
func ShareURL(number, text string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + number + "?text=" + escaped
}
